package cart

import (
	"strings"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItemResponse struct {
	ID         uint            `json:"id"`
	ProductID  *uint           `json:"product_id"`
	SlabID     *uint           `json:"slab_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Notes      string          `json:"notes"`
}

type CartResponse struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Status   models.CartStatus  `json:"status"`
	ClientID *uint              `json:"client_id"`
	Items    []CartItemResponse `json:"items"`
	Total    decimal.Decimal    `json:"total"`
}

func toCartResponse(cart models.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, CartItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			SlabID:     it.SlabID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: LineTotal(it.Quantity, it.UnitPrice),
			Notes:      it.Notes,
		})
	}
	return CartResponse{
		ID:       cart.ID,
		Name:     cart.Name,
		Status:   cart.Status,
		ClientID: cart.ClientID,
		Items:    items,
		// the stored total is never trusted; always recomputed
		Total: Total(cart.Items),
	}
}

type CreateCartRequest struct {
	Name     string `json:"name"`
	ClientID *uint  `json:"client_id"`
}

// GET /api/carts?status=active
func ListCartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Cart{}).Preload("Items")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var carts []models.Cart
		if err := dbq.Order("updated_at desc").Find(&carts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list carts")
		}

		res := make([]CartResponse, 0, len(carts))
		for _, cart := range carts {
			res = append(res, toCartResponse(cart))
		}
		return c.JSON(res)
	}
}

// GET /api/carts/:id
func GetCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cart models.Cart
		if err := database.DB.Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}

		return c.JSON(toCartResponse(cart))
	}
}

// POST /api/carts
func CreateCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		cart := models.Cart{
			Name:      body.Name,
			Status:    models.CartStatusActive,
			ClientID:  body.ClientID,
			CreatedBy: userID,
		}

		if err := database.DB.Create(&cart).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create cart")
		}

		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "cart",
			EntityID:    cart.ID,
			Action:      models.ActivityActionCreate,
			Description: "cart created: " + cart.Name,
		})

		return c.Status(fiber.StatusCreated).JSON(toCartResponse(cart))
	}
}

type AddItemRequest struct {
	ProductID *uint            `json:"product_id"`
	SlabID    *uint            `json:"slab_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes"`
}

// POST /api/carts/:id/items
// An item with the same product/slab reference has its quantity
// incremented instead of creating a duplicate row.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cart models.Cart
		if err := database.DB.Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}
		if cart.Status != models.CartStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "cart is not active")
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if (body.ProductID == nil) == (body.SlabID == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "exactly one of product_id or slab_id is required")
		}
		if body.Quantity.LessThanOrEqual(decimal.Zero) {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
		}

		// unit price defaults from the referenced product
		unitPrice := decimal.Zero
		if body.UnitPrice != nil {
			if body.UnitPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "unit_price cannot be negative")
			}
			unitPrice = *body.UnitPrice
		}

		if body.ProductID != nil {
			var product models.Product
			if err := database.DB.First(&product, *body.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "product not found")
			}
			if body.UnitPrice == nil {
				unitPrice = product.Price
			}
		}
		if body.SlabID != nil {
			var slab models.Slab
			if err := database.DB.Preload("Product").First(&slab, *body.SlabID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "slab not found")
			}
			if slab.Status != models.SlabStatusAvailable {
				return fiber.NewError(fiber.StatusBadRequest, "slab is not available")
			}
			if body.UnitPrice == nil {
				unitPrice = slab.Product.Price
			}
		}

		if i := FindMatching(cart.Items, body.ProductID, body.SlabID); i >= 0 {
			item := cart.Items[i]
			item.Quantity = item.Quantity.Add(body.Quantity)
			item.TotalPrice = LineTotal(item.Quantity, item.UnitPrice)
			if err := database.DB.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not update cart item")
			}
		} else {
			item := models.CartItem{
				CartID:     cart.ID,
				ProductID:  body.ProductID,
				SlabID:     body.SlabID,
				Quantity:   body.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: LineTotal(body.Quantity, unitPrice),
				Notes:      body.Notes,
			}
			if err := database.DB.Create(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not add cart item")
			}
		}

		if err := database.DB.Preload("Items").First(&cart, cart.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not reload cart")
		}
		return c.Status(fiber.StatusCreated).JSON(toCartResponse(cart))
	}
}

type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// PUT /api/carts/:id/items/:itemID
// Quantity of zero or less removes the item; deliberate policy.
func UpdateItemQuantityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		itemID := c.Params("itemID")

		var cart models.Cart
		if err := database.DB.First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}
		if cart.Status != models.CartStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "cart is not active")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var item models.CartItem
		if err := database.DB.Where("cart_id = ?", cart.ID).First(&item, "id = ?", itemID).Error; err != nil {
			// removing an already-removed item is a no-op
			return refreshedCart(c, cart.ID)
		}

		if body.Quantity.LessThanOrEqual(decimal.Zero) {
			if err := database.DB.Delete(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not remove cart item")
			}
		} else {
			item.Quantity = body.Quantity
			item.TotalPrice = LineTotal(item.Quantity, item.UnitPrice)
			if err := database.DB.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not update cart item")
			}
		}

		return refreshedCart(c, cart.ID)
	}
}

// DELETE /api/carts/:id/items/:itemID
func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		itemID := c.Params("itemID")

		var cart models.Cart
		if err := database.DB.First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}

		if err := database.DB.Where("cart_id = ?", cart.ID).
			Delete(&models.CartItem{}, "id = ?", itemID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not remove cart item")
		}

		return refreshedCart(c, cart.ID)
	}
}

type UpdateCartStatusRequest struct {
	Status models.CartStatus `json:"status"`
}

// PATCH /api/carts/:id/status
func UpdateCartStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cart models.Cart
		if err := database.DB.First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}

		var body UpdateCartStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		switch body.Status {
		case models.CartStatusActive, models.CartStatusConverted, models.CartStatusAbandoned:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "status is invalid")
		}

		cart.Status = body.Status
		if err := database.DB.Save(&cart).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update cart")
		}

		return refreshedCart(c, cart.ID)
	}
}

// DELETE /api/carts/:id
func DeleteCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cart models.Cart
		if err := database.DB.First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete cart")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "cart",
			EntityID:    cart.ID,
			Action:      models.ActivityActionDelete,
			Description: "cart deleted: " + cart.Name,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func refreshedCart(c *fiber.Ctx, cartID uint) error {
	var cart models.Cart
	if err := database.DB.Preload("Items").First(&cart, cartID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not reload cart")
	}
	return c.JSON(toCartResponse(cart))
}
