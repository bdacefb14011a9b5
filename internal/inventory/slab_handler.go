package inventory

import (
	"fmt"
	"strings"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SlabResponse struct {
	ID         uint              `json:"id"`
	ProductID  uint              `json:"product_id"`
	BundleID   string            `json:"bundle_id"`
	SlabNumber string            `json:"slab_number"`
	Status     models.SlabStatus `json:"status"`
	Length     *decimal.Decimal  `json:"length"`
	Width      *decimal.Decimal  `json:"width"`
	Location   string            `json:"location"`
	Notes      string            `json:"notes"`
}

func toSlabResponse(s models.Slab, bundleID string) SlabResponse {
	return SlabResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		BundleID:   bundleID,
		SlabNumber: s.SlabNumber,
		Status:     s.Status,
		Length:     s.Length,
		Width:      s.Width,
		Location:   s.Location,
		Notes:      s.Notes,
	}
}

type CreateSlabRequest struct {
	ProductID  uint              `json:"product_id"`
	SlabNumber string            `json:"slab_number"`
	Status     models.SlabStatus `json:"status"`
	Length     *decimal.Decimal  `json:"length"`
	Width      *decimal.Decimal  `json:"width"`
	Location   string            `json:"location"`
	Notes      string            `json:"notes"`
}

type UpdateSlabRequest struct {
	SlabNumber *string          `json:"slab_number"`
	Length     *decimal.Decimal `json:"length"`
	Width      *decimal.Decimal `json:"width"`
	Location   *string          `json:"location"`
	Notes      *string          `json:"notes"`
}

// GET /api/slabs?product_id=1&status=available
func ListSlabsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Slab{}).Preload("Product")

		if pidStr := c.Query("product_id"); pidStr != "" {
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err != nil || pid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "product_id is invalid")
			}
			dbq = dbq.Where("product_id = ?", pid)
		}
		if status := c.Query("status"); status != "" {
			if !models.ValidSlabStatus(models.SlabStatus(status)) {
				return fiber.NewError(fiber.StatusBadRequest, "status is invalid")
			}
			dbq = dbq.Where("status = ?", status)
		}

		var slabs []models.Slab
		if err := dbq.Order("slab_number asc").Find(&slabs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list slabs")
		}

		res := make([]SlabResponse, 0, len(slabs))
		for _, s := range slabs {
			res = append(res, toSlabResponse(s, s.Product.BundleID))
		}
		return c.JSON(res)
	}
}

// POST /api/slabs (admin, inventory_specialist)
func CreateSlabHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSlabRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.SlabNumber = strings.TrimSpace(body.SlabNumber)
		if body.ProductID == 0 || body.SlabNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_id and slab_number are required")
		}

		var product models.Product
		if err := database.DB.First(&product, body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}

		status := body.Status
		if status == "" {
			status = models.SlabStatusAvailable
		}
		if !models.ValidSlabStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "status is invalid")
		}

		s := models.Slab{
			ProductID:  body.ProductID,
			SlabNumber: body.SlabNumber,
			Status:     status,
			Length:     body.Length,
			Width:      body.Width,
			Location:   body.Location,
			Notes:      body.Notes,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create slab")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "slab",
			EntityID:    s.ID,
			Action:      models.ActivityActionCreate,
			Description: "slab created: " + s.SlabNumber,
			After:       s,
		})

		return c.Status(fiber.StatusCreated).JSON(toSlabResponse(s, product.BundleID))
	}
}

// POST /api/products/:id/slabs/bulk (admin, inventory_specialist)
// Auto-creates one slab per unit of the bundle's stock quantity, numbered
// after the bundle id. Dimensions default from the product when present.
func BulkCreateSlabsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		if product.StockQuantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product has no stock quantity to create slabs from")
		}

		var existingCount int64
		database.DB.Model(&models.Slab{}).Where("product_id = ?", product.ID).Count(&existingCount)

		slabs := make([]models.Slab, 0, product.StockQuantity)
		for i := 0; i < product.StockQuantity; i++ {
			slabs = append(slabs, models.Slab{
				ProductID:  product.ID,
				SlabNumber: fmt.Sprintf("%s-S%03d", product.BundleID, int(existingCount)+i+1),
				Status:     models.SlabStatusAvailable,
				Length:     product.SlabLength,
				Width:      product.SlabWidth,
				Location:   product.Location,
			})
		}

		if err := database.DB.Create(&slabs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create slabs")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.ActivityActionCreate,
			Description: fmt.Sprintf("bulk-created %d slabs for %s", len(slabs), product.BundleID),
		})

		res := make([]SlabResponse, 0, len(slabs))
		for _, s := range slabs {
			res = append(res, toSlabResponse(s, product.BundleID))
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/slabs/:id (admin, inventory_specialist)
func UpdateSlabHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Slab
		if err := database.DB.Preload("Product").First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "slab not found")
		}
		before := s

		var body UpdateSlabRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.SlabNumber != nil {
			num := strings.TrimSpace(*body.SlabNumber)
			if num == "" {
				return fiber.NewError(fiber.StatusBadRequest, "slab_number cannot be empty")
			}
			s.SlabNumber = num
		}
		if body.Length != nil {
			s.Length = body.Length
		}
		if body.Width != nil {
			s.Width = body.Width
		}
		if body.Location != nil {
			s.Location = *body.Location
		}
		if body.Notes != nil {
			s.Notes = *body.Notes
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update slab")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "slab",
			EntityID:    s.ID,
			Action:      models.ActivityActionUpdate,
			Description: "slab updated: " + s.SlabNumber,
			Before:      before,
			After:       s,
		})

		return c.JSON(toSlabResponse(s, s.Product.BundleID))
	}
}

type UpdateSlabStatusRequest struct {
	Status models.SlabStatus `json:"status"`
}

// PATCH /api/slabs/:id/status
// Any status may follow any other; there is no transition order.
func UpdateSlabStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Slab
		if err := database.DB.Preload("Product").First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "slab not found")
		}

		var body UpdateSlabStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if !models.ValidSlabStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "status is invalid")
		}

		old := s.Status
		s.Status = body.Status
		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update slab status")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "slab",
			EntityID:    s.ID,
			Action:      models.ActivityActionStatus,
			Description: fmt.Sprintf("slab %s status: %s -> %s", s.SlabNumber, old, s.Status),
		})

		return c.JSON(toSlabResponse(s, s.Product.BundleID))
	}
}

// DELETE /api/slabs/:id (admin, inventory_specialist)
func DeleteSlabHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Slab
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "slab not found")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete slab")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "slab",
			EntityID:    s.ID,
			Action:      models.ActivityActionDelete,
			Description: "slab deleted: " + s.SlabNumber,
			Before:      s,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
