package inventory

import (
	"strings"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID             uint             `json:"id"`
	BundleID       string           `json:"bundle_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Supplier       string           `json:"supplier"`
	Category       string           `json:"category"`
	Grade          string           `json:"grade"`
	Thickness      string           `json:"thickness"`
	Finish         string           `json:"finish"`
	Price          decimal.Decimal  `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	StockQuantity  int              `json:"stock_quantity"`
	Unit           string           `json:"unit"`
	Location       string           `json:"location"`
	SlabLength     *decimal.Decimal `json:"slab_length"`
	SlabWidth      *decimal.Decimal `json:"slab_width"`
	ImageURL       string           `json:"image_url"`
	IsActive       bool             `json:"is_active"`
	DisplayOnline  bool             `json:"display_online"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		BundleID:       p.BundleID,
		Name:           p.Name,
		Description:    p.Description,
		Supplier:       p.Supplier,
		Category:       p.Category,
		Grade:          p.Grade,
		Thickness:      p.Thickness,
		Finish:         p.Finish,
		Price:          p.Price,
		WholesalePrice: p.WholesalePrice,
		StockQuantity:  p.StockQuantity,
		Unit:           p.Unit,
		Location:       p.Location,
		SlabLength:     p.SlabLength,
		SlabWidth:      p.SlabWidth,
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		DisplayOnline:  p.DisplayOnline,
	}
}

type CreateProductRequest struct {
	BundleID       string           `json:"bundle_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Supplier       string           `json:"supplier"`
	Category       string           `json:"category"`
	Grade          string           `json:"grade"`
	Thickness      string           `json:"thickness"`
	Finish         string           `json:"finish"`
	Price          decimal.Decimal  `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	StockQuantity  int              `json:"stock_quantity"`
	Unit           string           `json:"unit"`
	Location       string           `json:"location"`
	SlabLength     *decimal.Decimal `json:"slab_length"`
	SlabWidth      *decimal.Decimal `json:"slab_width"`
	ImageURL       string           `json:"image_url"`
	DisplayOnline  bool             `json:"display_online"`
}

type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Supplier       *string          `json:"supplier"`
	Category       *string          `json:"category"`
	Grade          *string          `json:"grade"`
	Thickness      *string          `json:"thickness"`
	Finish         *string          `json:"finish"`
	Price          *decimal.Decimal `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	StockQuantity  *int             `json:"stock_quantity"`
	Unit           *string          `json:"unit"`
	Location       *string          `json:"location"`
	SlabLength     *decimal.Decimal `json:"slab_length"`
	SlabWidth      *decimal.Decimal `json:"slab_width"`
	ImageURL       *string          `json:"image_url"`
	IsActive       *bool            `json:"is_active"`
	DisplayOnline  *bool            `json:"display_online"`
}

// GET /api/products?category=Granite&supplier=X&grade=Premium&search=blue&include_inactive=true
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if c.Query("include_inactive") != "true" {
			dbq = dbq.Where("is_active = ?", true)
		}
		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}
		if supplier := c.Query("supplier"); supplier != "" {
			dbq = dbq.Where("supplier = ?", supplier)
		}
		if grade := c.Query("grade"); grade != "" {
			dbq = dbq.Where("grade = ?", grade)
		}
		if finish := c.Query("finish"); finish != "" {
			dbq = dbq.Where("finish = ?", finish)
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			dbq = dbq.Where("name ILIKE ? OR bundle_id ILIKE ? OR description ILIKE ?", like, like, like)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		return c.JSON(toProductResponse(p))
	}
}

// POST /api/products (admin, inventory_specialist)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.BundleID = strings.TrimSpace(body.BundleID)
		body.Name = strings.TrimSpace(body.Name)

		if body.BundleID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "bundle_id and name are required")
		}
		if body.Supplier == "" || body.Category == "" {
			return fiber.NewError(fiber.StatusBadRequest, "supplier and category are required")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
		}

		var existing models.Product
		if err := database.DB.Where("bundle_id = ?", body.BundleID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "bundle_id is already in use")
		}

		unit := strings.TrimSpace(body.Unit)
		if unit == "" {
			unit = "sqft"
		}

		p := models.Product{
			BundleID:       body.BundleID,
			Name:           body.Name,
			Description:    body.Description,
			Supplier:       body.Supplier,
			Category:       body.Category,
			Grade:          body.Grade,
			Thickness:      body.Thickness,
			Finish:         body.Finish,
			Price:          body.Price,
			WholesalePrice: body.WholesalePrice,
			StockQuantity:  body.StockQuantity,
			Unit:           unit,
			Location:       body.Location,
			SlabLength:     body.SlabLength,
			SlabWidth:      body.SlabWidth,
			ImageURL:       body.ImageURL,
			IsActive:       true,
			DisplayOnline:  body.DisplayOnline,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.ActivityActionCreate,
			Description: "product created: " + p.BundleID,
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/products/:id (admin, inventory_specialist)
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		before := p

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			p.Name = name
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.Supplier != nil {
			p.Supplier = *body.Supplier
		}
		if body.Category != nil {
			p.Category = *body.Category
		}
		if body.Grade != nil {
			p.Grade = *body.Grade
		}
		if body.Thickness != nil {
			p.Thickness = *body.Thickness
		}
		if body.Finish != nil {
			p.Finish = *body.Finish
		}
		if body.Price != nil {
			if body.Price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			p.Price = *body.Price
		}
		if body.WholesalePrice != nil {
			p.WholesalePrice = body.WholesalePrice
		}
		if body.StockQuantity != nil {
			if *body.StockQuantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "stock_quantity cannot be negative")
			}
			p.StockQuantity = *body.StockQuantity
		}
		if body.Unit != nil {
			p.Unit = *body.Unit
		}
		if body.Location != nil {
			p.Location = *body.Location
		}
		if body.SlabLength != nil {
			p.SlabLength = body.SlabLength
		}
		if body.SlabWidth != nil {
			p.SlabWidth = body.SlabWidth
		}
		if body.ImageURL != nil {
			p.ImageURL = *body.ImageURL
		}
		if body.IsActive != nil {
			p.IsActive = *body.IsActive
		}
		if body.DisplayOnline != nil {
			p.DisplayOnline = *body.DisplayOnline
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.ActivityActionUpdate,
			Description: "product updated: " + p.BundleID,
			Before:      before,
			After:       p,
		})

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/products/:id (admin)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var slabCount int64
		database.DB.Model(&models.Slab{}).Where("product_id = ?", p.ID).Count(&slabCount)
		if slabCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product still has slabs; delete or reassign them first")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.ActivityActionDelete,
			Description: "product deleted: " + p.BundleID,
			Before:      p,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
