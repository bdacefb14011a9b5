package publicapi

import (
	"strings"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// The public catalog exposes only active, online-enabled products and
// never internal pricing (wholesale, stock value).

type PublicProductResponse struct {
	ID          uint            `json:"id"`
	BundleID    string          `json:"bundle_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Grade       string          `json:"grade"`
	Thickness   string          `json:"thickness"`
	Finish      string          `json:"finish"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"image_url"`
	InStock     bool            `json:"in_stock"`
}

func toPublicProduct(p models.Product) PublicProductResponse {
	return PublicProductResponse{
		ID:          p.ID,
		BundleID:    p.BundleID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Grade:       p.Grade,
		Thickness:   p.Thickness,
		Finish:      p.Finish,
		Price:       p.Price,
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		InStock:     p.StockQuantity > 0,
	}
}

// GET /api/public/products?category=Granite&search=blue
func ListPublicProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{}).
			Where("is_active = ? AND display_online = ?", true, true)

		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}
		if finish := c.Query("finish"); finish != "" {
			dbq = dbq.Where("finish = ?", finish)
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			dbq = dbq.Where("name ILIKE ? OR description ILIKE ?", like, like)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		res := make([]PublicProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toPublicProduct(p))
		}
		return c.JSON(res)
	}
}

// GET /api/public/products/:id
func GetPublicProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		err := database.DB.
			Where("is_active = ? AND display_online = ?", true, true).
			First(&p, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		return c.JSON(toPublicProduct(p))
	}
}
