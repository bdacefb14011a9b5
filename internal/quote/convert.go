package quote

import (
	"time"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/config"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ConvertCartRequest struct {
	ClientID        *uint            `json:"client_id"`
	ProjectName     string           `json:"project_name"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	CCProcessingFee bool             `json:"cc_processing_fee"`
	ValidDays       int              `json:"valid_days"`
	Notes           string           `json:"notes"`
	SalesRepID      *uint            `json:"sales_rep_id"`
}

// POST /api/carts/:id/convert-to-quote
// Builds quote line items from the cart, prices them, and persists quote,
// line items and the cart's converted status in one transaction. On any
// failure nothing is kept.
func ConvertCartHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cart models.Cart
		if err := database.DB.Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}
		if cart.Status != models.CartStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "cart has already been converted or abandoned")
		}
		if len(cart.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
		}

		var body ConvertCartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		clientID := cart.ClientID
		if body.ClientID != nil {
			clientID = body.ClientID
		}
		if clientID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "client_id is required")
		}
		var client models.Client
		if err := database.DB.First(&client, *clientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "client not found")
		}

		projectName := body.ProjectName
		if projectName == "" {
			projectName = cart.Name
		}

		taxRate := cfg.TaxRate()
		if body.TaxRate != nil {
			if body.TaxRate.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "tax_rate cannot be negative")
			}
			taxRate = *body.TaxRate
		}

		validDays := body.ValidDays
		if validDays <= 0 {
			validDays = 30
		}

		now := time.Now()
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		q, err := convertCart(database.DB, &cart, convertParams{
			ClientID:        *clientID,
			ProjectName:     projectName,
			TaxRate:         taxRate,
			FeeRate:         cfg.FeeRate(),
			CCProcessingFee: body.CCProcessingFee,
			ValidUntil:      now.AddDate(0, 0, validDays),
			Notes:           body.Notes,
			SalesRepID:      body.SalesRepID,
			CreatedBy:       userID,
			Now:             now,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not convert cart to quote")
		}

		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionCreate,
			Description: "quote " + q.QuoteNumber + " created from cart " + cart.Name,
			After:       q,
		})

		return c.Status(fiber.StatusCreated).JSON(toQuoteResponse(*q, now))
	}
}

type convertParams struct {
	ClientID        uint
	ProjectName     string
	TaxRate         decimal.Decimal
	FeeRate         decimal.Decimal
	CCProcessingFee bool
	ValidUntil      time.Time
	Notes           string
	SalesRepID      *uint
	CreatedBy       uint
	Now             time.Time
}

func convertCart(db *gorm.DB, cart *models.Cart, p convertParams) (*models.Quote, error) {
	lineItems := make([]models.QuoteLineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		li := models.QuoteLineItem{
			ProductID:  it.ProductID,
			SlabID:     it.SlabID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.Quantity.Mul(it.UnitPrice),
			Notes:      it.Notes,
		}
		// carry slab dimensions onto the line for area-based reporting
		if it.SlabID != nil {
			var slab models.Slab
			if err := db.First(&slab, *it.SlabID).Error; err == nil {
				li.Length = slab.Length
				li.Width = slab.Width
				if slab.Length != nil && slab.Width != nil {
					area := slab.Length.Mul(*slab.Width).Div(decimal.NewFromInt(144))
					li.Area = &area
				}
			}
		}
		lineItems = append(lineItems, li)
	}

	totals := ComputeTotals(Subtotal(lineItems), p.TaxRate, p.FeeRate, p.CCProcessingFee)

	q := models.Quote{
		QuoteNumber:   NewQuoteNumber(p.Now),
		ClientID:      p.ClientID,
		ProjectName:   p.ProjectName,
		Status:        models.QuoteStatusPending,
		PipelineStage: models.StageActive,
		Subtotal:      totals.Subtotal,
		TaxRate:       p.TaxRate,
		TaxAmount:     totals.TaxAmount,
		ProcessingFee: totals.ProcessingFee,
		TotalAmount:   totals.TotalAmount,
		ValidUntil:    p.ValidUntil,
		Notes:         p.Notes,
		SalesRepID:    p.SalesRepID,
		CreatedBy:     p.CreatedBy,
		CartID:        &cart.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return errors.Wrap(err, "create quote")
		}
		for i := range lineItems {
			lineItems[i].QuoteID = q.ID
		}
		if err := tx.Create(&lineItems).Error; err != nil {
			return errors.Wrap(err, "create line items")
		}
		if err := tx.Model(cart).Update("status", models.CartStatusConverted).Error; err != nil {
			return errors.Wrap(err, "mark cart converted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	q.LineItems = lineItems
	return &q, nil
}
