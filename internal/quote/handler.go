package quote

import (
	"strings"
	"time"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/config"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LineItemResponse struct {
	ID         uint             `json:"id"`
	ProductID  *uint            `json:"product_id"`
	SlabID     *uint            `json:"slab_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Length     *decimal.Decimal `json:"length"`
	Width      *decimal.Decimal `json:"width"`
	Area       *decimal.Decimal `json:"area"`
	Notes      string           `json:"notes"`
}

type QuoteResponse struct {
	ID            uint                 `json:"id"`
	QuoteNumber   string               `json:"quote_number"`
	ClientID      uint                 `json:"client_id"`
	ProjectName   string               `json:"project_name"`
	Status        models.QuoteStatus   `json:"status"`
	PipelineStage models.PipelineStage `json:"pipeline_stage"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	ProcessingFee decimal.Decimal      `json:"processing_fee"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	ValidUntil    time.Time            `json:"valid_until"`
	Notes         string               `json:"notes"`
	SentAt        *time.Time           `json:"sent_at"`
	ApprovedBy    *uint                `json:"approved_by"`
	ApprovedAt    *time.Time           `json:"approved_at"`
	ApprovalNotes string               `json:"approval_notes"`
	SalesRepID    *uint                `json:"sales_rep_id"`
	CartID        *uint                `json:"cart_id"`
	CreatedAt     time.Time            `json:"created_at"`
	LineItems     []LineItemResponse   `json:"line_items,omitempty"`
}

func toQuoteResponse(q models.Quote, now time.Time) QuoteResponse {
	items := make([]LineItemResponse, 0, len(q.LineItems))
	for _, it := range q.LineItems {
		items = append(items, LineItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			SlabID:     it.SlabID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			Length:     it.Length,
			Width:      it.Width,
			Area:       it.Area,
			Notes:      it.Notes,
		})
	}
	return QuoteResponse{
		ID:            q.ID,
		QuoteNumber:   q.QuoteNumber,
		ClientID:      q.ClientID,
		ProjectName:   q.ProjectName,
		Status:        q.EffectiveStatus(now),
		PipelineStage: q.PipelineStage,
		Subtotal:      q.Subtotal,
		TaxRate:       q.TaxRate,
		TaxAmount:     q.TaxAmount,
		ProcessingFee: q.ProcessingFee,
		TotalAmount:   q.TotalAmount,
		ValidUntil:    q.ValidUntil,
		Notes:         q.Notes,
		SentAt:        q.SentAt,
		ApprovedBy:    q.ApprovedBy,
		ApprovedAt:    q.ApprovedAt,
		ApprovalNotes: q.ApprovalNotes,
		SalesRepID:    q.SalesRepID,
		CartID:        q.CartID,
		CreatedAt:     q.CreatedAt,
		LineItems:     items,
	}
}

type LineItemInput struct {
	ProductID *uint            `json:"product_id"`
	SlabID    *uint            `json:"slab_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Length    *decimal.Decimal `json:"length"`
	Width     *decimal.Decimal `json:"width"`
	Notes     string           `json:"notes"`
}

type CreateQuoteRequest struct {
	ClientID        uint             `json:"client_id"`
	ProjectName     string           `json:"project_name"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	CCProcessingFee bool             `json:"cc_processing_fee"`
	ValidDays       int              `json:"valid_days"`
	Notes           string           `json:"notes"`
	SalesRepID      *uint            `json:"sales_rep_id"`
	LineItems       []LineItemInput  `json:"line_items"`
}

// GET /api/quotes?status=pending&pipeline_stage=Active&client_id=1
func ListQuotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Quote{})
		now := time.Now()

		if status := c.Query("status"); status != "" {
			// expired is derived: pending with a validity window in the past
			if models.QuoteStatus(status) == models.QuoteStatusExpired {
				dbq = dbq.Where("status = ? AND valid_until < ?", models.QuoteStatusPending, now)
			} else {
				dbq = dbq.Where("status = ?", status)
			}
		}
		if stage := c.Query("pipeline_stage"); stage != "" {
			dbq = dbq.Where("pipeline_stage = ?", stage)
		}
		if clientID := c.Query("client_id"); clientID != "" {
			dbq = dbq.Where("client_id = ?", clientID)
		}
		if repID := c.Query("sales_rep_id"); repID != "" {
			dbq = dbq.Where("sales_rep_id = ?", repID)
		}

		var quotes []models.Quote
		if err := dbq.Order("created_at desc").Find(&quotes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list quotes")
		}

		res := make([]QuoteResponse, 0, len(quotes))
		for _, q := range quotes {
			res = append(res, toQuoteResponse(q, now))
		}
		return c.JSON(res)
	}
}

// GET /api/quotes/:id
func GetQuoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.Preload("LineItems").First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}

		return c.JSON(toQuoteResponse(q, time.Now()))
	}
}

// POST /api/quotes
// Direct quote creation without a cart; totals are always computed
// server-side from the line items.
func CreateQuoteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateQuoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.ProjectName = strings.TrimSpace(body.ProjectName)
		if body.ClientID == 0 || body.ProjectName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_id and project_name are required")
		}

		var client models.Client
		if err := database.DB.First(&client, body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "client not found")
		}

		lineItems := make([]models.QuoteLineItem, 0, len(body.LineItems))
		for _, in := range body.LineItems {
			if (in.ProductID == nil) == (in.SlabID == nil) {
				return fiber.NewError(fiber.StatusBadRequest, "each line item needs exactly one of product_id or slab_id")
			}
			if in.Quantity.LessThanOrEqual(decimal.Zero) {
				return fiber.NewError(fiber.StatusBadRequest, "line item quantity must be positive")
			}
			if in.UnitPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "line item unit_price cannot be negative")
			}
			li := models.QuoteLineItem{
				ProductID:  in.ProductID,
				SlabID:     in.SlabID,
				Quantity:   in.Quantity,
				UnitPrice:  in.UnitPrice,
				TotalPrice: in.Quantity.Mul(in.UnitPrice),
				Length:     in.Length,
				Width:      in.Width,
				Notes:      in.Notes,
			}
			if in.Length != nil && in.Width != nil {
				area := in.Length.Mul(*in.Width).Div(decimal.NewFromInt(144))
				li.Area = &area
			}
			lineItems = append(lineItems, li)
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

		totals := ComputeTotals(Subtotal(lineItems), taxRate, cfg.FeeRate(), body.CCProcessingFee)

		q := models.Quote{
			QuoteNumber:   NewQuoteNumber(now),
			ClientID:      body.ClientID,
			ProjectName:   body.ProjectName,
			Status:        models.QuoteStatusPending,
			PipelineStage: models.StageActive,
			Subtotal:      totals.Subtotal,
			TaxRate:       taxRate,
			TaxAmount:     totals.TaxAmount,
			ProcessingFee: totals.ProcessingFee,
			TotalAmount:   totals.TotalAmount,
			ValidUntil:    now.AddDate(0, 0, validDays),
			Notes:         body.Notes,
			SalesRepID:    body.SalesRepID,
			CreatedBy:     userID,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&q).Error; err != nil {
				return err
			}
			if len(lineItems) == 0 {
				return nil
			}
			for i := range lineItems {
				lineItems[i].QuoteID = q.ID
			}
			return tx.Create(&lineItems).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create quote")
		}
		q.LineItems = lineItems

		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionCreate,
			Description: "quote created: " + q.QuoteNumber,
			After:       q,
		})

		return c.Status(fiber.StatusCreated).JSON(toQuoteResponse(q, now))
	}
}

type UpdateQuoteRequest struct {
	ProjectName *string          `json:"project_name"`
	Notes       *string          `json:"notes"`
	ValidUntil  *time.Time       `json:"valid_until"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	SalesRepID  *uint            `json:"sales_rep_id"`
}

// PUT /api/quotes/:id
// Metadata updates only; changing the tax rate reprices the quote from
// its line items.
func UpdateQuoteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.Preload("LineItems").First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}
		before := q

		var body UpdateQuoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.ProjectName != nil {
			name := strings.TrimSpace(*body.ProjectName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "project_name cannot be empty")
			}
			q.ProjectName = name
		}
		if body.Notes != nil {
			q.Notes = *body.Notes
		}
		if body.ValidUntil != nil {
			q.ValidUntil = *body.ValidUntil
		}
		if body.SalesRepID != nil {
			q.SalesRepID = body.SalesRepID
		}
		if body.TaxRate != nil {
			if body.TaxRate.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "tax_rate cannot be negative")
			}
			q.TaxRate = *body.TaxRate
			hadFee := q.ProcessingFee.GreaterThan(decimal.Zero)
			totals := ComputeTotals(Subtotal(q.LineItems), q.TaxRate, cfg.FeeRate(), hadFee)
			q.Subtotal = totals.Subtotal
			q.TaxAmount = totals.TaxAmount
			q.ProcessingFee = totals.ProcessingFee
			q.TotalAmount = totals.TotalAmount
		}

		if err := database.DB.Save(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update quote")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionUpdate,
			Description: "quote updated: " + q.QuoteNumber,
			Before:      before,
			After:       q,
		})

		return c.JSON(toQuoteResponse(q, time.Now()))
	}
}

type ApprovalRequest struct {
	Notes string `json:"notes"`
}

// POST /api/quotes/:id/approve (sales leader, admin)
func ApproveQuoteHandler() fiber.Handler {
	return decideQuote(models.QuoteStatusApproved)
}

// POST /api/quotes/:id/reject (sales leader, admin)
func RejectQuoteHandler() fiber.Handler {
	return decideQuote(models.QuoteStatusRejected)
}

func decideQuote(decision models.QuoteStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}

		var body ApprovalRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		old := q.Status
		now := time.Now()
		q.Status = decision
		q.ApprovedBy = &userID
		q.ApprovedAt = &now
		q.ApprovalNotes = body.Notes
		if decision == models.QuoteStatusApproved {
			q.PipelineStage = models.StageWon
		}

		if err := database.DB.Save(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update quote")
		}

		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionStatus,
			Description: "quote " + q.QuoteNumber + " " + string(old) + " -> " + string(decision),
		})

		return c.JSON(toQuoteResponse(q, now))
	}
}

type UpdateStatusRequest struct {
	Status models.QuoteStatus `json:"status"`
}

// PATCH /api/quotes/:id/status
func UpdateQuoteStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if !models.ValidQuoteStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "status is invalid")
		}

		old := q.Status
		q.Status = body.Status
		if body.Status == models.QuoteStatusSent && q.SentAt == nil {
			now := time.Now()
			q.SentAt = &now
		}

		if err := database.DB.Save(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update quote status")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionStatus,
			Description: "quote " + q.QuoteNumber + " status: " + string(old) + " -> " + string(body.Status),
		})

		return c.JSON(toQuoteResponse(q, time.Now()))
	}
}

type UpdateStageRequest struct {
	PipelineStage models.PipelineStage `json:"pipeline_stage"`
}

// PATCH /api/quotes/:id/stage
func UpdateQuoteStageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}

		var body UpdateStageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if !models.ValidPipelineStage(body.PipelineStage) {
			return fiber.NewError(fiber.StatusBadRequest, "pipeline_stage is invalid")
		}

		q.PipelineStage = body.PipelineStage
		if err := database.DB.Save(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update pipeline stage")
		}

		return c.JSON(toQuoteResponse(q, time.Now()))
	}
}

// DELETE /api/quotes/:id (admin)
func DeleteQuoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var q models.Quote
		if err := database.DB.First(&q, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "quote not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("quote_id = ?", q.ID).Delete(&models.QuoteLineItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&q).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete quote")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "quote",
			EntityID:    q.ID,
			Action:      models.ActivityActionDelete,
			Description: "quote deleted: " + q.QuoteNumber,
			Before:      q,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
