package reports

import (
	"encoding/json"
	"fmt"
	"time"

	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseRange reads optional from/to (YYYY-MM-DD) query params.
func parseRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if fromStr := c.Query("from"); fromStr != "" {
		t, perr := time.Parse("2006-01-02", fromStr)
		if perr != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "from date is invalid (YYYY-MM-DD)")
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, perr := time.Parse("2006-01-02", toStr)
		if perr != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "to date is invalid (YYYY-MM-DD)")
		}
		// inclusive end of day
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	return from, to, nil
}

func loadQuotes(from, to *time.Time) ([]models.Quote, error) {
	dbq := database.DB.Model(&models.Quote{})
	if from != nil {
		dbq = dbq.Where("created_at >= ?", *from)
	}
	if to != nil {
		dbq = dbq.Where("created_at < ?", *to)
	}
	var quotes []models.Quote
	err := dbq.Find(&quotes).Error
	return quotes, err
}

// GET /api/reports/sales-summary?from=2026-01-01&to=2026-06-30
func SalesSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		quotes, err := loadQuotes(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load quotes")
		}

		return c.JSON(Summarize(quotes, time.Now()))
	}
}

// GET /api/reports/top-clients?limit=10
func TopClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		limit := 10
		if limitStr := c.Query("limit"); limitStr != "" {
			var l int
			if _, err := fmt.Sscan(limitStr, &l); err != nil || l <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit is invalid")
			}
			limit = l
		}

		quotes, err := loadQuotes(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load quotes")
		}

		var clients []models.Client
		if err := database.DB.Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load clients")
		}
		names := make(map[uint]string, len(clients))
		for _, cl := range clients {
			names[cl.ID] = cl.Name
		}

		return c.JSON(TopClients(quotes, names, limit, time.Now()))
	}
}

// GET /api/reports/inventory
func InventoryReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Where("is_active = ?", true).Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load products")
		}
		var slabs []models.Slab
		if err := database.DB.Find(&slabs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load slabs")
		}

		return c.JSON(RollupInventory(products, slabs))
	}
}

// GET /api/reports/pipeline
func PipelineReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		quotes, err := loadQuotes(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load quotes")
		}

		return c.JSON(BreakdownByStage(quotes))
	}
}

type GenerateReportRequest struct {
	ReportType models.ReportType `json:"report_type"`
	From       string            `json:"from"`
	To         string            `json:"to"`
}

// POST /api/reports/generate
// Runs the requested reducer and persists the result as a snapshot row.
func GenerateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if !models.ValidReportType(body.ReportType) {
			return fiber.NewError(fiber.StatusBadRequest, "report_type is invalid")
		}

		var periodStart, periodEnd time.Time
		var from, to *time.Time
		if body.From != "" {
			t, err := time.Parse("2006-01-02", body.From)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid (YYYY-MM-DD)")
			}
			periodStart = t
			from = &t
		}
		if body.To != "" {
			t, err := time.Parse("2006-01-02", body.To)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid (YYYY-MM-DD)")
			}
			periodEnd = t
			end := t.AddDate(0, 0, 1)
			to = &end
		}

		var payload any
		now := time.Now()

		switch body.ReportType {
		case models.ReportTypeSales:
			quotes, err := loadQuotes(from, to)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not load quotes")
			}
			payload = Summarize(quotes, now)
		case models.ReportTypePipeline:
			quotes, err := loadQuotes(from, to)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not load quotes")
			}
			payload = BreakdownByStage(quotes)
		case models.ReportTypeInventory:
			var products []models.Product
			if err := database.DB.Where("is_active = ?", true).Find(&products).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not load products")
			}
			var slabs []models.Slab
			if err := database.DB.Find(&slabs).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not load slabs")
			}
			payload = RollupInventory(products, slabs)
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not encode report")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		report := models.Report{
			ReportType:  body.ReportType,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			GeneratedBy: userID,
			Data:        string(data),
		}
		if err := database.DB.Create(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save report")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":          report.ID,
			"report_type": report.ReportType,
			"created_at":  report.CreatedAt,
			"data":        json.RawMessage(data),
		})
	}
}

// GET /api/reports?report_type=sales
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Report{})
		if rt := c.Query("report_type"); rt != "" {
			dbq = dbq.Where("report_type = ?", rt)
		}

		var list []models.Report
		if err := dbq.Order("created_at desc").Limit(100).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list reports")
		}

		type item struct {
			ID          uint              `json:"id"`
			ReportType  models.ReportType `json:"report_type"`
			PeriodStart time.Time         `json:"period_start"`
			PeriodEnd   time.Time         `json:"period_end"`
			GeneratedBy uint              `json:"generated_by"`
			CreatedAt   time.Time         `json:"created_at"`
			Data        json.RawMessage   `json:"data"`
		}
		res := make([]item, 0, len(list))
		for _, r := range list {
			res = append(res, item{
				ID:          r.ID,
				ReportType:  r.ReportType,
				PeriodStart: r.PeriodStart,
				PeriodEnd:   r.PeriodEnd,
				GeneratedBy: r.GeneratedBy,
				CreatedAt:   r.CreatedAt,
				Data:        json.RawMessage(r.Data),
			})
		}
		return c.JSON(res)
	}
}
