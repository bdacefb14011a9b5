package dashboard

import (
	"fmt"
	"sort"
	"time"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RevenueChartPoint struct {
	Label    string          `json:"label"` // day / week start / month start
	Quoted   decimal.Decimal `json:"quoted"`
	Approved decimal.Decimal `json:"approved"`
}

type RevenueChartResponse struct {
	Period        string              `json:"period"` // daily | weekly | monthly
	From          string              `json:"from"`
	To            string              `json:"to"`
	Points        []RevenueChartPoint `json:"points"`
	TotalQuoted   decimal.Decimal     `json:"total_quoted"`
	TotalApproved decimal.Decimal     `json:"total_approved"`
}

// GET /api/dashboard/revenue-chart?period=monthly&count=12
func RevenueChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count is invalid")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		var trunc string
		switch period {
		case "weekly":
			trunc = "week"
			start = end.AddDate(0, 0, -7*(count-1))
		case "monthly":
			trunc = "month"
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0)
		default:
			period = "daily"
			trunc = "day"
			start = end.AddDate(0, 0, -(count - 1))
		}
		if period != "monthly" {
			end = end.AddDate(0, 0, 1)
		}

		type row struct {
			Bucket time.Time       `gorm:"column:bucket"`
			Status string          `gorm:"column:status"`
			Total  decimal.Decimal `gorm:"column:total"`
		}
		var rows []row

		sql := fmt.Sprintf(`
			SELECT date_trunc('%s', created_at)::date AS bucket,
			       status,
			       SUM(total_amount) AS total
			FROM quotes
			WHERE created_at >= ? AND created_at < ?
			GROUP BY bucket, status
			ORDER BY bucket ASC;
		`, trunc)

		if err := database.DB.Raw(sql, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not aggregate revenue")
		}

		type bucketAgg struct {
			Bucket   time.Time
			Quoted   decimal.Decimal
			Approved decimal.Decimal
		}
		buckets := make(map[time.Time]*bucketAgg)

		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket, Quoted: decimal.Zero, Approved: decimal.Zero}
				buckets[r.Bucket] = agg
			}
			agg.Quoted = agg.Quoted.Add(r.Total)
			if r.Status == string(models.QuoteStatusApproved) {
				agg.Approved = agg.Approved.Add(r.Total)
			}
		}

		ordered := make([]bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			ordered = append(ordered, *v)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Bucket.Before(ordered[j].Bucket) })

		points := make([]RevenueChartPoint, 0, len(ordered))
		totalQuoted := decimal.Zero
		totalApproved := decimal.Zero
		for _, b := range ordered {
			points = append(points, RevenueChartPoint{
				Label:    b.Bucket.Format("2006-01-02"),
				Quoted:   b.Quoted,
				Approved: b.Approved,
			})
			totalQuoted = totalQuoted.Add(b.Quoted)
			totalApproved = totalApproved.Add(b.Approved)
		}

		return c.JSON(RevenueChartResponse{
			Period:        period,
			From:          start.Format("2006-01-02"),
			To:            end.AddDate(0, 0, -1).Format("2006-01-02"),
			Points:        points,
			TotalQuoted:   totalQuoted,
			TotalApproved: totalApproved,
		})
	}
}

// GET /api/dashboard/recent-quotes?limit=5
func RecentQuotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 5
		if limitStr := c.Query("limit"); limitStr != "" {
			var l int
			if _, err := fmt.Sscan(limitStr, &l); err == nil && l > 0 && l <= 50 {
				limit = l
			}
		}

		var quotes []models.Quote
		if err := database.DB.Preload("Client").
			Order("created_at desc").Limit(limit).Find(&quotes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list recent quotes")
		}

		now := time.Now()
		type item struct {
			ID          uint               `json:"id"`
			QuoteNumber string             `json:"quote_number"`
			ClientName  string             `json:"client_name"`
			ProjectName string             `json:"project_name"`
			Status      models.QuoteStatus `json:"status"`
			TotalAmount decimal.Decimal    `json:"total_amount"`
			CreatedAt   time.Time          `json:"created_at"`
		}
		res := make([]item, 0, len(quotes))
		for _, q := range quotes {
			res = append(res, item{
				ID:          q.ID,
				QuoteNumber: q.QuoteNumber,
				ClientName:  q.Client.Name,
				ProjectName: q.ProjectName,
				Status:      q.EffectiveStatus(now),
				TotalAmount: q.TotalAmount,
				CreatedAt:   q.CreatedAt,
			})
		}
		return c.JSON(res)
	}
}
