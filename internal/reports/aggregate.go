package reports

import (
	"sort"
	"time"

	"stonecrm-backend/internal/models"

	"github.com/shopspring/decimal"
)

// The report reducers are pure functions over already-loaded collections.
// Earlier iterations of the console recomputed these independently per
// page; they are consolidated here as the single source of truth.

type SalesSummary struct {
	TotalQuotes       int                        `json:"total_quotes"`
	QuotesByStatus    map[models.QuoteStatus]int `json:"quotes_by_status"`
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	ConversionRate    decimal.Decimal            `json:"conversion_rate"` // approved/total, 0..1
	AverageQuoteValue decimal.Decimal            `json:"average_quote_value"`
}

// Summarize reduces quotes to the sales headline numbers. Revenue counts
// approved quotes only. With zero quotes every rate is zero, never NaN.
func Summarize(quotes []models.Quote, now time.Time) SalesSummary {
	s := SalesSummary{
		TotalQuotes:    len(quotes),
		QuotesByStatus: make(map[models.QuoteStatus]int),
	}
	s.TotalRevenue = decimal.Zero
	s.ConversionRate = decimal.Zero
	s.AverageQuoteValue = decimal.Zero

	approved := 0
	allValue := decimal.Zero
	for _, q := range quotes {
		status := q.EffectiveStatus(now)
		s.QuotesByStatus[status]++
		allValue = allValue.Add(q.TotalAmount)
		if status == models.QuoteStatusApproved {
			approved++
			s.TotalRevenue = s.TotalRevenue.Add(q.TotalAmount)
		}
	}

	if len(quotes) > 0 {
		total := decimal.NewFromInt(int64(len(quotes)))
		s.ConversionRate = decimal.NewFromInt(int64(approved)).DivRound(total, 4)
		s.AverageQuoteValue = allValue.DivRound(total, 2)
	}
	return s
}

type ClientSpend struct {
	ClientID   uint            `json:"client_id"`
	ClientName string          `json:"client_name"`
	QuoteCount int             `json:"quote_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// TopClients ranks clients by approved-quote spend, largest first,
// truncated to n. Ties keep a stable order by client ID.
func TopClients(quotes []models.Quote, clientNames map[uint]string, n int, now time.Time) []ClientSpend {
	byClient := make(map[uint]*ClientSpend)
	for _, q := range quotes {
		if q.EffectiveStatus(now) != models.QuoteStatusApproved {
			continue
		}
		cs, ok := byClient[q.ClientID]
		if !ok {
			cs = &ClientSpend{ClientID: q.ClientID, ClientName: clientNames[q.ClientID], TotalSpend: decimal.Zero}
			byClient[q.ClientID] = cs
		}
		cs.QuoteCount++
		cs.TotalSpend = cs.TotalSpend.Add(q.TotalAmount)
	}

	ranked := make([]ClientSpend, 0, len(byClient))
	for _, cs := range byClient {
		ranked = append(ranked, *cs)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalSpend.Equal(ranked[j].TotalSpend) {
			return ranked[i].TotalSpend.GreaterThan(ranked[j].TotalSpend)
		}
		return ranked[i].ClientID < ranked[j].ClientID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type CategoryRollup struct {
	Category   string          `json:"category"`
	Bundles    int             `json:"bundles"`
	SlabCount  int             `json:"slab_count"`
	TotalArea  decimal.Decimal `json:"total_area"`  // sqft, from slab dimensions
	StockValue decimal.Decimal `json:"stock_value"` // Σ stock_quantity * price
}

var sqInchesPerSqFt = decimal.NewFromInt(144)

// RollupInventory aggregates products and their slabs per category.
// Slabs without both dimensions contribute count but no area.
func RollupInventory(products []models.Product, slabs []models.Slab) []CategoryRollup {
	categoryOf := make(map[uint]string, len(products))
	byCategory := make(map[string]*CategoryRollup)

	rollup := func(category string) *CategoryRollup {
		r, ok := byCategory[category]
		if !ok {
			r = &CategoryRollup{Category: category, TotalArea: decimal.Zero, StockValue: decimal.Zero}
			byCategory[category] = r
		}
		return r
	}

	for _, p := range products {
		categoryOf[p.ID] = p.Category
		r := rollup(p.Category)
		r.Bundles++
		r.StockValue = r.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
	}

	for _, s := range slabs {
		category, ok := categoryOf[s.ProductID]
		if !ok {
			continue
		}
		r := rollup(category)
		r.SlabCount++
		if s.Length != nil && s.Width != nil {
			r.TotalArea = r.TotalArea.Add(s.Length.Mul(*s.Width).Div(sqInchesPerSqFt))
		}
	}

	out := make([]CategoryRollup, 0, len(byCategory))
	for _, r := range byCategory {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

type StageBreakdown struct {
	Stage      models.PipelineStage `json:"stage"`
	QuoteCount int                  `json:"quote_count"`
	TotalValue decimal.Decimal      `json:"total_value"`
}

// BreakdownByStage groups quotes by pipeline stage in funnel order.
func BreakdownByStage(quotes []models.Quote) []StageBreakdown {
	order := []models.PipelineStage{
		models.StageActive, models.StageAtRisk, models.StageActioned,
		models.StageClosed, models.StageWon,
	}

	byStage := make(map[models.PipelineStage]*StageBreakdown)
	for _, stage := range order {
		byStage[stage] = &StageBreakdown{Stage: stage, TotalValue: decimal.Zero}
	}
	for _, q := range quotes {
		b, ok := byStage[q.PipelineStage]
		if !ok {
			continue
		}
		b.QuoteCount++
		b.TotalValue = b.TotalValue.Add(q.TotalAmount)
	}

	out := make([]StageBreakdown, 0, len(order))
	for _, stage := range order {
		out = append(out, *byStage[stage])
	}
	return out
}
