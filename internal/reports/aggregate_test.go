package reports

import (
	"testing"
	"time"

	"stonecrm-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func quoteWith(clientID uint, status models.QuoteStatus, total string) models.Quote {
	return models.Quote{
		ClientID:    clientID,
		Status:      status,
		TotalAmount: dec(total),
		ValidUntil:  now.AddDate(0, 1, 0),
	}
}

func TestSummarizeEmptyInputHasNoNaN(t *testing.T) {
	s := Summarize(nil, now)

	assert.Equal(t, 0, s.TotalQuotes)
	assert.True(t, s.TotalRevenue.Equal(decimal.Zero))
	assert.True(t, s.ConversionRate.Equal(decimal.Zero))
	assert.True(t, s.AverageQuoteValue.Equal(decimal.Zero))
}

func TestSummarizeRevenueCountsApprovedOnly(t *testing.T) {
	quotes := []models.Quote{
		quoteWith(1, models.QuoteStatusApproved, "100.00"),
		quoteWith(1, models.QuoteStatusApproved, "300.00"),
		quoteWith(2, models.QuoteStatusPending, "500.00"),
		quoteWith(2, models.QuoteStatusRejected, "100.00"),
	}

	s := Summarize(quotes, now)

	assert.Equal(t, 4, s.TotalQuotes)
	assert.True(t, s.TotalRevenue.Equal(dec("400.00")), "revenue %s", s.TotalRevenue)
	assert.True(t, s.ConversionRate.Equal(dec("0.5")), "rate %s", s.ConversionRate)
	assert.True(t, s.AverageQuoteValue.Equal(dec("250.00")))
	assert.Equal(t, 2, s.QuotesByStatus[models.QuoteStatusApproved])
}

func TestSummarizeDerivesExpired(t *testing.T) {
	stale := quoteWith(1, models.QuoteStatusPending, "100.00")
	stale.ValidUntil = now.AddDate(0, 0, -1)

	s := Summarize([]models.Quote{stale}, now)

	assert.Equal(t, 1, s.QuotesByStatus[models.QuoteStatusExpired])
	assert.Equal(t, 0, s.QuotesByStatus[models.QuoteStatusPending])
}

func TestTopClientsRanksByApprovedSpend(t *testing.T) {
	quotes := []models.Quote{
		quoteWith(1, models.QuoteStatusApproved, "100.00"),
		quoteWith(2, models.QuoteStatusApproved, "900.00"),
		quoteWith(2, models.QuoteStatusApproved, "100.00"),
		quoteWith(3, models.QuoteStatusPending, "5000.00"), // not approved, ignored
	}
	names := map[uint]string{1: "Acme", 2: "Summit", 3: "Ridge"}

	top := TopClients(quotes, names, 2, now)

	assert.Len(t, top, 2)
	assert.Equal(t, uint(2), top[0].ClientID)
	assert.Equal(t, "Summit", top[0].ClientName)
	assert.True(t, top[0].TotalSpend.Equal(dec("1000.00")))
	assert.Equal(t, 2, top[0].QuoteCount)
	assert.Equal(t, uint(1), top[1].ClientID)
}

func TestTopClientsEmpty(t *testing.T) {
	assert.Empty(t, TopClients(nil, nil, 5, now))
}

func TestRollupInventoryGroupsByCategory(t *testing.T) {
	products := []models.Product{
		{ID: 1, Category: "Granite", Price: dec("50.00"), StockQuantity: 3},
		{ID: 2, Category: "Granite", Price: dec("80.00"), StockQuantity: 1},
		{ID: 3, Category: "Marble", Price: dec("120.00"), StockQuantity: 2},
	}
	slabs := []models.Slab{
		{ProductID: 1, Length: decPtr("120"), Width: decPtr("72")}, // 60 sqft
		{ProductID: 1, Length: decPtr("120"), Width: decPtr("72")},
		{ProductID: 3}, // no dimensions: counted, no area
		{ProductID: 99}, // orphan slab ignored
	}

	rollups := RollupInventory(products, slabs)

	assert.Len(t, rollups, 2)
	granite := rollups[0]
	assert.Equal(t, "Granite", granite.Category)
	assert.Equal(t, 2, granite.Bundles)
	assert.Equal(t, 2, granite.SlabCount)
	assert.True(t, granite.TotalArea.Equal(dec("120")), "area %s", granite.TotalArea)
	assert.True(t, granite.StockValue.Equal(dec("230.00")), "value %s", granite.StockValue)

	marble := rollups[1]
	assert.Equal(t, 1, marble.SlabCount)
	assert.True(t, marble.TotalArea.Equal(decimal.Zero))
	assert.True(t, marble.StockValue.Equal(dec("240.00")))
}

func TestBreakdownByStageKeepsFunnelOrder(t *testing.T) {
	quotes := []models.Quote{
		{PipelineStage: models.StageWon, TotalAmount: dec("100.00")},
		{PipelineStage: models.StageActive, TotalAmount: dec("50.00")},
		{PipelineStage: models.StageWon, TotalAmount: dec("25.00")},
	}

	b := BreakdownByStage(quotes)

	assert.Len(t, b, 5)
	assert.Equal(t, models.StageActive, b[0].Stage)
	assert.Equal(t, 1, b[0].QuoteCount)
	assert.Equal(t, models.StageWon, b[4].Stage)
	assert.Equal(t, 2, b[4].QuoteCount)
	assert.True(t, b[4].TotalValue.Equal(dec("125.00")))
	// untouched stages report zero value, not nil
	assert.True(t, b[1].TotalValue.Equal(decimal.Zero))
}
