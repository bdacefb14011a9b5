package quote

import (
	"strings"
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

var (
	taxRate = dec("0.085")
	feeRate = dec("0.035")
)

func TestComputeTotalsWorkedExample(t *testing.T) {
	// cart [{qty:2, price:50.00}, {qty:1, price:25.00}] -> subtotal 125.00
	tt := ComputeTotals(dec("125.00"), taxRate, feeRate, true)

	assert.True(t, tt.ProcessingFee.Equal(dec("4.375")), "fee %s", tt.ProcessingFee)
	assert.True(t, tt.TaxAmount.Equal(dec("10.625")), "tax %s", tt.TaxAmount)
	assert.True(t, tt.TotalAmount.Equal(dec("140.00")), "total %s", tt.TotalAmount)
}

func TestComputeTotalsTable(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		ccFee    bool
	}{
		{"zero", "0", true},
		{"zero no fee", "0", false},
		{"hundred", "100.00", true},
		{"hundred no fee", "100.00", false},
		{"odd cents", "1999.99", true},
		{"odd cents no fee", "1999.99", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := dec(tc.subtotal)
			tt := ComputeTotals(sub, taxRate, feeRate, tc.ccFee)

			wantFee := decimal.Zero
			if tc.ccFee {
				wantFee = sub.Mul(feeRate)
			}
			assert.True(t, tt.ProcessingFee.Equal(wantFee))
			assert.True(t, tt.TaxAmount.Equal(sub.Mul(taxRate)))
			assert.True(t, tt.TotalAmount.Equal(sub.Add(wantFee).Add(sub.Mul(taxRate))),
				"total invariant broken: %s", tt.TotalAmount)
		})
	}
}

func TestSubtotalSumsLineTotals(t *testing.T) {
	items := []models.QuoteLineItem{
		{Quantity: dec("2"), UnitPrice: dec("50.00")},
		{Quantity: dec("1"), UnitPrice: dec("25.00")},
	}
	assert.True(t, Subtotal(items).Equal(dec("125.00")))
	assert.True(t, Subtotal(nil).Equal(decimal.Zero))
}

func TestEffectiveStatusDerivesExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pendingExpired := models.Quote{Status: models.QuoteStatusPending, ValidUntil: now.AddDate(0, 0, -1)}
	pendingValid := models.Quote{Status: models.QuoteStatusPending, ValidUntil: now.AddDate(0, 0, 30)}
	approvedOld := models.Quote{Status: models.QuoteStatusApproved, ValidUntil: now.AddDate(0, 0, -1)}

	assert.Equal(t, models.QuoteStatusExpired, pendingExpired.EffectiveStatus(now))
	assert.Equal(t, models.QuoteStatusPending, pendingValid.EffectiveStatus(now))
	// only pending quotes age out
	assert.Equal(t, models.QuoteStatusApproved, approvedOld.EffectiveStatus(now))
}

func TestNewQuoteNumberShape(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	n := NewQuoteNumber(now)

	assert.True(t, strings.HasPrefix(n, "QT-2026-"), n)
	assert.Len(t, n, len("QT-2026-")+8)
	assert.NotEqual(t, n, NewQuoteNumber(now))
}
