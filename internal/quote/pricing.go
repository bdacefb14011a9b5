package quote

import (
	"fmt"
	"strings"
	"time"

	"stonecrm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals carries the derived pricing of a quote. Every field is computed
// here; stored values are never accepted from clients.
type Totals struct {
	Subtotal      decimal.Decimal
	ProcessingFee decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}

// ComputeTotals prices a subtotal: an optional flat-rate card processing
// fee, tax on the subtotal, and the grand total.
//
//	total = subtotal + (ccFee ? subtotal*feeRate : 0) + subtotal*taxRate
func ComputeTotals(subtotal, taxRate, feeRate decimal.Decimal, ccProcessingFee bool) Totals {
	fee := decimal.Zero
	if ccProcessingFee {
		fee = subtotal.Mul(feeRate)
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal:      subtotal,
		ProcessingFee: fee,
		TaxAmount:     tax,
		TotalAmount:   subtotal.Add(fee).Add(tax),
	}
}

// Subtotal sums line totals.
func Subtotal(items []models.QuoteLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return sum
}

// NewQuoteNumber builds a unique human-scannable quote number,
// e.g. QT-2026-9F3A2C1B.
func NewQuoteNumber(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("QT-%d-%s", now.Year(), id[:8])
}
