package cart

import (
	"stonecrm-backend/internal/models"

	"github.com/shopspring/decimal"
)

// The aggregator owns the line-item arithmetic: totals are always derived
// by summation, never read back from stored fields.

// LineTotal is quantity * unit price.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Total sums line totals across all items.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.UnitPrice))
	}
	return total
}

// SameReference reports whether an item points at the given product/slab.
// An item references a product or a slab, never both.
func SameReference(it models.CartItem, productID, slabID *uint) bool {
	if productID != nil {
		return it.ProductID != nil && *it.ProductID == *productID
	}
	if slabID != nil {
		return it.SlabID != nil && *it.SlabID == *slabID
	}
	return false
}

// FindMatching returns the index of the item with the same reference,
// or -1 when there is none.
func FindMatching(items []models.CartItem, productID, slabID *uint) int {
	for i, it := range items {
		if SameReference(it, productID, slabID) {
			return i
		}
	}
	return -1
}

// AddItem merges a new line into the set: an existing reference has its
// quantity incremented, anything else is appended. There is no upper
// bound on quantity.
func AddItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	if i := FindMatching(items, item.ProductID, item.SlabID); i >= 0 {
		items[i].Quantity = items[i].Quantity.Add(item.Quantity)
		items[i].TotalPrice = LineTotal(items[i].Quantity, items[i].UnitPrice)
		return items
	}
	item.TotalPrice = LineTotal(item.Quantity, item.UnitPrice)
	return append(items, item)
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less
// removes the item; that is the documented policy, not an error. Calling
// it again for a missing item is a no-op.
func UpdateQuantity(items []models.CartItem, itemID uint, quantity decimal.Decimal) []models.CartItem {
	for i, it := range items {
		if it.ID != itemID {
			continue
		}
		if quantity.LessThanOrEqual(decimal.Zero) {
			return append(items[:i], items[i+1:]...)
		}
		items[i].Quantity = quantity
		items[i].TotalPrice = LineTotal(quantity, it.UnitPrice)
		return items
	}
	return items
}
