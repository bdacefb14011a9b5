package cart

import (
	"testing"

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

func uintPtr(v uint) *uint { return &v }

func TestTotalSumsLineItems(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: uintPtr(1), Quantity: dec("2"), UnitPrice: dec("50.00")},
		{ID: 2, ProductID: uintPtr(2), Quantity: dec("1"), UnitPrice: dec("25.00")},
	}

	assert.True(t, Total(items).Equal(dec("125.00")), "got %s", Total(items))
}

func TestTotalEmptyCart(t *testing.T) {
	assert.True(t, Total(nil).Equal(decimal.Zero))
	assert.True(t, Total([]models.CartItem{}).Equal(decimal.Zero))
}

func TestAddItemIncrementsExistingReference(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: uintPtr(7), Quantity: dec("2"), UnitPrice: dec("10.00"), TotalPrice: dec("20.00")},
	}

	items = AddItem(items, models.CartItem{ProductID: uintPtr(7), Quantity: dec("3"), UnitPrice: dec("10.00")})

	assert.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(dec("5")))
	assert.True(t, items[0].TotalPrice.Equal(dec("50.00")))
}

func TestAddItemAppendsNewReference(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: uintPtr(7), Quantity: dec("2"), UnitPrice: dec("10.00")},
	}

	items = AddItem(items, models.CartItem{SlabID: uintPtr(7), Quantity: dec("1"), UnitPrice: dec("99.50")})

	assert.Len(t, items, 2)
	assert.True(t, items[1].TotalPrice.Equal(dec("99.50")))
}

func TestAddItemProductAndSlabReferencesAreDistinct(t *testing.T) {
	// same numeric ID, different reference kind: must not merge
	items := AddItem(nil, models.CartItem{ProductID: uintPtr(3), Quantity: dec("1"), UnitPrice: dec("5.00")})
	items = AddItem(items, models.CartItem{SlabID: uintPtr(3), Quantity: dec("1"), UnitPrice: dec("5.00")})

	assert.Len(t, items, 2)
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	items := []models.CartItem{
		{ID: 4, ProductID: uintPtr(1), Quantity: dec("2"), UnitPrice: dec("12.50"), TotalPrice: dec("25.00")},
	}

	items = UpdateQuantity(items, 4, dec("4"))

	assert.Len(t, items, 1)
	assert.True(t, items[0].TotalPrice.Equal(dec("50.00")))
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	items := []models.CartItem{
		{ID: 4, ProductID: uintPtr(1), Quantity: dec("2"), UnitPrice: dec("12.50")},
	}

	items = UpdateQuantity(items, 4, decimal.Zero)
	assert.Len(t, items, 0)

	// idempotent: removing again is a no-op
	items = UpdateQuantity(items, 4, decimal.Zero)
	assert.Len(t, items, 0)
}

func TestUpdateQuantityNegativeRemovesItem(t *testing.T) {
	items := []models.CartItem{
		{ID: 9, SlabID: uintPtr(2), Quantity: dec("1"), UnitPrice: dec("100.00")},
	}

	items = UpdateQuantity(items, 9, dec("-3"))
	assert.Len(t, items, 0)
}

func TestUpdateQuantityUnknownItemIsNoOp(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: uintPtr(1), Quantity: dec("1"), UnitPrice: dec("10.00")},
	}

	out := UpdateQuantity(items, 42, dec("3"))
	assert.Len(t, out, 1)
	assert.True(t, out[0].Quantity.Equal(dec("1")))
}
