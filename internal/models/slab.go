package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SlabStatus string

const (
	SlabStatusAvailable SlabStatus = "available"
	SlabStatusSold      SlabStatus = "sold"
	SlabStatusDelivered SlabStatus = "delivered"
)

// Slab is one physical cut piece within a bundle. Status moves freely
// between values; no transition order is enforced.
type Slab struct {
	ID         uint             `gorm:"primaryKey"`
	ProductID  uint             `gorm:"index;not null"`
	Product    Product          `gorm:"foreignKey:ProductID"`
	SlabNumber string           `gorm:"size:50;not null;index"`
	Status     SlabStatus       `gorm:"size:20;not null;default:available;index"`
	Length     *decimal.Decimal `gorm:"type:decimal(8,2)"` // inches
	Width      *decimal.Decimal `gorm:"type:decimal(8,2)"` // inches
	Location   string           `gorm:"size:100"`
	Notes      string           `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidSlabStatus(s SlabStatus) bool {
	switch s {
	case SlabStatusAvailable, SlabStatusSold, SlabStatusDelivered:
		return true
	}
	return false
}
