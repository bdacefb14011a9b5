package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable bundle of stone material. Individual pieces
// within a bundle are tracked as Slab rows keyed by BundleID.
type Product struct {
	ID             uint             `gorm:"primaryKey"`
	BundleID       string           `gorm:"size:50;uniqueIndex;not null"`
	Name           string           `gorm:"size:100;not null;index"`
	Description    string           `gorm:"type:text"`
	Supplier       string           `gorm:"size:100;not null;index"`
	Category       string           `gorm:"size:50;not null;index"`
	Grade          string           `gorm:"size:50;not null;index"`
	Thickness      string           `gorm:"size:50;not null"`
	Finish         string           `gorm:"size:50;not null;index"`
	Price          decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	WholesalePrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	StockQuantity  int              `gorm:"not null;default:0"`
	Unit           string           `gorm:"size:20;not null;default:sqft"`
	Location       string           `gorm:"size:100;index"`
	SlabLength     *decimal.Decimal `gorm:"type:decimal(8,2)"` // inches
	SlabWidth      *decimal.Decimal `gorm:"type:decimal(8,2)"` // inches
	ImageURL       string           `gorm:"size:500"`
	IsActive       bool             `gorm:"not null;default:true;index"`
	DisplayOnline  bool             `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Slabs []Slab `gorm:"foreignKey:ProductID"`
}
