package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
	CartStatusAbandoned CartStatus = "abandoned"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:100;not null"`
	Status    CartStatus `gorm:"size:20;not null;default:active;index"`
	ClientID  *uint      `gorm:"index"`
	Client    *Client    `gorm:"foreignKey:ClientID"`
	CreatedBy uint       `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItem `gorm:"foreignKey:CartID"`
}

// CartItem references a product or a slab, never both. TotalPrice is
// derived from Quantity*UnitPrice and recomputed on write.
type CartItem struct {
	ID         uint            `gorm:"primaryKey"`
	CartID     uint            `gorm:"index;not null"`
	ProductID  *uint           `gorm:"index"`
	Product    *Product        `gorm:"foreignKey:ProductID"`
	SlabID     *uint           `gorm:"index"`
	Slab       *Slab           `gorm:"foreignKey:SlabID"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes      string          `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
