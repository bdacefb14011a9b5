package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
	// QuoteStatusExpired is derived (pending past ValidUntil), never stored.
	QuoteStatusExpired QuoteStatus = "expired"
)

type PipelineStage string

const (
	StageActive   PipelineStage = "Active"
	StageAtRisk   PipelineStage = "At Risk"
	StageActioned PipelineStage = "Actioned"
	StageClosed   PipelineStage = "Closed"
	StageWon      PipelineStage = "Won"
)

type Quote struct {
	ID            uint            `gorm:"primaryKey"`
	QuoteNumber   string          `gorm:"size:50;uniqueIndex;not null"`
	ClientID      uint            `gorm:"index;not null"`
	Client        Client          `gorm:"foreignKey:ClientID"`
	ProjectName   string          `gorm:"size:100;not null"`
	Status        QuoteStatus     `gorm:"size:20;not null;default:pending;index"`
	PipelineStage PipelineStage   `gorm:"size:20;not null;default:Active"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ProcessingFee decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValidUntil    time.Time       `gorm:"not null"`
	Notes         string          `gorm:"type:text"`
	SentAt        *time.Time
	ApprovedBy    *uint
	ApprovedAt    *time.Time
	ApprovalNotes string    `gorm:"size:500"`
	SalesRepID    *uint     `gorm:"index"`
	CreatedBy     uint      `gorm:"index;not null"`
	CartID        *uint     `gorm:"index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	LineItems []QuoteLineItem `gorm:"foreignKey:QuoteID"`
}

type QuoteLineItem struct {
	ID         uint             `gorm:"primaryKey"`
	QuoteID    uint             `gorm:"index;not null"`
	ProductID  *uint            `gorm:"index"`
	SlabID     *uint            `gorm:"index"`
	Quantity   decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	UnitPrice  decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Length     *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Width      *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Area       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Notes      string           `gorm:"type:text"`
	CreatedAt  time.Time
}

func ValidQuoteStatus(s QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusPending, QuoteStatusSent,
		QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

func ValidPipelineStage(s PipelineStage) bool {
	switch s {
	case StageActive, StageAtRisk, StageActioned, StageClosed, StageWon:
		return true
	}
	return false
}

// EffectiveStatus reports the derived state: a pending quote past its
// validity window is expired without the row ever being rewritten.
func (q *Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if q.Status == QuoteStatusPending && now.After(q.ValidUntil) {
		return QuoteStatusExpired
	}
	return q.Status
}
