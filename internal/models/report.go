package models

import "time"

type ReportType string

const (
	ReportTypeSales     ReportType = "sales"
	ReportTypeInventory ReportType = "inventory"
	ReportTypePipeline  ReportType = "pipeline"
)

// Report is a persisted snapshot of generated report data.
type Report struct {
	ID          uint       `gorm:"primaryKey"`
	ReportType  ReportType `gorm:"size:20;not null;index"`
	PeriodStart time.Time  `gorm:"index"`
	PeriodEnd   time.Time
	GeneratedBy uint `gorm:"index;not null"`

	// full report payload (JSON)
	Data string `gorm:"type:jsonb"`

	CreatedAt time.Time
}

func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeSales, ReportTypeInventory, ReportTypePipeline:
		return true
	}
	return false
}
