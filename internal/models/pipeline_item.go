package models

import "time"

type ProjectStage string

const (
	ProjectStageQuote      ProjectStage = "quote"
	ProjectStageApproved   ProjectStage = "approved"
	ProjectStageProduction ProjectStage = "production"
	ProjectStageDelivery   ProjectStage = "delivery"
	ProjectStageCompleted  ProjectStage = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// PipelineItem links a cart to a client through the production pipeline.
// Descriptive only; any stage may follow any other.
type PipelineItem struct {
	ID         uint         `gorm:"primaryKey"`
	CartID     uint         `gorm:"index;not null"`
	Cart       Cart         `gorm:"foreignKey:CartID"`
	ClientID   uint         `gorm:"index;not null"`
	Client     Client       `gorm:"foreignKey:ClientID"`
	Stage      ProjectStage `gorm:"size:20;not null;default:quote;index"`
	Priority   Priority     `gorm:"size:10;not null;default:medium"`
	AssignedTo *uint        `gorm:"index"`
	Notes      string       `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidProjectStage(s ProjectStage) bool {
	switch s {
	case ProjectStageQuote, ProjectStageApproved, ProjectStageProduction,
		ProjectStageDelivery, ProjectStageCompleted:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
