package models

import "time"

// SalesRepProfile is the public storefront profile for a sales rep.
// Only profiles with IsPublic set are served on the public API.
type SalesRepProfile struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"uniqueIndex;not null"`
	User            User   `gorm:"foreignKey:UserID"`
	Slug            string `gorm:"size:100;uniqueIndex;not null"`
	Title           string `gorm:"size:100"`
	Bio             string `gorm:"type:text"`
	PublicPhone     string `gorm:"size:50"`
	PublicEmail     string `gorm:"size:100"`
	YearsExperience int    `gorm:"default:0"`
	Specialties     string `gorm:"size:255"` // comma separated
	AvatarURL       string `gorm:"size:500"`
	IsPublic        bool   `gorm:"not null;default:false;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
