package models

import "time"

type Client struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	Email      string `gorm:"size:100;index"`
	Phone      string `gorm:"size:50"`
	Company    string `gorm:"size:100"`
	Address    string `gorm:"size:255"`
	City       string `gorm:"size:100"`
	State      string `gorm:"size:50"`
	ZipCode    string `gorm:"size:20"`
	Notes      string `gorm:"type:text"`
	SalesRepID *uint  `gorm:"index"`
	SalesRep   *User  `gorm:"foreignKey:SalesRepID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
