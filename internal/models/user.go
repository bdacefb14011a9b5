package models

import "time"

type UserRole string

const (
	RoleAdmin               UserRole = "admin"
	RoleSalesLeader         UserRole = "sales_leader"
	RoleSalesRep            UserRole = "sales_rep"
	RoleInventorySpecialist UserRole = "inventory_specialist"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:50;uniqueIndex;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	FirstName    string   `gorm:"size:50;not null"`
	LastName     string   `gorm:"size:50;not null"`
	Role         UserRole `gorm:"size:30;not null;default:sales_rep"`
	IsActive     bool     `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
