package models

import "time"

// StorefrontSession is the server-side replacement for what the storefront
// used to keep in browser storage: recently viewed products, favorites and
// a remembered client email. Created on first visit, deleted on explicit
// sign-out.
type StorefrontSession struct {
	ID              uint   `gorm:"primaryKey"`
	Token           string `gorm:"size:36;uniqueIndex;not null"`
	RememberedEmail string `gorm:"size:100"`

	// product ID lists (JSON arrays)
	RecentlyViewed string `gorm:"type:jsonb;default:'[]'"`
	Favorites      string `gorm:"type:jsonb;default:'[]'"`

	CreatedAt  time.Time
	LastSeenAt time.Time `gorm:"index"`
}
