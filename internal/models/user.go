// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Accounts are never hard-deleted;
// banning clears IsActive instead.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"size:150;not null" json:"first_name"`
	LastName  string `gorm:"size:150;not null" json:"last_name"`
	Password  string `gorm:"not null" json:"-"`
	IsActive  bool   `gorm:"default:true" json:"-"`
	IsStaff   bool   `gorm:"default:false" json:"-"`
	// IsSubscribed reports whether the requesting user follows this author (computed)
	IsSubscribed bool      `gorm:"->" json:"is_subscribed"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Subscription is a follower -> author relationship. A user may never
// subscribe to themselves.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"-"`
}
