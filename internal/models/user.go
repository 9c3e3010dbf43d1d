// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered ConnectIn member. Email is stored lower-cased
// and the password column always holds a bcrypt hash, never plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`

	// FollowerCount is not persisted; computed at query time for search results.
	FollowerCount int `gorm:"-" json:"follower_count"`
}
