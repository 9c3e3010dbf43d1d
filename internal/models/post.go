package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"-" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"-" json:"comment_count"`
	// Liked indicates whether the current viewer liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`
}
