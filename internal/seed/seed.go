// Package seed populates a database with demo data for local development.
package seed

import (
	"fmt"
	"math/rand"

	"connectin/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the password every seeded account logs in with.
const DemoPassword = "password123"

// Options controls how much demo data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	FollowsPerUser  int
	LikesPerUser    int
	CommentsPerUser int
}

// DefaultOptions returns a small but lively dataset.
func DefaultOptions() Options {
	return Options{
		Users:           12,
		PostsPerUser:    4,
		FollowsPerUser:  5,
		LikesPerUser:    8,
		CommentsPerUser: 3,
	}
}

// Run fills the database with fake users, posts, follows, likes and
// comments. It is idempotent per email, so re-running only tops up.
func Run(db *gorm.DB, opts Options) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d@connectin.example", i+1),
			Password: string(hash),
			Headline: gofakeit.JobTitle() + " at " + gofakeit.Company(),
			Bio:      gofakeit.Sentence(12),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
			return fmt.Errorf("seeding user %s: %w", user.Email, err)
		}
		if user.ID == 0 {
			// Already seeded on a previous run; reuse the existing row.
			if err := db.Where("email = ?", user.Email).First(user).Error; err != nil {
				return fmt.Errorf("loading seeded user %s: %w", user.Email, err)
			}
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				UserID:  user.ID,
				Content: gofakeit.Paragraph(1, 2, 12, " "),
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seeding post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}

	for _, user := range users {
		for _, other := range pick(users, opts.FollowsPerUser) {
			if other.ID == user.ID {
				continue
			}
			follow := &models.Follow{FollowerID: user.ID, FolloweeID: other.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
				return fmt.Errorf("seeding follow %d->%d: %w", user.ID, other.ID, err)
			}
		}
		for _, post := range pick(posts, opts.LikesPerUser) {
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return fmt.Errorf("seeding like %d->%d: %w", user.ID, post.ID, err)
			}
		}
		for _, post := range pick(posts, opts.CommentsPerUser) {
			comment := &models.Comment{
				UserID:  user.ID,
				PostID:  post.ID,
				Content: gofakeit.Sentence(8),
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
			}
		}
	}

	return nil
}

// pick returns up to n distinct random elements of items.
func pick[T any](items []T, n int) []T {
	if n >= len(items) {
		n = len(items)
	}
	idx := rand.Perm(len(items))[:n]
	out := make([]T, 0, n)
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}
