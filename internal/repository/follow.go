// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"connectin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Counts(ctx context.Context, userID uint) (followers, following int, err error)
	FollowerCounts(ctx context.Context, userIDs []uint) (map[uint]int, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle flips the presence of the follower->followee edge and reports the
// resulting state, using the same race-safe delete-then-insert shape as
// post likes.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, models.NewStorageError(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return true, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (int, int, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, models.NewStorageError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, models.NewStorageError(err)
	}
	return int(followers), int(following), nil
}

// FollowerCounts returns follower totals for a batch of users in one
// grouped query.
func (r *followRepository) FollowerCounts(ctx context.Context, userIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FolloweeID uint
		N          int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("followee_id, COUNT(*) AS n").
		Where("followee_id IN ?", userIDs).
		Group("followee_id").
		Scan(&rows).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	for _, row := range rows {
		counts[row.FolloweeID] = row.N
	}
	return counts, nil
}
