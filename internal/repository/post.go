// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"connectin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListFeed(ctx context.Context, limit int, viewerID uint) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit int, viewerID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit int, viewerID uint) ([]*models.Post, error)
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &post, nil
}

func (r *postRepository) ListFeed(ctx context.Context, limit int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if err := r.annotate(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if err := r.annotate(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("LOWER(content) LIKE ?", like).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if err := r.annotate(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// postCountRow receives grouped COUNT(*) results keyed by post id.
type postCountRow struct {
	PostID uint
	N      int
}

// annotate fills LikeCount, CommentCount and Liked for a page of posts using
// grouped aggregation: one GROUP BY query over likes, one over comments and
// one pluck of the viewer's liked post ids.
func (r *postRepository) annotate(ctx context.Context, posts []*models.Post, viewerID uint) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var likeRows []postCountRow
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return models.NewStorageError(err)
	}
	for _, row := range likeRows {
		byID[row.PostID].LikeCount = row.N
	}

	var commentRows []postCountRow
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return models.NewStorageError(err)
	}
	for _, row := range commentRows {
		byID[row.PostID].CommentCount = row.N
	}

	if viewerID == 0 {
		return nil
	}
	likedIDs, err := r.LikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for _, id := range likedIDs {
		byID[id].Liked = true
	}
	return nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likedPostIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPostIDs).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return likedPostIDs, nil
}

// ToggleLike flips the presence of the (userID, postID) like and reports the
// resulting state. The delete-then-insert order plus ON CONFLICT DO NOTHING
// keeps concurrent identical toggles from surfacing a uniqueness violation.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewStorageError(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return true, nil
}
