package service

import (
	"context"
	"strings"

	"connectin/internal/models"
	"connectin/internal/repository"
)

const (
	feedLimit        = 50
	profilePostLimit = 20
	searchPostLimit  = 20
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Image   string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Feed returns the newest posts, each annotated with like/comment counts and
// whether the viewer liked it.
func (s *PostService) Feed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	return s.postRepo.ListFeed(ctx, feedLimit, viewerID)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Post content cannot be empty")
	}

	post := &models.Post{
		UserID:  in.UserID,
		Content: content,
		Image:   in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the viewer's like on a post and reports whether the post
// is liked afterwards.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return s.postRepo.ToggleLike(ctx, userID, postID)
}
