package service

import (
	"context"
	"strings"

	"connectin/internal/models"
	"connectin/internal/repository"
)

const searchUserLimit = 10

type SearchService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// SearchResults holds the user and post hits for a query.
type SearchResults struct {
	Users []*models.User
	Posts []*models.Post
}

func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository, followRepo repository.FollowRepository) *SearchService {
	return &SearchService{userRepo: userRepo, postRepo: postRepo, followRepo: followRepo}
}

// Search matches the query case-insensitively against user name/headline/bio
// and post content. A blank query returns empty result sets without touching
// the database.
func (s *SearchService) Search(ctx context.Context, query string, viewerID uint) (*SearchResults, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return &SearchResults{}, nil
	}

	users, err := s.userRepo.Search(ctx, q, searchUserLimit)
	if err != nil {
		return nil, err
	}

	if len(users) > 0 {
		ids := make([]uint, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		counts, err := s.followRepo.FollowerCounts(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			u.FollowerCount = counts[u.ID]
		}
	}

	posts, err := s.postRepo.Search(ctx, q, searchPostLimit, viewerID)
	if err != nil {
		return nil, err
	}

	return &SearchResults{Users: users, Posts: posts}, nil
}
