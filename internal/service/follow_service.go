package service

import (
	"context"

	"connectin/internal/models"
	"connectin/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow flips the follower->followee edge and reports whether the
// follower is following afterwards. Repeated calls alternate state; this is
// an event-driven toggle, not an idempotent set.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, models.NewSelfFollowError()
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}
	return s.followRepo.Toggle(ctx, followerID, followeeID)
}
