package service

import (
	"context"

	"connectin/internal/models"
	"connectin/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// ProfileView bundles everything the profile page renders.
type ProfileView struct {
	User           *models.User
	Posts          []*models.Post
	FollowerCount  int
	FollowingCount int
	IsFollowing    bool
}

type UpdateProfileInput struct {
	ActorID  uint
	TargetID uint
	Headline string
	Bio      string
	// Avatar is applied only when HasAvatar is set; headline and bio are
	// written unconditionally.
	Avatar    string
	HasAvatar bool
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, followRepo: followRepo}
}

// Profile loads a user's page: their newest posts with feed annotations,
// follower/following totals and whether the viewer follows them. viewerID 0
// means anonymous.
func (s *UserService) Profile(ctx context.Context, targetID, viewerID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUser(ctx, targetID, profilePostLimit, viewerID)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.followRepo.Counts(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != 0 && viewerID != targetID {
		isFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileView{
		User:           user,
		Posts:          posts,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) error {
	if in.ActorID != in.TargetID {
		return models.NewForbiddenError("You cannot edit another user's profile")
	}
	if _, err := s.userRepo.GetByID(ctx, in.TargetID); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"headline": in.Headline,
		"bio":      in.Bio,
	}
	if in.HasAvatar {
		fields["avatar"] = in.Avatar
	}
	return s.userRepo.UpdateProfile(ctx, in.TargetID, fields)
}

// DeleteAccount removes the user and, through the repository cascade, all of
// their posts, comments, likes and follow edges.
func (s *UserService) DeleteAccount(ctx context.Context, actorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, actorID)
}
