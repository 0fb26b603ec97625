package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes the user to the author's posts. Following yourself and
// following someone you already follow are both silent no-ops.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	if author.ID == userID {
		return nil
	}

	if err := s.followRepo.Follow(ctx, userID, author.ID); err != nil {
		return err
	}
	observability.FollowChanges.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the subscription. Unfollowing someone you do not follow
// is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	if err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return err
	}
	observability.FollowChanges.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether viewerID follows the author. Anonymous viewers
// (viewerID zero) never follow anyone.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID uint, author *models.User) (bool, error) {
	if viewerID == 0 || viewerID == author.ID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewerID, author.ID)
}
