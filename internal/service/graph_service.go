package service

import (
	"context"

	"tweetnest/internal/models"
	"tweetnest/internal/repository"
)

// GraphService manages the follow relationships between users.
type GraphService struct {
	follows  repository.FollowRepository
	users    repository.UserRepository
	notifier Notifier
}

// NewGraphService returns a new GraphService.
func NewGraphService(follows repository.FollowRepository, users repository.UserRepository, notifier Notifier) *GraphService {
	return &GraphService{follows: follows, users: users, notifier: notifier}
}

// ToggleFollow follows the target if no edge exists and unfollows otherwise.
// It reports whether the caller is following the target after the call.
func (s *GraphService) ToggleFollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.follows.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}
	if following {
		return false, s.Unfollow(ctx, followerID, targetID)
	}
	if err := s.Follow(ctx, followerID, targetID); err != nil {
		return false, err
	}
	return true, nil
}

// Follow creates the edge from follower to target. A follow notification is
// emitted only when the edge is new, so replays do not re-notify.
func (s *GraphService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	created, err := s.follows.Create(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if created {
		if err := s.notifier.Emit(ctx, followerID, targetID, models.NotificationTypeFollow); err != nil {
			return err
		}
	}
	return nil
}

// Unfollow removes the edge from follower to target. Removing an edge that
// does not exist succeeds. No notification is emitted.
func (s *GraphService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return s.follows.Delete(ctx, followerID, targetID)
}

// IsFollowing reports whether follower currently follows target.
func (s *GraphService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, targetID)
}

// Followers returns the users who follow the given user.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Followers(ctx, userID)
}

// Following returns the users the given user follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.Following(ctx, userID)
}
