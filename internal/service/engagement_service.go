package service

import (
	"context"
	"strings"

	"tweetnest/internal/middleware"
	"tweetnest/internal/models"
	"tweetnest/internal/repository"
)

// EngagementService manages likes and comments on posts.
type EngagementService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	notifier Notifier
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(posts repository.PostRepository, comments repository.CommentRepository, notifier Notifier) *EngagementService {
	return &EngagementService{posts: posts, comments: comments, notifier: notifier}
}

// ToggleLike likes the post if the user has not liked it and unlikes it
// otherwise. It returns the post's liker IDs after the change. A like
// notification goes to the post's author on every fresh like, including when
// a user likes their own post; unlikes never notify.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) ([]uint, error) {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if post.Liked {
		if err := s.posts.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		middleware.EngagementActions.WithLabelValues("unlike").Inc()
	} else {
		created, err := s.posts.Like(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
		middleware.EngagementActions.WithLabelValues("like").Inc()
		if created {
			if err := s.notifier.Emit(ctx, userID, post.UserID, models.NotificationTypeLike); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return updated.LikeUserIDs, nil
}

// AddComment appends a comment to the post and returns the post's full
// comment list, oldest first. Comments do not notify the post's author.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.posts.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	middleware.EngagementActions.WithLabelValues("comment").Inc()

	return s.comments.ListByPost(ctx, postID)
}
