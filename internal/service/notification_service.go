// Package service contains the business logic of the application, sitting
// between the HTTP handlers and the repositories.
package service

import (
	"context"

	"tweetnest/internal/middleware"
	"tweetnest/internal/models"
	"tweetnest/internal/repository"
)

// Notifier emits notifications on behalf of other services.
type Notifier interface {
	Emit(ctx context.Context, fromID, toID uint, t models.NotificationType) error
}

// NotificationService manages notification delivery and the recipient's view
// of their notification list.
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Emit records a notification from one user to another. Senders never see a
// delivery failure as fatal to their own action; callers decide how to treat
// the returned error.
func (s *NotificationService) Emit(ctx context.Context, fromID, toID uint, t models.NotificationType) error {
	n := &models.Notification{FromID: fromID, ToID: toID, Type: t}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}
	middleware.NotificationsEmitted.WithLabelValues(string(t)).Inc()
	return nil
}

// ListFor returns the recipient's notifications newest first and marks them
// all read. The returned items reflect the read state at fetch time, so a
// client sees which ones were unread exactly once.
func (s *NotificationService) ListFor(ctx context.Context, userID uint) ([]models.Notification, error) {
	list, err := s.notifications.ListFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].From = list[i].From.PublicSummary()
	}
	return list, nil
}

// DeleteAllFor removes all of the recipient's notifications. Deleting an
// already-empty list succeeds.
func (s *NotificationService) DeleteAllFor(ctx context.Context, userID uint) error {
	return s.notifications.DeleteAllFor(ctx, userID)
}
