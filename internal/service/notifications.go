package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jask/sage/internal/database/repository"
)

// NotificationService records and reads user notifications.
type NotificationService struct {
	Notifications *repository.NotificationRepo
}

func (s *NotificationService) Notify(ctx context.Context, userID, title, body string) error {
	return s.Notifications.Create(ctx, repository.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
		Body:   body,
	})
}

func (s *NotificationService) List(ctx context.Context, unreadOnly bool) ([]repository.Notification, error) {
	return s.Notifications.List(ctx, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Notifications.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.Notifications.MarkAllRead(ctx)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.Notifications.UnreadCount(ctx)
}
