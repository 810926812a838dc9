package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// NotificationService exposes a user's notification feed. Writes go through
// the dispatcher; this service only reads and flips read flags.
type NotificationService struct {
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	items, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead flips the read flag on a notification owned by userID. Marking an
// already-read notification is a no-op success.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification for userID and returns how many
// were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return n, nil
}
