package ports

import (
	"context"

	"github.com/myne7x/store-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkRead flips the read flag on a notification owned by userID.
	// Idempotent: marking an already-read notification succeeds.
	MarkRead(ctx context.Context, id, userID string) error
	// MarkAllRead flips the read flag on every unread notification owned by
	// userID and returns the number updated.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
