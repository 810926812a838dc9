package ports

import (
	"context"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
)

// TaskRepository defines persistence operations for assigned tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByUser returns tasks where userID is either the assignee or the
	// assigner, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
