package ports

import (
	"context"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
)

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Upsert creates the profile on first sight of an identity and updates
	// the mutable self-service fields afterwards.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role, at time.Time) error
}
