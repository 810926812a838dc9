package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// ProfileService manages user profiles and role administration.
type ProfileService struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, log: log}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the profile on first sight of an identity (role defaults to
// "user") and updates the self-service fields afterwards. The role field is
// never written here; only ChangeRole touches it.
func (s *ProfileService) Upsert(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
	if input.UserID == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: user_id and email are required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Email:        input.Email,
		FullName:     input.FullName,
		AvatarURL:    input.AvatarURL,
		Role:         domain.RoleUser,
		FacebookLink: input.FacebookLink,
		TelegramLink: input.TelegramLink,
		WhatsappLink: input.WhatsappLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return saved, nil
}

// ChangeRole sets a profile's role. Only a super_admin may call this.
func (s *ProfileService) ChangeRole(ctx context.Context, input ports.ChangeRoleInput) (*domain.Profile, error) {
	if err := authz.Authorize(input.ActorRole, authz.OpChangeRole); err != nil {
		return nil, err
	}

	newRole := domain.Role(input.NewRole)
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.NewRole)
	}

	now := time.Now().UTC()
	if err := s.profiles.UpdateRole(ctx, input.TargetUserID, newRole, now); err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.log.Info().
		Str("user_id", input.TargetUserID).
		Str("role", input.NewRole).
		Msg("profile role changed")

	return s.profiles.FindByUserID(ctx, input.TargetUserID)
}
