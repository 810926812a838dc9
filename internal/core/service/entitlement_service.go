package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/api/metrics"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// EntitlementCache abstracts the read-through access cache (Redis). The cache
// is advisory: errors and misses fall back to the ledger, which stays
// authoritative.
type EntitlementCache interface {
	// Get reports (entitled, cached): cached is false on a miss.
	Get(ctx context.Context, userID, productID string) (entitled bool, cached bool, err error)
	Set(ctx context.Context, userID, productID string) error
}

// EntitlementService is the ledger of granted downloads.
type EntitlementService struct {
	downloads ports.DownloadRepository
	cache     EntitlementCache // may be nil
	log       zerolog.Logger
}

func NewEntitlementService(downloads ports.DownloadRepository, cache EntitlementCache, log zerolog.Logger) *EntitlementService {
	return &EntitlementService{downloads: downloads, cache: cache, log: log}
}

// HasAccess reports whether an entitlement exists for (user, product).
func (s *EntitlementService) HasAccess(ctx context.Context, userID, productID string) (bool, error) {
	if s.cache != nil {
		entitled, cached, err := s.cache.Get(ctx, userID, productID)
		switch {
		case err != nil:
			metrics.AccessCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("user_id", userID).Msg("access cache lookup failed, falling back")
		case cached && entitled:
			metrics.AccessCacheTotal.WithLabelValues("hit").Inc()
			return true, nil
		default:
			metrics.AccessCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	exists, err := s.downloads.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("has access: %w", err)
	}
	if exists && s.cache != nil {
		if err := s.cache.Set(ctx, userID, productID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("access cache set failed")
		}
	}
	return exists, nil
}

// Grant records the entitlement and increments the product's download counter
// exactly once. A repeated grant for an existing entitlement is a no-op
// success with created=false.
func (s *EntitlementService) Grant(ctx context.Context, userID, productID string) (bool, error) {
	download := &domain.UserDownload{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    productID,
		DownloadedAt: time.Now().UTC(),
	}

	created, err := s.downloads.Grant(ctx, download)
	if err != nil {
		return false, fmt.Errorf("grant: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, productID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("access cache set failed")
		}
	}
	return created, nil
}

// ListDownloads returns the caller's library of granted entitlements.
func (s *EntitlementService) ListDownloads(ctx context.Context, userID string) ([]*domain.UserDownload, error) {
	downloads, err := s.downloads.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	return downloads, nil
}
