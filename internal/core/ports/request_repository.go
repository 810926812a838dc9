package ports

import (
	"context"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
)

// ListRequestsFilter carries query parameters for listing payment requests.
// UserID is enforced by the service layer for non-admin callers.
type ListRequestsFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to requester
	Status string // optional: filter by request status
}

// DecideUpdate carries the terminal transition applied to a pending request.
// DownloadID is the pre-generated entitlement id; it is used only when Status
// is approved.
type DecideUpdate struct {
	RequestID  string
	Status     domain.RequestStatus
	DeciderID  string
	DecidedAt  time.Time
	DownloadID string
}

// RequestRepository defines persistence operations for payment requests.
type RequestRepository interface {
	// Create inserts a new pending request. It returns
	// domain.ErrDuplicateRequest when a pending request already exists for
	// the same (user, product) pair; the guarantee holds under concurrent
	// calls.
	Create(ctx context.Context, r *domain.PaymentRequest) error
	FindByID(ctx context.Context, id string) (*domain.PaymentRequest, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.PaymentRequest, error)
	// Decide atomically transitions a pending request to a terminal status,
	// stamping approved_by/approved_at. On approval the matching entitlement
	// is created and the product's downloads_count incremented within the
	// same transaction: either all effects commit or none do. Returns
	// domain.ErrRequestNotFound for an unknown id and
	// domain.ErrInvalidTransition when the request is no longer pending.
	Decide(ctx context.Context, upd DecideUpdate) (*domain.PaymentRequest, error)
}
