package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/api/metrics"
	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// Notifier enqueues a notification for asynchronous persistence.
type Notifier interface {
	Notify(input ports.NotificationInput)
}

// WorkflowService implements the purchase-approval engine.
type WorkflowService struct {
	products     ports.ProductRepository
	requests     ports.RequestRepository
	entitlements ports.EntitlementService
	notifier     Notifier
	log          zerolog.Logger
}

func NewWorkflowService(
	products ports.ProductRepository,
	requests ports.RequestRepository,
	entitlements ports.EntitlementService,
	notifier Notifier,
	log zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		products:     products,
		requests:     requests,
		entitlements: entitlements,
		notifier:     notifier,
		log:          log,
	}
}

// RequestAccess handles a caller's intent to obtain a product. Free products
// are granted immediately and idempotently; paid products open a pending
// payment request, at most one of which may exist per (user, product) pair.
func (s *WorkflowService) RequestAccess(ctx context.Context, input ports.RequestAccessInput) (*ports.AccessResult, error) {
	if err := authz.Authorize(input.Role, authz.OpRequestAccess); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("request access: %w", err)
	}

	if product.ProductType == domain.ProductFree {
		created, err := s.entitlements.Grant(ctx, input.UserID, input.ProductID)
		if err != nil {
			return nil, fmt.Errorf("request access: grant: %w", err)
		}
		if created {
			metrics.GrantsTotal.WithLabelValues("free").Inc()
		}
		s.log.Info().
			Str("user_id", input.UserID).
			Str("product_id", input.ProductID).
			Bool("already_owned", !created).
			Msg("free product granted")
		return &ports.AccessResult{Granted: true, AlreadyOwned: !created}, nil
	}

	// Paid product: a human reviewer needs an off-band payment proof.
	if input.ContactInfo == "" && input.PaymentScreenshotURL == "" {
		return nil, fmt.Errorf("%w: contact info or payment screenshot required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	request := &domain.PaymentRequest{
		ID:                   uuid.NewString(),
		UserID:               input.UserID,
		ProductID:            input.ProductID,
		Status:               domain.RequestPending,
		ContactInfo:          input.ContactInfo,
		ContactMethod:        input.ContactMethod,
		PaymentScreenshotURL: input.PaymentScreenshotURL,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("request access: %w", err)
	}

	metrics.RequestsCreatedTotal.WithLabelValues(string(product.ProductType)).Inc()
	s.log.Info().
		Str("request_id", request.ID).
		Str("user_id", input.UserID).
		Str("product_id", input.ProductID).
		Msg("payment request created")

	return &ports.AccessResult{Request: request}, nil
}

// Decide applies an admin's terminal decision to a pending request. The
// status transition, entitlement creation, and download counter increment
// commit atomically in the repository; the notification is enqueued only
// after the transaction succeeds.
func (s *WorkflowService) Decide(ctx context.Context, input ports.DecideInput) (*domain.PaymentRequest, error) {
	if err := authz.Authorize(input.DeciderRole, authz.OpDecideRequest); err != nil {
		return nil, err
	}
	if input.Outcome != domain.RequestApproved && input.Outcome != domain.RequestRejected {
		return nil, fmt.Errorf("%w: outcome must be approved or rejected", domain.ErrValidation)
	}

	upd := ports.DecideUpdate{
		RequestID: input.RequestID,
		Status:    input.Outcome,
		DeciderID: input.DeciderID,
		DecidedAt: time.Now().UTC(),
	}
	if input.Outcome == domain.RequestApproved {
		upd.DownloadID = uuid.NewString()
	}

	request, err := s.requests.Decide(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("decide request: %w", err)
	}

	metrics.DecisionsTotal.WithLabelValues(string(input.Outcome)).Inc()

	switch input.Outcome {
	case domain.RequestApproved:
		metrics.GrantsTotal.WithLabelValues("approval").Inc()
		s.notifier.Notify(ports.NotificationInput{
			UserID:    request.UserID,
			Type:      domain.NotifyRequestApproved,
			Title:     "Payment request approved",
			Message:   "Your payment request was approved. The product is now available in your downloads.",
			RelatedID: request.ID,
		})
	case domain.RequestRejected:
		s.notifier.Notify(ports.NotificationInput{
			UserID:    request.UserID,
			Type:      domain.NotifyRequestRejected,
			Title:     "Payment request rejected",
			Message:   "Your payment request was rejected. You may submit a new request with updated payment proof.",
			RelatedID: request.ID,
		})
	}

	s.log.Info().
		Str("request_id", request.ID).
		Str("decider_id", input.DeciderID).
		Str("outcome", string(input.Outcome)).
		Msg("payment request decided")

	return request, nil
}

// ListRequests returns payment requests visible to the caller: admins see
// every request (optionally filtered by status), users only their own.
func (s *WorkflowService) ListRequests(ctx context.Context, input ports.ListRequestsInput) ([]*domain.PaymentRequest, error) {
	filter := ports.ListRequestsFilter{Status: input.Status}

	if !authz.Allowed(input.Role, authz.OpListAllRequests) {
		if err := authz.Authorize(input.Role, authz.OpReadOwnRequests); err != nil {
			return nil, err
		}
		filter.UserID = input.UserID
	}

	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}
