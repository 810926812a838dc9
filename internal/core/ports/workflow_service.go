package ports

import (
	"context"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
)

// RequestAccessInput carries a caller's intent to obtain a product.
type RequestAccessInput struct {
	UserID    string
	Role      domain.Role
	ProductID string
	// Off-band payment proof, required for paid products: at least one of
	// ContactInfo or PaymentScreenshotURL must be present.
	ContactInfo          string
	ContactMethod        string
	PaymentScreenshotURL string
}

// AccessResult is returned by RequestAccess.
type AccessResult struct {
	// Granted is true when the caller is entitled immediately (free product).
	Granted bool
	// AlreadyOwned is true when the entitlement existed before this call.
	AlreadyOwned bool
	// Request is the pending payment request created for a paid product.
	Request *domain.PaymentRequest
}

// DecideInput carries an admin's decision on a pending request.
type DecideInput struct {
	RequestID   string
	Outcome     domain.RequestStatus // approved or rejected
	DeciderID   string
	DeciderRole domain.Role
}

// ListRequestsInput carries parameters for listing payment requests.
// Admin callers see all requests; others are scoped to their own.
type ListRequestsInput struct {
	UserID string
	Role   domain.Role
	Status string // optional filter
}

// WorkflowService is the purchase-approval engine: free-product grants, paid
// request creation, and admin decisions.
type WorkflowService interface {
	RequestAccess(ctx context.Context, input RequestAccessInput) (*AccessResult, error)
	Decide(ctx context.Context, input DecideInput) (*domain.PaymentRequest, error)
	ListRequests(ctx context.Context, input ListRequestsInput) ([]*domain.PaymentRequest, error)
}

// NotificationInput is the DTO handed to the dispatcher for asynchronous
// persistence.
type NotificationInput struct {
	UserID    string
	Type      domain.NotificationType
	Title     string
	Message   string
	RelatedID string
}

// EntitlementService is the ledger of granted downloads.
type EntitlementService interface {
	HasAccess(ctx context.Context, userID, productID string) (bool, error)
	// Grant records the entitlement and bumps the product's download counter
	// exactly once. Repeated grants are no-op successes.
	Grant(ctx context.Context, userID, productID string) (created bool, err error)
	ListDownloads(ctx context.Context, userID string) ([]*domain.UserDownload, error)
}

// NotificationService exposes a user's notification feed.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// AssignTaskInput carries an admin's task assignment.
type AssignTaskInput struct {
	AssignerID   string
	AssignerRole domain.Role
	AssigneeID   string
	Title        string
	Description  string
	DueDate      *time.Time
	Status       string // optional; defaults to "open"
}

// TaskService manages admin-assigned work items.
type TaskService interface {
	Assign(ctx context.Context, input AssignTaskInput) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, taskID, userID, status string) (*domain.Task, error)
}
