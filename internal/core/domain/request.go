package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a payment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal: a request is decided at most once.
var validTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestApproved, RequestRejected},
}

var (
	ErrUnauthorized         = errors.New("operation not permitted for role")
	ErrProductNotFound      = errors.New("product not found")
	ErrRequestNotFound      = errors.New("payment request not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateRequest     = errors.New("pending request already exists")
	ErrInvalidTransition    = errors.New("invalid request status transition")
	ErrValidation           = errors.New("invalid input")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s is a final state.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// PaymentRequest is one instance of the purchase-approval state machine for a
// (user, product) pair. ApprovedBy/ApprovedAt are set iff the request has
// left pending; no other field changes after that.
type PaymentRequest struct {
	ID                   string        `json:"id" bson:"_id,omitempty"`
	UserID               string        `json:"user_id" bson:"user_id"`
	ProductID            string        `json:"product_id" bson:"product_id"`
	Status               RequestStatus `json:"status" bson:"status"`
	ContactInfo          string        `json:"contact_info,omitempty" bson:"contact_info,omitempty"`
	ContactMethod        string        `json:"contact_method,omitempty" bson:"contact_method,omitempty"`
	PaymentScreenshotURL string        `json:"payment_screenshot_url,omitempty" bson:"payment_screenshot_url,omitempty"`
	ApprovedBy           string        `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt           *time.Time    `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt            time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" bson:"updated_at"`
}
