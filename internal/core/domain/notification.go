package domain

import "time"

// NotificationType identifies the workflow transition that produced a
// notification.
type NotificationType string

const (
	NotifyRequestApproved NotificationType = "request_approved"
	NotifyRequestRejected NotificationType = "request_rejected"
	NotifyTaskAssigned    NotificationType = "task_assigned"
	NotifyProductUpload   NotificationType = "product_upload"
)

// Notification is a user-visible message created as a side effect of a
// workflow transition. Only the read flag is mutable after creation.
type Notification struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	UserID           string           `json:"user_id" bson:"user_id"`
	NotificationType NotificationType `json:"notification_type" bson:"notification_type"`
	Title            string           `json:"title" bson:"title"`
	Message          string           `json:"message" bson:"message"`
	RelatedID        string           `json:"related_id,omitempty" bson:"related_id,omitempty"`
	Read             bool             `json:"read" bson:"read"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
}
