package domain

import "time"

// UserDownload is an entitlement: a durable record that a user may download a
// product. (UserID, ProductID) is unique; an entitlement is never revoked.
type UserDownload struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	ProductID    string    `json:"product_id" bson:"product_id"`
	DownloadedAt time.Time `json:"downloaded_at" bson:"downloaded_at"`
}
