package domain

import "time"

// ProductType distinguishes freely downloadable products from paid ones.
type ProductType string

const (
	ProductFree ProductType = "free"
	ProductPaid ProductType = "paid"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	return t == ProductFree || t == ProductPaid
}

// Product is a catalog entry. Price is meaningful only when ProductType is
// "paid". DownloadsCount is incremented exactly once per entitlement grant.
type Product struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	Title          string         `json:"title" bson:"title"`
	Description    string         `json:"description,omitempty" bson:"description,omitempty"`
	ProductType    ProductType    `json:"product_type" bson:"product_type"`
	Price          float64        `json:"price,omitempty" bson:"price,omitempty"`
	BucketName     string         `json:"bucket_name" bson:"bucket_name"`
	FilePaths      []string       `json:"file_paths,omitempty" bson:"file_paths,omitempty"`
	Images         []string       `json:"images,omitempty" bson:"images,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	DownloadsCount int64          `json:"downloads_count" bson:"downloads_count"`
	CreatedBy      string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}
