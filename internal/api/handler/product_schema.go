package handler

import "time"

type createProductRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	ProductType string         `json:"product_type" validate:"required,oneof=free paid"`
	Price       float64        `json:"price"`
	BucketName  string         `json:"bucket_name" validate:"required"`
	FilePaths   []string       `json:"file_paths"`
	Images      []string       `json:"images"`
	Metadata    map[string]any `json:"metadata"`
}

type updateProductRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	FilePaths   []string       `json:"file_paths"`
	Images      []string       `json:"images"`
	Metadata    map[string]any `json:"metadata"`
}

type productSummaryResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ProductType    string    `json:"product_type"`
	Price          float64   `json:"price,omitempty"`
	Images         []string  `json:"images,omitempty"`
	DownloadsCount int64     `json:"downloads_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type listProductsResponse struct {
	Items      []productSummaryResponse `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}
