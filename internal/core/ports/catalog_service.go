package ports

import (
	"context"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
)

// CreateProductInput carries all data needed to publish a product.
type CreateProductInput struct {
	ActorID     string
	ActorRole   domain.Role
	Title       string
	Description string
	ProductType string
	Price       float64
	BucketName  string
	FilePaths   []string
	Images      []string
	Metadata    map[string]any
}

// UpdateProductInput carries a partial product update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	ActorRole   domain.Role
	ProductID   string
	Title       *string
	Description *string
	Price       *float64
	FilePaths   []string
	Images      []string
	Metadata    map[string]any
}

// ProductSummary is the list-view projection of a product.
type ProductSummary struct {
	ID             string
	Title          string
	Description    string
	ProductType    string
	Price          float64
	Images         []string
	DownloadsCount int64
	CreatedAt      time.Time
}

// ListProductsResult is returned by CatalogService.List.
type ListProductsResult struct {
	Items      []ProductSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CatalogService defines use-case operations on the product catalog.
type CatalogService interface {
	List(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actorRole domain.Role, id string) error
}

// UpsertProfileInput carries the self-service profile fields.
type UpsertProfileInput struct {
	UserID       string
	Email        string
	FullName     string
	AvatarURL    string
	FacebookLink string
	TelegramLink string
	WhatsappLink string
}

// ChangeRoleInput carries a super_admin's role change for a target profile.
type ChangeRoleInput struct {
	ActorRole    domain.Role
	TargetUserID string
	NewRole      string
}

// ProfileService manages user profiles and role administration.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, input UpsertProfileInput) (*domain.Profile, error)
	ChangeRole(ctx context.Context, input ChangeRoleInput) (*domain.Profile, error)
}
