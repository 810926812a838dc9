package ports

import (
	"context"

	"github.com/myne7x/store-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing the catalog.
type ListProductsFilter struct {
	Search      string // optional: partial match on title or description
	ProductType string // optional: "free" or "paid"
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by service)
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter, newest first, and the
	// total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
