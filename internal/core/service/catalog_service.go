package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogService implements product catalog use cases. Reads are public;
// writes are gated on admin roles.
type CatalogService struct {
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, log: log}
}

// List returns a page of products, newest first.
func (s *CatalogService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ListProductsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]ports.ProductSummary, 0, len(products))
	for _, p := range products {
		items = append(items, ports.ProductSummary{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			ProductType:    string(p.ProductType),
			Price:          p.Price,
			Images:         p.Images,
			DownloadsCount: p.DownloadsCount,
			CreatedAt:      p.CreatedAt,
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Create publishes a new product. Paid products require a positive price.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if err := authz.Authorize(input.ActorRole, authz.OpCreateProduct); err != nil {
		return nil, err
	}

	productType := domain.ProductType(input.ProductType)
	switch {
	case input.Title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	case input.BucketName == "":
		return nil, fmt.Errorf("%w: bucket_name is required", domain.ErrValidation)
	case !productType.Valid():
		return nil, fmt.Errorf("%w: product_type must be free or paid", domain.ErrValidation)
	case productType == domain.ProductPaid && input.Price <= 0:
		return nil, fmt.Errorf("%w: paid products require a positive price", domain.ErrValidation)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		ProductType: productType,
		BucketName:  input.BucketName,
		FilePaths:   input.FilePaths,
		Images:      input.Images,
		Metadata:    input.Metadata,
		CreatedBy:   input.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if productType == domain.ProductPaid {
		product.Price = input.Price
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().
		Str("product_id", product.ID).
		Str("product_type", string(product.ProductType)).
		Str("created_by", input.ActorID).
		Msg("product created")

	return product, nil
}

// Update applies a partial update to a product. Nil input fields are left
// untouched; product_type is immutable after publication.
func (s *CatalogService) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	if err := authz.Authorize(input.ActorRole, authz.OpManageProduct); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if product.ProductType == domain.ProductPaid && *input.Price <= 0 {
			return nil, fmt.Errorf("%w: paid products require a positive price", domain.ErrValidation)
		}
		product.Price = *input.Price
	}
	if input.FilePaths != nil {
		product.FilePaths = input.FilePaths
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Metadata != nil {
		product.Metadata = input.Metadata
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, actorRole domain.Role, id string) error {
	if err := authz.Authorize(actorRole, authz.OpManageProduct); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
