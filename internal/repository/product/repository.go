package product

import (
	"context"

	"fiesta-storefront/internal/domain"
)

// Repository is the storage contract for products. List returns the matching
// page plus the total row count for the filter set.
type Repository interface {
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error
}
