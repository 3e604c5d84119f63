package bundle

import (
	"context"

	"fiesta-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Bundle, error)
	GetByID(ctx context.Context, id string) (*domain.Bundle, error)
	Create(ctx context.Context, b domain.Bundle) (*domain.Bundle, error)
	Update(ctx context.Context, b domain.Bundle, replaceItems bool) (*domain.Bundle, error)
	Delete(ctx context.Context, id string) error
}
