package user

import (
	"context"

	"fiesta-storefront/internal/domain"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a domain.Account) (*domain.Account, error)
	Update(ctx context.Context, a domain.Account) (*domain.Account, error)
}
