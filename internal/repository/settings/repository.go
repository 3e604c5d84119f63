package settings

import (
	"context"

	"fiesta-storefront/internal/domain"
)

// Repository stores the single site-settings row. Get on an empty table
// returns zero-valued settings rather than an error.
type Repository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, s domain.SiteSettings) (*domain.SiteSettings, error)
}
