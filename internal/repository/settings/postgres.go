package settings

import (
	"context"
	"errors"
	"io"
	"log"

	"fiesta-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(google_maps_embed_url, ''), COALESCE(contact_phone, '') FROM site_settings WHERE id = 1").
		Scan(&s.GoogleMapsEmbedURL, &s.ContactPhone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.SiteSettings{}, nil
		}
		r.logger.Printf("settings repo: get error=%v", err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Update(ctx context.Context, s domain.SiteSettings) (*domain.SiteSettings, error) {
	const q = `
INSERT INTO site_settings (id, google_maps_embed_url, contact_phone)
VALUES (1, NULLIF($1, ''), NULLIF($2, ''))
ON CONFLICT (id) DO UPDATE SET
    google_maps_embed_url = EXCLUDED.google_maps_embed_url,
    contact_phone = EXCLUDED.contact_phone,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, s.GoogleMapsEmbedURL, s.ContactPhone); err != nil {
		r.logger.Printf("settings repo: update error=%v", err)
		return nil, err
	}
	return &s, nil
}
