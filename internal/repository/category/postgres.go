package category

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

const columns = `id::text, name, slug, COALESCE(description, ''), COALESCE(image_url, ''), sort_order, is_active`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+columns+" FROM categories ORDER BY sort_order, name")
	if err != nil {
		r.logger.Printf("category repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.SortOrder, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, "SELECT "+columns+" FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.SortOrder, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug, description, image_url, sort_order, is_active)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
RETURNING id::text
`
	err := r.pool.QueryRow(ctx, q, c.Name, c.Slug, c.Description, c.ImageURL, c.SortOrder, c.IsActive).Scan(&c.ID)
	if err != nil {
		r.logger.Printf("category repo: create slug=%s error=%v", c.Slug, err)
		return nil, err
	}
	r.logger.Printf("category repo: created id=%s slug=%s", c.ID, c.Slug)
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $2, slug = $3, description = NULLIF($4, ''), image_url = NULLIF($5, ''),
    sort_order = $6, is_active = $7, updated_at = now()
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.SortOrder, c.IsActive)
	if err != nil {
		r.logger.Printf("category repo: update id=%s error=%v", c.ID, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		r.logger.Printf("category repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
