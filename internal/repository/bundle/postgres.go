package bundle

import (
	"context"
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

const columns = `id::text, title, slug, COALESCE(description, ''), special_price::float8, is_active, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Bundle, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+columns+" FROM packages ORDER BY created_at DESC")
	if err != nil {
		r.logger.Printf("bundle repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Bundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.attachItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Bundle, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+columns+" FROM packages WHERE id = $1", id)
	if err != nil {
		r.logger.Printf("bundle repo: get id=%s error=%v", id, err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	b, err := scanBundle(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) Create(ctx context.Context, b domain.Bundle) (*domain.Bundle, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO packages (title, slug, description, special_price, is_active)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING id::text, created_at, updated_at
`
	if err := tx.QueryRow(ctx, q, b.Title, b.Slug, b.Description, float64(b.SpecialPrice), b.IsActive).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		r.logger.Printf("bundle repo: create slug=%s error=%v", b.Slug, err)
		return nil, err
	}
	if err := insertItems(ctx, tx, b.ID, b.Items); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("bundle repo: created id=%s slug=%s items=%d", b.ID, b.Slug, len(b.Items))
	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepo) Update(ctx context.Context, b domain.Bundle, replaceItems bool) (*domain.Bundle, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE packages
SET title = $2, slug = $3, description = NULLIF($4, ''), special_price = $5, is_active = $6, updated_at = now()
WHERE id = $1
`
	tag, err := tx.Exec(ctx, q, b.ID, b.Title, b.Slug, b.Description, float64(b.SpecialPrice), b.IsActive)
	if err != nil {
		r.logger.Printf("bundle repo: update id=%s error=%v", b.ID, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	if replaceItems {
		if _, err := tx.Exec(ctx, "DELETE FROM package_items WHERE package_id = $1", b.ID); err != nil {
			return nil, err
		}
		if err := insertItems(ctx, tx, b.ID, b.Items); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, b.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM packages WHERE id = $1", id)
	if err != nil {
		r.logger.Printf("bundle repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, bundleID string, items []domain.BundleItem) error {
	const q = `INSERT INTO package_items (package_id, product_id, quantity, sort_order) VALUES ($1, $2, $3, $4)`
	for i, item := range items {
		sortOrder := item.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		if _, err := tx.Exec(ctx, q, bundleID, item.ProductID, item.Quantity, sortOrder); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepo) attachItems(ctx context.Context, b *domain.Bundle) error {
	const q = `
SELECT i.id::text, i.package_id::text, i.product_id::text, i.quantity, i.sort_order,
       p.id::text, p.title, p.slug, p.price::float8, p.status
FROM package_items i
JOIN products p ON p.id = i.product_id
WHERE i.package_id = $1
ORDER BY i.sort_order, i.id
`
	rows, err := r.pool.Query(ctx, q, b.ID)
	if err != nil {
		r.logger.Printf("bundle repo: items id=%s error=%v", b.ID, err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BundleItem
		var prod domain.Product
		var price float64
		if err := rows.Scan(
			&item.ID, &item.BundleID, &item.ProductID, &item.Quantity, &item.SortOrder,
			&prod.ID, &prod.Title, &prod.Slug, &price, &prod.Status,
		); err != nil {
			return err
		}
		prod.Price = domain.Price(price)
		item.Product = &prod
		b.Items = append(b.Items, item)
	}
	return rows.Err()
}

func scanBundle(rows pgx.Rows) (*domain.Bundle, error) {
	var b domain.Bundle
	var price float64
	if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Description, &price, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.SpecialPrice = domain.Price(price)
	return &b, nil
}
