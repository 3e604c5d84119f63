package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"fiesta-storefront/internal/domain"
	"github.com/google/uuid"
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

const productColumns = `
p.id::text, p.title, p.slug, COALESCE(p.description, ''), p.price::float8, p.status, p.sale_type,
p.category_id::text, p.sort_order, p.is_active, p.created_at, p.updated_at`

var sortColumns = map[string]string{
	domain.SortByTitle:     "p.title",
	domain.SortByPrice:     "p.price",
	domain.SortByCreatedAt: "p.created_at",
	domain.SortByStatus:    "p.status",
}

func (r *postgresRepo) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if q.Status != "" {
		add("p.status = $%d", q.Status)
	}
	if q.CategoryID != "" {
		add("p.category_id = $%d", q.CategoryID)
	}
	if q.Search != "" {
		add("(p.title ILIKE '%%' || $%d || '%%' OR p.description ILIKE '%%' || $%[1]d || '%%')", q.Search)
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT count(*) FROM products p WHERE " + cond
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "p.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		dir = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	args = append(args, q.Limit, offset)
	listQuery := fmt.Sprintf(
		"SELECT %s FROM products p WHERE %s ORDER BY %s %s, p.id LIMIT $%d OFFSET $%d",
		productColumns, cond, sortCol, dir, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, 0, err
	}
	if err := r.attachImages(ctx, result); err != nil {
		return nil, 0, err
	}
	r.logger.Printf("product repo: list count=%d total=%d", len(result), total)
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getWhere(ctx, "p.id = $1", id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getWhere(ctx, "p.slug = $1", slug)
}

func (r *postgresRepo) getWhere(ctx context.Context, cond string, arg any) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products p WHERE %s", productColumns, cond)
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		r.logger.Printf("product repo: get error=%v", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	list := []domain.Product{*p}
	if err := r.attachImages(ctx, list); err != nil {
		return nil, err
	}
	if err := r.attachCategory(ctx, &list[0]); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (title, slug, description, price, status, sale_type, category_id, sort_order, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text, created_at, updated_at
`
	err := r.pool.QueryRow(ctx, q,
		p.Title, p.Slug, p.Description, float64(p.Price), p.Status, p.SaleType,
		nilIfEmpty(p.CategoryID), p.SortOrder, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	if len(p.Images) > 0 {
		if err := r.ReplaceImages(ctx, p.ID, p.Images); err != nil {
			return nil, err
		}
	}
	r.logger.Printf("product repo: created id=%s slug=%s", p.ID, p.Slug)
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET title = $2, slug = $3, description = $4, price = $5, status = $6, sale_type = $7,
    category_id = $8, sort_order = $9, is_active = $10, updated_at = now()
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q,
		p.ID, p.Title, p.Slug, p.Description, float64(p.Price), p.Status, p.SaleType,
		nilIfEmpty(p.CategoryID), p.SortOrder, p.IsActive,
	)
	if err != nil {
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM product_images WHERE product_id = $1", productID); err != nil {
		return err
	}
	for i, img := range images {
		id := img.ID
		if id == "" {
			id = uuid.NewString()
		}
		sortOrder := img.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		const q = `INSERT INTO product_images (id, product_id, url, alt, sort_order) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, q, id, productID, img.URL, img.Alt, sortOrder); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) attachImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	const q = `
SELECT id::text, product_id::text, url, COALESCE(alt, ''), sort_order
FROM product_images
WHERE product_id = ANY($1)
ORDER BY sort_order, id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: images error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.SortOrder); err != nil {
			return err
		}
		if p, ok := index[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

func (r *postgresRepo) attachCategory(ctx context.Context, p *domain.Product) error {
	if p.CategoryID == nil || *p.CategoryID == "" {
		return nil
	}
	const q = `
SELECT id::text, name, slug, COALESCE(description, ''), COALESCE(image_url, ''), sort_order, is_active
FROM categories
WHERE id = $1
`
	var cat domain.Category
	err := r.pool.QueryRow(ctx, q, *p.CategoryID).
		Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL, &cat.SortOrder, &cat.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	p.Category = &cat
	return nil
}

func scanProduct(rows pgx.Rows) (*domain.Product, error) {
	var p domain.Product
	var price float64
	if err := rows.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &price, &p.Status, &p.SaleType,
		&p.CategoryID, &p.SortOrder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Price = domain.Price(price)
	return &p, nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
