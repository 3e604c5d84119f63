package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type categorySeed struct {
	Name      string
	Slug      string
	SortOrder int
}

type productSeed struct {
	Title        string
	Slug         string
	Description  string
	Price        float64
	Status       string
	SaleType     string
	CategorySlug string
	ImageURL     string
}

// Apply inserts demo catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Inflables", Slug: "inflables", SortOrder: 0},
		{Name: "Mobiliario", Slug: "mobiliario", SortOrder: 1},
		{Name: "Juegos", Slug: "juegos", SortOrder: 2},
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
	}

	products := []productSeed{
		{
			Title:        "Castillo Inflable Grande",
			Slug:         "castillo-inflable-grande",
			Description:  "Castillo inflable de 5x5 metros con tobogán",
			Price:        150,
			Status:       "DISPONIBLE",
			SaleType:     "ALQUILABLE",
			CategorySlug: "inflables",
			ImageURL:     "/uploads/demo-castillo.jpg",
		},
		{
			Title:        "Mesa Infantil",
			Slug:         "mesa-infantil",
			Description:  "Mesa plástica para 6 niños",
			Price:        20,
			Status:       "DISPONIBLE",
			SaleType:     "ALQUILABLE",
			CategorySlug: "mobiliario",
			ImageURL:     "/uploads/demo-mesa.jpg",
		},
		{
			Title:        "Metegol",
			Slug:         "metegol",
			Description:  "Metegol de madera usado, en buen estado",
			Price:        300,
			Status:       "VENDIDO",
			SaleType:     "COMPRABLE",
			CategorySlug: "juegos",
		},
	}
	productIDs := make(map[string]string, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, categoryIDs[p.CategorySlug], p)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
		productIDs[p.Slug] = id
	}

	if err := upsertBundle(ctx, pool, productIDs); err != nil {
		return fmt.Errorf("upsert package: %w", err)
	}
	if err := ensureSettings(ctx, pool); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}
	if err := ensureAdmin(ctx, pool, "admin@fiesta.local", "fiesta-admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) (string, error) {
	const q = `
INSERT INTO categories (name, slug, sort_order)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Name, c.Slug, c.SortOrder).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) (string, error) {
	const q = `
INSERT INTO products (title, slug, description, price, status, sale_type, category_id)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    status = EXCLUDED.status,
    sale_type = EXCLUDED.sale_type,
    category_id = EXCLUDED.category_id,
    updated_at = now()
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, p.Title, p.Slug, p.Description, p.Price, p.Status, p.SaleType, categoryID).Scan(&id); err != nil {
		return "", err
	}
	if p.ImageURL != "" {
		const imgQ = `
INSERT INTO product_images (product_id, url, sort_order)
SELECT $1::uuid, $2, 0
WHERE NOT EXISTS (SELECT 1 FROM product_images WHERE product_id = $1::uuid AND url = $2)
`
		if _, err := pool.Exec(ctx, imgQ, id, p.ImageURL); err != nil {
			return "", err
		}
	}
	return id, nil
}

func upsertBundle(ctx context.Context, pool *pgxpool.Pool, productIDs map[string]string) error {
	const q = `
INSERT INTO packages (title, slug, description, special_price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    special_price = EXCLUDED.special_price,
    updated_at = now()
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q,
		"Combo Cumpleaños", "combo-cumpleanos", "Castillo inflable más dos mesas infantiles", 180,
	).Scan(&id)
	if err != nil {
		return err
	}

	items := []struct {
		slug     string
		quantity int
	}{
		{"castillo-inflable-grande", 1},
		{"mesa-infantil", 2},
	}
	if _, err := pool.Exec(ctx, `DELETE FROM package_items WHERE package_id = $1::uuid`, id); err != nil {
		return err
	}
	for i, it := range items {
		productID, ok := productIDs[it.slug]
		if !ok {
			continue
		}
		const itemQ = `
INSERT INTO package_items (package_id, product_id, quantity, sort_order)
VALUES ($1::uuid, $2::uuid, $3, $4)
`
		if _, err := pool.Exec(ctx, itemQ, id, productID, it.quantity, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureSettings(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO site_settings (id, contact_phone)
VALUES (1, $1)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, q, "+1234567890")
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, password_hash, role, name)
VALUES ($1, $2, 'ADMIN', 'Administrador')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}
