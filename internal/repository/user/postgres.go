package user

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

const columns = `id::text, email, password_hash, role, COALESCE(name, ''), created_at`

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *postgresRepo) getWhere(ctx context.Context, cond string, arg any) (*domain.Account, error) {
	var a domain.Account
	err := r.pool.QueryRow(ctx, "SELECT "+columns+" FROM users WHERE "+cond, arg).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get error=%v", err)
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	const q = `
INSERT INTO users (email, password_hash, role, name)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id::text, created_at
`
	err := r.pool.QueryRow(ctx, q, a.Email, a.PasswordHash, a.Role, a.Name).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		r.logger.Printf("user repo: create email=%s error=%v", a.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s", a.ID, a.Email)
	return &a, nil
}

func (r *postgresRepo) Update(ctx context.Context, a domain.Account) (*domain.Account, error) {
	const q = `
UPDATE users SET email = $2, password_hash = $3, name = NULLIF($4, '') WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, a.ID, a.Email, a.PasswordHash, a.Name)
	if err != nil {
		r.logger.Printf("user repo: update id=%s error=%v", a.ID, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}
