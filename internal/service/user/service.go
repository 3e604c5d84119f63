package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fiesta-storefront/internal/domain"
	userrepo "fiesta-storefront/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles admin account registration, login, and profile updates.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	passwordMin int
}

func New(repo userrepo.Repository, jwtSecret string, accessTTL time.Duration) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(jwtSecret, accessTTL),
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new admin account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", domain.NewValidationError("valid email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, "", domain.NewValidationError("password must be at least %d characters", s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, domain.Account{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "ADMIN",
		Name:         strings.TrimSpace(in.Name),
	})
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", err
	}
	profile := created.Profile()
	return &profile, token, nil
}

// Login validates credentials and returns the profile plus an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(a)
	if err != nil {
		return nil, "", err
	}
	profile := a.Profile()
	return &profile, token, nil
}

// LookupByToken returns the account profile bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	profile := a.Profile()
	return &profile, nil
}

// ProfileInput mirrors the PATCH /auth/me payload. Changing the password
// requires the current one.
type ProfileInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// UpdateProfile applies a partial update to the authenticated account.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*domain.User, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *a
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.NewValidationError("valid email required")
		}
		updated.Email = email
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, ErrInvalidCredentials
		}
		if len(strings.TrimSpace(in.NewPassword)) < s.passwordMin {
			return nil, domain.NewValidationError("password must be at least %d characters", s.passwordMin)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.NewPassword)), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = string(hashed)
	}

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	profile := saved.Profile()
	return &profile, nil
}
