package api

import (
	"context"
	"net/http"

	"fiesta-storefront/internal/domain"
)

// AuthResponse is the login/register payload: a bearer token plus the
// profile it belongs to. The two always travel together.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	in := credentials{Email: email, Password: password}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	in := registration{Email: email, Password: password, Name: name}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me fetches the profile bound to the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfilePatch updates the logged-in profile; changing the password requires
// the current one.
type ProfilePatch struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

func (c *Client) UpdateMe(ctx context.Context, patch ProfilePatch) (*domain.User, error) {
	if err := c.checkInput(patch); err != nil {
		return nil, err
	}
	var u domain.User
	if err := c.do(ctx, http.MethodPatch, "/auth/me", nil, patch, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
