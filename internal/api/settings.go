package api

import (
	"context"
	"net/http"

	"fiesta-storefront/internal/domain"
)

func (c *Client) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, in domain.SiteSettings) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	if err := c.do(ctx, http.MethodPut, "/settings", nil, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
