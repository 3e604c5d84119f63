package api

import (
	"context"
	"net/http"
	"net/url"

	"fiesta-storefront/internal/domain"
)

// Bundles travel over the wire as "packages".

func (c *Client) ListBundles(ctx context.Context) ([]domain.Bundle, error) {
	var bundles []domain.Bundle
	if err := c.do(ctx, http.MethodGet, "/packages", nil, nil, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

func (c *Client) GetBundleByID(ctx context.Context, id string) (*domain.Bundle, error) {
	var b domain.Bundle
	if err := c.do(ctx, http.MethodGet, "/packages/"+url.PathEscape(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

type BundleInput struct {
	Title        string            `json:"title" validate:"required"`
	Slug         string            `json:"slug,omitempty"`
	Description  string            `json:"description,omitempty"`
	SpecialPrice float64           `json:"specialPrice" validate:"gte=0"`
	IsActive     *bool             `json:"isActive,omitempty"`
	Items        []BundleItemInput `json:"items,omitempty" validate:"dive"`
}

type BundleItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type BundlePatch struct {
	Title        *string           `json:"title,omitempty"`
	Slug         *string           `json:"slug,omitempty"`
	Description  *string           `json:"description,omitempty"`
	SpecialPrice *float64          `json:"specialPrice,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool             `json:"isActive,omitempty"`
	Items        []BundleItemInput `json:"items,omitempty" validate:"dive"`
}

func (c *Client) CreateBundle(ctx context.Context, in BundleInput) (*domain.Bundle, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var b domain.Bundle
	if err := c.do(ctx, http.MethodPost, "/packages", nil, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateBundle(ctx context.Context, id string, patch BundlePatch) (*domain.Bundle, error) {
	if err := c.checkInput(patch); err != nil {
		return nil, err
	}
	var b domain.Bundle
	if err := c.do(ctx, http.MethodPatch, "/packages/"+url.PathEscape(id), nil, patch, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBundle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil, nil)
}
