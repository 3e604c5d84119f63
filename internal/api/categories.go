package api

import (
	"context"
	"net/http"
	"net/url"

	"fiesta-storefront/internal/domain"
)

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	SortOrder   int    `json:"sortOrder,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var cat domain.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*domain.Category, error) {
	var cat domain.Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id), nil, patch, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}
