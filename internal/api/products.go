package api

import (
	"context"
	"net/http"
	"net/url"

	"fiesta-storefront/internal/domain"
)

// Contact channels for a product's booking link.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelPhone    = "phone"
)

// ListProducts fetches a filtered, paged product listing. Absent filter
// fields are omitted from the query string.
func (c *Client) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductsPage, error) {
	var page domain.ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products", q.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProductBySlug looks a product up by its URL slug. A 404 matches
// domain.ErrNotFound.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/by-slug/"+url.PathEscape(slug), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductByID looks a product up by id. A 404 matches domain.ErrNotFound.
func (c *Client) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ContactLink asks the backend for the booking link of a product. channel
// defaults to whatsapp; phone overrides the configured contact phone.
func (c *Client) ContactLink(ctx context.Context, productID, channel, phone string) (*domain.ContactLink, error) {
	if channel == "" {
		channel = ChannelWhatsApp
	}
	v := url.Values{}
	v.Set("channel", channel)
	if phone != "" {
		v.Set("phone", phone)
	}
	var link domain.ContactLink
	if err := c.do(ctx, http.MethodGet, "/products/contact-link/"+url.PathEscape(productID), v, nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ProductInput is the admin create payload. Checks run locally before the
// request goes out.
type ProductInput struct {
	Title       string       `json:"title" validate:"required"`
	Slug        string       `json:"slug,omitempty"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price" validate:"gte=0"`
	Status      string       `json:"status,omitempty" validate:"omitempty,oneof=DISPONIBLE OCUPADO VENDIDO EN_CAMINO"`
	SaleType    string       `json:"saleType,omitempty" validate:"omitempty,oneof=COMPRABLE ALQUILABLE"`
	CategoryID  string       `json:"categoryId,omitempty"`
	SortOrder   int          `json:"sortOrder,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
	Images      []ImageInput `json:"images,omitempty"`
}

type ImageInput struct {
	URL       string `json:"url" validate:"required"`
	Alt       string `json:"alt,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// ProductPatch is the admin partial-update payload; nil fields are left
// untouched by the backend.
type ProductPatch struct {
	Title       *string      `json:"title,omitempty"`
	Slug        *string      `json:"slug,omitempty"`
	Description *string      `json:"description,omitempty"`
	Price       *float64     `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status      *string      `json:"status,omitempty" validate:"omitempty,oneof=DISPONIBLE OCUPADO VENDIDO EN_CAMINO"`
	SaleType    *string      `json:"saleType,omitempty" validate:"omitempty,oneof=COMPRABLE ALQUILABLE"`
	CategoryID  *string      `json:"categoryId,omitempty"`
	SortOrder   *int         `json:"sortOrder,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
	Images      []ImageInput `json:"images,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var p domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	if err := c.checkInput(patch); err != nil {
		return nil, err
	}
	var p domain.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), nil, patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}
