package bundle

import (
	"context"
	"strings"

	"fiesta-storefront/internal/domain"
)

type Service struct {
	repo repo
}

type repo interface {
	List(ctx context.Context) ([]domain.Bundle, error)
	GetByID(ctx context.Context, id string) (*domain.Bundle, error)
	Create(ctx context.Context, b domain.Bundle) (*domain.Bundle, error)
	Update(ctx context.Context, b domain.Bundle, replaceItems bool) (*domain.Bundle, error)
	Delete(ctx context.Context, id string) error
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Bundle, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Bundle{}
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Bundle, error) {
	return s.repo.GetByID(ctx, id)
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	SortOrder int    `json:"sortOrder"`
}

type CreateInput struct {
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description"`
	SpecialPrice float64     `json:"specialPrice"`
	IsActive     *bool       `json:"isActive"`
	Items        []ItemInput `json:"items"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Bundle, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title required")
	}
	if in.SpecialPrice < 0 {
		return nil, domain.NewValidationError("specialPrice must not be negative")
	}
	items, err := itemsFromInput(in.Items)
	if err != nil {
		return nil, err
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = domain.Slugify(title)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Create(ctx, domain.Bundle{
		Title:        title,
		Slug:         slug,
		Description:  in.Description,
		SpecialPrice: domain.Price(in.SpecialPrice),
		IsActive:     active,
		Items:        items,
	})
}

type UpdateInput struct {
	Title        *string     `json:"title"`
	Slug         *string     `json:"slug"`
	Description  *string     `json:"description"`
	SpecialPrice *float64    `json:"specialPrice"`
	IsActive     *bool       `json:"isActive"`
	Items        []ItemInput `json:"items"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Bundle, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b := *current
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.NewValidationError("title required")
		}
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil && *in.Slug != "" {
		b.Slug = *in.Slug
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.SpecialPrice != nil {
		if *in.SpecialPrice < 0 {
			return nil, domain.NewValidationError("specialPrice must not be negative")
		}
		b.SpecialPrice = domain.Price(*in.SpecialPrice)
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	replaceItems := in.Items != nil
	if replaceItems {
		items, err := itemsFromInput(in.Items)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return s.repo.Update(ctx, b, replaceItems)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func itemsFromInput(in []ItemInput) ([]domain.BundleItem, error) {
	items := make([]domain.BundleItem, 0, len(in))
	for i, it := range in {
		if it.ProductID == "" {
			return nil, domain.NewValidationError("items[%d].productId required", i)
		}
		if it.Quantity < 1 {
			return nil, domain.NewValidationError("items[%d].quantity must be at least 1", i)
		}
		sortOrder := it.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		items = append(items, domain.BundleItem{ProductID: it.ProductID, Quantity: it.Quantity, SortOrder: sortOrder})
	}
	return items, nil
}
