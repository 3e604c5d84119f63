package product

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fiesta-storefront/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	repo     repo
	settings settingsRepo
}

type repo interface {
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error
}

type settingsRepo interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
}

func New(repo repo, settings settingsRepo) *Service {
	return &Service{repo: repo, settings: settings}
}

// List applies paging defaults and a sort whitelist before hitting storage.
func (s *Service) List(ctx context.Context, q domain.ProductQuery) (*domain.ProductsPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.SortBy == "" {
		q.SortBy = domain.SortByCreatedAt
	}
	if !validSort(q.SortBy) {
		return nil, domain.NewValidationError("unsupported sortBy %q", q.SortBy)
	}
	if q.SortOrder != "" && !strings.EqualFold(q.SortOrder, "asc") && !strings.EqualFold(q.SortOrder, "desc") {
		return nil, domain.NewValidationError("unsupported sortOrder %q", q.SortOrder)
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return &domain.ProductsPage{
		Data: items,
		Meta: domain.PageMeta{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: totalPages},
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

type ImageInput struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	SortOrder int    `json:"sortOrder"`
}

type CreateInput struct {
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Status      string       `json:"status"`
	SaleType    string       `json:"saleType"`
	CategoryID  string       `json:"categoryId"`
	SortOrder   int          `json:"sortOrder"`
	IsActive    *bool        `json:"isActive"`
	Images      []ImageInput `json:"images"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title required")
	}
	if in.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}
	status := in.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	if !validStatus(status) {
		return nil, domain.NewValidationError("unsupported status %q", status)
	}
	saleType := in.SaleType
	if saleType == "" {
		saleType = domain.SaleTypeRentable
	}
	if !validSaleType(saleType) {
		return nil, domain.NewValidationError("unsupported saleType %q", saleType)
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = domain.Slugify(title)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := domain.Product{
		Title:       title,
		Slug:        slug,
		Description: in.Description,
		Price:       domain.Price(in.Price),
		Status:      status,
		SaleType:    saleType,
		SortOrder:   in.SortOrder,
		IsActive:    active,
		Images:      imagesFromInput(in.Images),
	}
	if in.CategoryID != "" {
		p.CategoryID = &in.CategoryID
	}
	return s.repo.Create(ctx, p)
}

type UpdateInput struct {
	Title       *string      `json:"title"`
	Slug        *string      `json:"slug"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Status      *string      `json:"status"`
	SaleType    *string      `json:"saleType"`
	CategoryID  *string      `json:"categoryId"`
	SortOrder   *int         `json:"sortOrder"`
	IsActive    *bool        `json:"isActive"`
	Images      []ImageInput `json:"images"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := *current
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.NewValidationError("title required")
		}
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil && *in.Slug != "" {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, domain.NewValidationError("price must not be negative")
		}
		p.Price = domain.Price(*in.Price)
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, domain.NewValidationError("unsupported status %q", *in.Status)
		}
		p.Status = *in.Status
	}
	if in.SaleType != nil {
		if !validSaleType(*in.SaleType) {
			return nil, domain.NewValidationError("unsupported saleType %q", *in.SaleType)
		}
		p.SaleType = *in.SaleType
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			p.CategoryID = nil
		} else {
			p.CategoryID = in.CategoryID
		}
	}
	if in.SortOrder != nil {
		p.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if in.Images != nil {
		if err := s.repo.ReplaceImages(ctx, id, imagesFromInput(in.Images)); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, id)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ContactLink builds the booking link for a product. phoneOverride wins over
// the configured contact phone, which wins over the default.
func (s *Service) ContactLink(ctx context.Context, id, channel, phoneOverride string) (*domain.ContactLink, error) {
	if channel == "" {
		channel = "whatsapp"
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	phone := phoneOverride
	if phone == "" {
		if cfg, err := s.settings.Get(ctx); err == nil && cfg.ContactPhone != "" {
			phone = cfg.ContactPhone
		}
	}
	if phone == "" {
		phone = domain.DefaultContactPhone
	}

	switch channel {
	case "whatsapp":
		text := fmt.Sprintf("Hola! Me interesa: %s", p.Title)
		return &domain.ContactLink{
			URL:   "https://wa.me/" + digitsOnly(phone) + "?text=" + url.QueryEscape(text),
			Label: "Consultar por WhatsApp",
		}, nil
	case "phone":
		return &domain.ContactLink{
			URL:   "tel:" + phone,
			Label: "Llamar ahora",
		}, nil
	default:
		return nil, domain.NewValidationError("unsupported channel %q", channel)
	}
}

func imagesFromInput(in []ImageInput) []domain.ProductImage {
	images := make([]domain.ProductImage, 0, len(in))
	for i, img := range in {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		sortOrder := img.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		images = append(images, domain.ProductImage{URL: img.URL, Alt: img.Alt, SortOrder: sortOrder})
	}
	return images
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validStatus(s string) bool {
	switch s {
	case domain.StatusAvailable, domain.StatusBusy, domain.StatusSold, domain.StatusInTransit:
		return true
	}
	return false
}

func validSaleType(s string) bool {
	switch s {
	case domain.SaleTypePurchasable, domain.SaleTypeRentable:
		return true
	}
	return false
}

func validSort(s string) bool {
	switch s {
	case domain.SortByTitle, domain.SortByPrice, domain.SortByCreatedAt, domain.SortByStatus:
		return true
	}
	return false
}
