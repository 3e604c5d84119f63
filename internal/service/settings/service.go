package settings

import (
	"context"

	"fiesta-storefront/internal/domain"
)

type Service struct {
	repo repo
}

type repo interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, s domain.SiteSettings) (*domain.SiteSettings, error)
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return s.repo.Get(ctx)
}

type UpdateInput struct {
	GoogleMapsEmbedURL *string `json:"googleMapsEmbedUrl"`
	ContactPhone       *string `json:"contactPhone"`
}

// Update merges the patch over the stored settings.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.SiteSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := *current
	if in.GoogleMapsEmbedURL != nil {
		next.GoogleMapsEmbedURL = *in.GoogleMapsEmbedURL
	}
	if in.ContactPhone != nil {
		next.ContactPhone = *in.ContactPhone
	}
	return s.repo.Update(ctx, next)
}
