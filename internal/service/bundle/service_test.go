package bundle

import (
	"context"
	"testing"

	"fiesta-storefront/internal/domain"
)

type stubRepo struct {
	byID         map[string]*domain.Bundle
	created      *domain.Bundle
	updated      *domain.Bundle
	replaceItems bool
}

func (s *stubRepo) List(ctx context.Context) ([]domain.Bundle, error) { return nil, nil }

func (s *stubRepo) GetByID(ctx context.Context, id string) (*domain.Bundle, error) {
	if b, ok := s.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, b domain.Bundle) (*domain.Bundle, error) {
	b.ID = "new-id"
	s.created = &b
	return &b, nil
}

func (s *stubRepo) Update(ctx context.Context, b domain.Bundle, replaceItems bool) (*domain.Bundle, error) {
	s.updated = &b
	s.replaceItems = replaceItems
	return &b, nil
}

func (s *stubRepo) Delete(ctx context.Context, id string) error { return nil }

func TestCreateValidatesItems(t *testing.T) {
	svc := New(&stubRepo{})

	cases := []CreateInput{
		{Title: ""},
		{Title: "Combo", SpecialPrice: -5},
		{Title: "Combo", Items: []ItemInput{{ProductID: "", Quantity: 1}}},
		{Title: "Combo", Items: []ItemInput{{ProductID: "p1", Quantity: 0}}},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestCreateSlugAndDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	b, err := svc.Create(context.Background(), CreateInput{
		Title:        "Combo Cumpleaños",
		SpecialPrice: 300,
		Items:        []ItemInput{{ProductID: "p1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Slug != "combo-cumpleanos" {
		t.Fatalf("unexpected slug %q", b.Slug)
	}
	if !b.IsActive {
		t.Fatal("expected bundle active by default")
	}
	if len(b.Items) != 1 || b.Items[0].Quantity != 2 {
		t.Fatalf("items not carried: %+v", b.Items)
	}
}

func TestUpdateWithoutItemsKeepsExisting(t *testing.T) {
	repo := &stubRepo{byID: map[string]*domain.Bundle{
		"b1": {ID: "b1", Title: "Old", Slug: "old", Items: []domain.BundleItem{{ProductID: "p1", Quantity: 1}}},
	}}
	svc := New(repo)

	title := "New"
	if _, err := svc.Update(context.Background(), "b1", UpdateInput{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.replaceItems {
		t.Fatal("expected items untouched when patch omits them")
	}
}

func TestUpdateReplacesItems(t *testing.T) {
	repo := &stubRepo{byID: map[string]*domain.Bundle{
		"b1": {ID: "b1", Title: "Old", Slug: "old"},
	}}
	svc := New(repo)

	_, err := svc.Update(context.Background(), "b1", UpdateInput{
		Items: []ItemInput{{ProductID: "p2", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !repo.replaceItems {
		t.Fatal("expected item replacement")
	}
	if len(repo.updated.Items) != 1 || repo.updated.Items[0].ProductID != "p2" {
		t.Fatalf("unexpected items: %+v", repo.updated.Items)
	}
}
