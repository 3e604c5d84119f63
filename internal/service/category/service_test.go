package category

import (
	"context"
	"testing"

	"fiesta-storefront/internal/domain"
)

type stubRepo struct {
	items   []domain.Category
	byID    map[string]*domain.Category
	created *domain.Category
	updated *domain.Category
}

func (s *stubRepo) List(ctx context.Context) ([]domain.Category, error) { return s.items, nil }

func (s *stubRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if c, ok := s.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.ID = "new-id"
	s.created = &c
	return &c, nil
}

func (s *stubRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	s.updated = &c
	return &c, nil
}

func (s *stubRepo) Delete(ctx context.Context, id string) error { return nil }

func TestCreateSlugifiesName(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	c, err := svc.Create(context.Background(), CreateInput{Name: "Inflables Acuáticos"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Slug != "inflables-acuaticos" {
		t.Fatalf("unexpected slug %q", c.Slug)
	}
	if !c.IsActive {
		t.Fatal("expected category active by default")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Create(context.Background(), CreateInput{Name: "  "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	repo := &stubRepo{byID: map[string]*domain.Category{
		"c1": {ID: "c1", Name: "Old", Slug: "old", SortOrder: 2, IsActive: true},
	}}
	svc := New(repo)

	name := "Nuevo Nombre"
	c, err := svc.Update(context.Background(), "c1", UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Name != "Nuevo Nombre" {
		t.Fatalf("patch not applied: %+v", c)
	}
	if c.Slug != "old" || c.SortOrder != 2 {
		t.Fatalf("untouched fields changed: %+v", c)
	}
}

func TestListNeverNil(t *testing.T) {
	svc := New(&stubRepo{})
	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
