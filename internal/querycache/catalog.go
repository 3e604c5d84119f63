package querycache

import (
	"context"

	"fiesta-storefront/internal/api"
	"fiesta-storefront/internal/domain"
)

// Cache key families. Write paths invalidate by these prefixes.
const (
	keyProducts   = "products"
	keyCategories = "categories"
	keyBundles    = "packages"
	keySettings   = "settings"
)

// Catalog composes the API client with the cache for the read endpoints and
// busts the matching key family after each mutation.
type Catalog struct {
	api   *api.Client
	cache *Cache
}

func NewCatalog(client *api.Client, cache *Cache) *Catalog {
	if cache == nil {
		cache = New()
	}
	return &Catalog{api: client, cache: cache}
}

func (t *Catalog) Products(ctx context.Context, q domain.ProductQuery) (*domain.ProductsPage, error) {
	v, err := t.cache.Do(ctx, keyProducts+"?"+q.Encode(), func(ctx context.Context) (any, error) {
		return t.api.ListProducts(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ProductsPage), nil
}

func (t *Catalog) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	v, err := t.cache.Do(ctx, keyProducts+"/by-slug/"+slug, func(ctx context.Context) (any, error) {
		return t.api.GetProductBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (t *Catalog) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	v, err := t.cache.Do(ctx, keyProducts+"/id/"+id, func(ctx context.Context) (any, error) {
		return t.api.GetProductByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// ContactLink is not cached: it is cheap, phone overrides vary per call, and
// the label depends on live settings.
func (t *Catalog) ContactLink(ctx context.Context, productID, channel, phone string) (*domain.ContactLink, error) {
	return t.api.ContactLink(ctx, productID, channel, phone)
}

func (t *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	v, err := t.cache.Do(ctx, keyCategories, func(ctx context.Context) (any, error) {
		return t.api.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

func (t *Catalog) CategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	v, err := t.cache.Do(ctx, keyCategories+"/"+id, func(ctx context.Context) (any, error) {
		return t.api.GetCategoryByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Category), nil
}

func (t *Catalog) Bundles(ctx context.Context) ([]domain.Bundle, error) {
	v, err := t.cache.Do(ctx, keyBundles, func(ctx context.Context) (any, error) {
		return t.api.ListBundles(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Bundle), nil
}

func (t *Catalog) BundleByID(ctx context.Context, id string) (*domain.Bundle, error) {
	v, err := t.cache.Do(ctx, keyBundles+"/"+id, func(ctx context.Context) (any, error) {
		return t.api.GetBundleByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Bundle), nil
}

func (t *Catalog) Settings(ctx context.Context) (*domain.SiteSettings, error) {
	v, err := t.cache.Do(ctx, keySettings, func(ctx context.Context) (any, error) {
		return t.api.GetSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.SiteSettings), nil
}

// ContactPhone returns the configured phone or the default when settings are
// unreachable or empty.
func (t *Catalog) ContactPhone(ctx context.Context) string {
	s, err := t.Settings(ctx)
	if err != nil || s.ContactPhone == "" {
		return domain.DefaultContactPhone
	}
	return s.ContactPhone
}

// Mutations pass through to the API and bust the affected key family.

func (t *Catalog) CreateProduct(ctx context.Context, in api.ProductInput) (*domain.Product, error) {
	p, err := t.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyProducts)
	return p, nil
}

func (t *Catalog) UpdateProduct(ctx context.Context, id string, patch api.ProductPatch) (*domain.Product, error) {
	p, err := t.api.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyProducts)
	return p, nil
}

func (t *Catalog) DeleteProduct(ctx context.Context, id string) error {
	if err := t.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	t.cache.Invalidate(keyProducts)
	return nil
}

func (t *Catalog) CreateCategory(ctx context.Context, in api.CategoryInput) (*domain.Category, error) {
	cat, err := t.api.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyCategories)
	return cat, nil
}

func (t *Catalog) UpdateCategory(ctx context.Context, id string, patch api.CategoryPatch) (*domain.Category, error) {
	cat, err := t.api.UpdateCategory(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyCategories)
	return cat, nil
}

func (t *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if err := t.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	t.cache.Invalidate(keyCategories)
	return nil
}

func (t *Catalog) CreateBundle(ctx context.Context, in api.BundleInput) (*domain.Bundle, error) {
	b, err := t.api.CreateBundle(ctx, in)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyBundles)
	return b, nil
}

func (t *Catalog) UpdateBundle(ctx context.Context, id string, patch api.BundlePatch) (*domain.Bundle, error) {
	b, err := t.api.UpdateBundle(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keyBundles)
	return b, nil
}

func (t *Catalog) DeleteBundle(ctx context.Context, id string) error {
	if err := t.api.DeleteBundle(ctx, id); err != nil {
		return err
	}
	t.cache.Invalidate(keyBundles)
	return nil
}

func (t *Catalog) UpdateSettings(ctx context.Context, in domain.SiteSettings) (*domain.SiteSettings, error) {
	s, err := t.api.UpdateSettings(ctx, in)
	if err != nil {
		return nil, err
	}
	t.cache.Invalidate(keySettings)
	return s, nil
}
