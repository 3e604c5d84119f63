package domain

import (
	"net/url"
	"strconv"
)

// Sort fields accepted by the product list endpoint.
const (
	SortByTitle     = "title"
	SortByPrice     = "price"
	SortByCreatedAt = "createdAt"
	SortByStatus    = "status"
)

// ProductQuery carries the optional product list filters. Zero values are
// omitted from the encoded query string rather than sent as empty.
type ProductQuery struct {
	Page       int
	Limit      int
	Status     string
	CategoryID string
	Search     string
	SortBy     string
	SortOrder  string
}

// Values encodes the query into url.Values, skipping absent parameters.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}

// Encode returns the canonical (sorted-key) query string for the filter set,
// which doubles as a stable cache key component.
func (q ProductQuery) Encode() string {
	return q.Values().Encode()
}
