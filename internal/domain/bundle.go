package domain

import "time"

// Bundle groups several products under one special price. The REST API calls
// these "packages"; the Go name avoids colliding with the keyword.
type Bundle struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description,omitempty"`
	SpecialPrice Price        `json:"specialPrice"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Items        []BundleItem `json:"items,omitempty"`
}

type BundleItem struct {
	ID        string   `json:"id"`
	BundleID  string   `json:"packageId"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	SortOrder int      `json:"sortOrder"`
	Product   *Product `json:"product,omitempty"`
}
