package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Product availability states used by the rental catalog.
const (
	StatusAvailable = "DISPONIBLE"
	StatusBusy      = "OCUPADO"
	StatusSold      = "VENDIDO"
	StatusInTransit = "EN_CAMINO"
)

// Sale types: items can be bought outright or rented per event.
const (
	SaleTypePurchasable = "COMPRABLE"
	SaleTypeRentable    = "ALQUILABLE"
)

type Product struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Price       Price          `json:"price"`
	Status      string         `json:"status"`
	SaleType    string         `json:"saleType,omitempty"`
	CategoryID  *string        `json:"categoryId,omitempty"`
	SortOrder   int            `json:"sortOrder"`
	IsActive    bool           `json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Images      []ProductImage `json:"images,omitempty"`
	Category    *Category      `json:"category,omitempty"`
}

type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// FirstImageURL returns the URL of the first image, or "" when none exist.
func (p Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Price tolerates both JSON numbers and decimal strings, since backends
// serialize decimals either way ("1500.00" vs 1500).
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*p = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ProductsPage struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// ContactLink is the pre-built "book this item" link for a product.
type ContactLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}
