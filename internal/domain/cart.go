package domain

// ProductSnapshot is the denormalized copy of display fields captured when a
// product is added to the cart. Later price or title changes on the backend
// do not retroactively alter items already in the cart.
type ProductSnapshot struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Slug   string     `json:"slug"`
	Price  Price      `json:"price"`
	Images []ImageRef `json:"images,omitempty"`
}

type ImageRef struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type CartItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// SnapshotOf captures the cart-facing fields of a product.
func SnapshotOf(p Product) ProductSnapshot {
	snap := ProductSnapshot{
		ID:    p.ID,
		Title: p.Title,
		Slug:  p.Slug,
		Price: p.Price,
	}
	for _, img := range p.Images {
		snap.Images = append(snap.Images, ImageRef{URL: img.URL, Alt: img.Alt})
	}
	return snap
}
