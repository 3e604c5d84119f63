package domain

// SiteSettings holds the editable site-wide configuration.
type SiteSettings struct {
	GoogleMapsEmbedURL string `json:"googleMapsEmbedUrl,omitempty"`
	ContactPhone       string `json:"contactPhone,omitempty"`
}

// DefaultContactPhone is used when no contact phone has been configured.
const DefaultContactPhone = "+1234567890"
