package models

import (
	"strings"
	"time"
)

// Language codes supported by the storefront
const (
	LanguageEnglish = "en"
	LanguageTamil   = "ta"
)

// Product represents a catalog entry (loose flowers, garlands, bouquets)
type Product struct {
	ID            string    `json:"id"`
	NameEN        string    `json:"nameEn"`
	NameTA        string    `json:"nameTa,omitempty"`
	DescriptionEN string    `json:"descriptionEn,omitempty"`
	DescriptionTA string    `json:"descriptionTa,omitempty"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"` // whole rupees
	Available     bool      `json:"available"`
	TiedLength    string    `json:"tiedLength,omitempty"`   // e.g. "1 muzham"
	BallQuantity  string    `json:"ballQuantity,omitempty"` // e.g. "50 balls"
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DisplayName resolves the product name for lang, falling back to English
func (p Product) DisplayName(lang string) string {
	if lang == LanguageTamil && strings.TrimSpace(p.NameTA) != "" {
		return p.NameTA
	}
	return p.NameEN
}

// CreateProductRequest represents the request body for creating a product
// Example: {"nameEn": "Jasmine garland", "nameTa": "மல்லிகை மாலை", "category": "garland", "price": 150, "available": true, "tiedLength": "1 muzham"}
type CreateProductRequest struct {
	NameEN        string `json:"nameEn"`
	NameTA        string `json:"nameTa,omitempty"`
	DescriptionEN string `json:"descriptionEn,omitempty"`
	DescriptionTA string `json:"descriptionTa,omitempty"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	Available     bool   `json:"available"`
	TiedLength    string `json:"tiedLength,omitempty"`
	BallQuantity  string `json:"ballQuantity,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// Validate checks the required fields of a new product
func (r CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.NameEN) == "" {
		return ValidationError("nameEn is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return ValidationError("category is required")
	}
	if r.Price < 0 {
		return ValidationError("price cannot be negative")
	}
	return nil
}

// ProductPatch is a partial product update. Each field is typed and optional;
// nil means "leave unchanged".
// Example: {"price": 180, "available": false}
type ProductPatch struct {
	NameEN        *string `json:"nameEn,omitempty"`
	NameTA        *string `json:"nameTa,omitempty"`
	DescriptionEN *string `json:"descriptionEn,omitempty"`
	DescriptionTA *string `json:"descriptionTa,omitempty"`
	Category      *string `json:"category,omitempty"`
	Price         *int64  `json:"price,omitempty"`
	Available     *bool   `json:"available,omitempty"`
	TiedLength    *string `json:"tiedLength,omitempty"`
	BallQuantity  *string `json:"ballQuantity,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return p.NameEN == nil && p.NameTA == nil && p.DescriptionEN == nil && p.DescriptionTA == nil &&
		p.Category == nil && p.Price == nil && p.Available == nil && p.TiedLength == nil &&
		p.BallQuantity == nil && p.ImageURL == nil
}

// Validate rejects patches that would leave the product invalid
func (p ProductPatch) Validate() error {
	if p.IsEmpty() {
		return ValidationError("patch has no fields")
	}
	if p.NameEN != nil && strings.TrimSpace(*p.NameEN) == "" {
		return ValidationError("nameEn cannot be empty")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ValidationError("category cannot be empty")
	}
	if p.Price != nil && *p.Price < 0 {
		return ValidationError("price cannot be negative")
	}
	return nil
}

// Apply merges the patch into product. Call Validate first.
func (p ProductPatch) Apply(product Product) Product {
	if p.NameEN != nil {
		product.NameEN = strings.TrimSpace(*p.NameEN)
	}
	if p.NameTA != nil {
		product.NameTA = strings.TrimSpace(*p.NameTA)
	}
	if p.DescriptionEN != nil {
		product.DescriptionEN = *p.DescriptionEN
	}
	if p.DescriptionTA != nil {
		product.DescriptionTA = *p.DescriptionTA
	}
	if p.Category != nil {
		product.Category = strings.ToLower(strings.TrimSpace(*p.Category))
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Available != nil {
		product.Available = *p.Available
	}
	if p.TiedLength != nil {
		product.TiedLength = *p.TiedLength
	}
	if p.BallQuantity != nil {
		product.BallQuantity = *p.BallQuantity
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	return product
}

// SetAvailabilityRequest represents the request body for PATCH /admin/products/:id/availability
// Example: {"available": false}
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []Product `json:"products"`
}
