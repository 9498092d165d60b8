// Package models defines the domain types for Raido.
package models

import "time"

// Category classifies a prototype record.
type Category string

// Recognized categories. Anything else normalizes to CategoryOther.
const (
	CategoryMobileApp Category = "mobile-app"
	CategoryWebApp    Category = "web-app"
	CategoryWebsite   Category = "website"
	CategoryUIKit     Category = "ui-kit"
	CategoryOther     Category = "other"
)

// ParseCategory maps a raw category value onto the enum, defaulting to
// CategoryOther for empty or unrecognized input.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryMobileApp, CategoryWebApp, CategoryWebsite, CategoryUIKit, CategoryOther:
		return Category(s)
	default:
		return CategoryOther
	}
}

// DisplayName returns the human-readable label for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMobileApp:
		return "Mobile App"
	case CategoryWebApp:
		return "Web App"
	case CategoryWebsite:
		return "Website"
	case CategoryUIKit:
		return "UI Kit"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// Record is one cataloged prototype link.
//
// ID is assigned by the catalog on creation and never changes. CreatedAt is
// set once; UpdatedAt equals CreatedAt right after creation and is refreshed
// on every successful update.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ExternalURL string    `json:"externalUrl"`
	Category    Category  `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
