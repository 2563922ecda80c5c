package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	ListingSell = "sell"
	ListingRent = "rent"

	CurrencyGEL = "GEL"
	CurrencyUSD = "USD"

	PriceFixed      = "fixed"
	PriceNegotiable = "negotiable"

	StatusActive  = "active"
	StatusSold    = "sold"
	StatusRented  = "rented"
	StatusExpired = "expired"
)

// CategorySnapshot is the category name+slug embedded on the listing at
// write time, kept even if the category is later renamed or removed.
type CategorySnapshot struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attribute is a filter value attached to a listing.
type Attribute struct {
	FilterID string `json:"filterId"`
	Value    string `json:"value"`
}

type Location struct {
	Region string `json:"region"`
	City   string `json:"city"`
}

type Listing struct {
	ID          string           `gorm:"primaryKey;size:32" json:"id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Slug        string           `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Type        string           `gorm:"size:8;not null;index" json:"type"`
	Category    CategorySnapshot `gorm:"embedded;embeddedPrefix:category_" json:"category"`
	CategoryID  *string          `gorm:"size:32;index" json:"categoryId,omitempty"`
	Attributes  []Attribute      `gorm:"type:text;serializer:json" json:"attributes,omitempty"`

	Price      float64 `gorm:"not null;default:0" json:"price"`
	Currency   string  `gorm:"size:8;not null;default:GEL" json:"currency"`
	PriceType  string  `gorm:"size:16;not null;default:fixed" json:"priceType"`
	RentPeriod string  `gorm:"size:32" json:"rentPeriod,omitempty"`

	Images        []string          `gorm:"type:text;serializer:json" json:"images"`
	Thumbnail     string            `gorm:"size:512" json:"thumbnail,omitempty"`
	Specification map[string]string `gorm:"type:text;serializer:json" json:"specification,omitempty"`
	Location      Location          `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	OwnerID string `gorm:"size:32;not null;index" json:"ownerId"`
	Status  string `gorm:"size:16;not null;default:active;index" json:"status"`

	PromotionType      string     `gorm:"size:16;not null;default:none" json:"promotionType"`
	PromotionExpiresAt *time.Time `json:"promotionExpiresAt,omitempty"`
	PromotionRank      int        `gorm:"not null;default:3;index" json:"-"`

	ViewCount int `gorm:"not null;default:0" json:"viewCount"`
	SaveCount int `gorm:"not null;default:0" json:"saveCount"`

	SEOTitle       string `gorm:"size:255" json:"seoTitle,omitempty"`
	SEODescription string `gorm:"size:512" json:"seoDescription,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string { return "listings" }

func ValidListingType(t string) bool   { return t == ListingSell || t == ListingRent }
func ValidCurrency(c string) bool      { return c == CurrencyGEL || c == CurrencyUSD }
func ValidPriceType(p string) bool     { return p == PriceFixed || p == PriceNegotiable }
func ValidListingStatus(s string) bool {
	switch s {
	case StatusActive, StatusSold, StatusRented, StatusExpired:
		return true
	}
	return false
}
