package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog item. Prices are in the smallest currency unit.
type Product struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	ComparePrice *int64    `json:"compare_price,omitempty"`
	Stock        int       `json:"stock"`
	IsActive     bool      `json:"is_active"`
	IsFeatured   bool      `json:"is_featured"`
	CategoryID   uuid.UUID `json:"category_id"`
	Images       []string  `json:"images"`
	Colors       []string  `json:"colors"`
	Sizes        []string  `json:"sizes"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsPurchasable reports whether quantity units can be sold right now.
func (p *Product) IsPurchasable(quantity int) bool {
	return p.IsActive && quantity > 0 && p.Stock >= quantity
}

// ProductSort is the ordering applied to storefront listings.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price-low"
	SortPriceHigh ProductSort = "price-high"
	SortRating    ProductSort = "rating"
	SortPopular   ProductSort = "popular"
	SortName      ProductSort = "name"
)

// IsValid checks if the sort is one of the supported orderings.
func (s ProductSort) IsValid() bool {
	switch s {
	case SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortName:
		return true
	default:
		return false
	}
}

// FeaturedProduct decorates a featured product with storefront badges.
type FeaturedProduct struct {
	*Product
	TotalSold    int64 `json:"total_sold"`
	IsNew        bool  `json:"is_new"`
	IsBestseller bool  `json:"is_bestseller"`
}
