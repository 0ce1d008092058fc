package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrSlugTaken is returned when a slug is already used by another row.
	ErrSlugTaken = errors.New("slug already taken")
	// ErrProductReferenced is returned when deleting a product that order items still reference.
	ErrProductReferenced = errors.New("product referenced by orders")
	// ErrInsufficientStock is returned when a conditional stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryIDs     []uuid.UUID
	MinPrice        *int64
	MaxPrice        *int64
	InStock         bool
	Search          string
	IncludeInactive bool
	Sort            entity.ProductSort
	Offset          int
	Limit           int
}

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// FindByID retrieves a product by ID regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a product by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// FindByIDs retrieves the products with the given IDs. Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List returns one page of products matching the filter, with the total count.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// ListFeatured returns active featured products, newest first.
	ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// ListAll returns every product ordered by name.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// SoldCounts returns the units sold per product across all orders.
	SoldCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update saves every mutable field of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product. Returns ErrProductReferenced when orders point at it.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock subtracts quantity only when the product is active and has
	// at least quantity units. Returns ErrInsufficientStock when the guard fails
	// and ErrProductNotFound when the product does not exist.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
