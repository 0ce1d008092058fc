package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryReferenced is returned when deleting a category that rows still reference.
	ErrCategoryReferenced = errors.New("category referenced")
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a category by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindBySlug retrieves a category by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// List returns categories ordered by sort order then name, each with its
	// active product count. activeOnly hides inactive categories.
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// ChildIDs returns the IDs of the direct children of a category.
	ChildIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)

	// CountProducts counts products of any state linked to the category.
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update saves every mutable field of an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
