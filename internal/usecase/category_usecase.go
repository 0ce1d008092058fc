package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput represents the input for creating a category
type CategoryInput struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Slug        string     `json:"slug" validate:"omitempty,max=120"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
}

// CategoryUpdateInput represents a partial category update
type CategoryUpdateInput struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=120"`
	Slug        *string    `json:"slug,omitempty" validate:"omitempty,max=120"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
}

// CategoryUsecase defines the interface for category use cases
type CategoryUsecase interface {
	// ListActive returns active categories with their active product counts
	ListActive(ctx context.Context) ([]*entity.Category, error)

	// Admin category management
	List(ctx context.Context) ([]*entity.Category, error)
	Get(ctx context.Context, categoryID uuid.UUID) (*entity.Category, error)
	Create(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, input *CategoryUpdateInput) (*entity.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
	UploadImage(ctx context.Context, categoryID uuid.UUID, file UploadedFile) (*entity.Category, error)
}
