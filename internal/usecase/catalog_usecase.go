package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductListInput represents the storefront product query
type ProductListInput struct {
	Category string
	MinPrice *int64
	MaxPrice *int64
	InStock  bool
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// AdminProductListInput represents the admin product query. Inactive products are included.
type AdminProductListInput struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Products   []*entity.Product `json:"products"`
	Pagination entity.Pagination `json:"pagination"`
}

// ProductInput represents the input for creating a product
type ProductInput struct {
	Name         string    `json:"name" validate:"required,max=255"`
	Slug         string    `json:"slug" validate:"omitempty,max=255"`
	Description  string    `json:"description"`
	Price        int64     `json:"price" validate:"gte=0"`
	ComparePrice *int64    `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	Stock        int       `json:"stock" validate:"gte=0"`
	IsActive     bool      `json:"is_active"`
	IsFeatured   bool      `json:"is_featured"`
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	Images       []string  `json:"images"`
	Colors       []string  `json:"colors"`
	Sizes        []string  `json:"sizes"`
}

// ProductUpdateInput represents a partial product update
type ProductUpdateInput struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug         *string    `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description  *string    `json:"description,omitempty"`
	Price        *int64     `json:"price,omitempty" validate:"omitempty,gte=0"`
	ComparePrice *int64     `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	Stock        *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool      `json:"is_active,omitempty"`
	IsFeatured   *bool      `json:"is_featured,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Images       []string   `json:"images,omitempty"`
	Colors       []string   `json:"colors,omitempty"`
	Sizes        []string   `json:"sizes,omitempty"`
}

// UploadedFile is a file received from a multipart form
type UploadedFile struct {
	Filename string
	Data     []byte
}

// CatalogUsecase defines the interface for product catalog use cases
type CatalogUsecase interface {
	// Storefront
	ListProducts(ctx context.Context, input *ProductListInput) (*ProductPage, error)
	FeaturedProducts(ctx context.Context) ([]*entity.FeaturedProduct, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// Admin
	AdminListProducts(ctx context.Context, input *AdminProductListInput) (*ProductPage, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *ProductUpdateInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	UploadProductImages(ctx context.Context, productID uuid.UUID, files []UploadedFile) (*entity.Product, error)
	ExportProducts(ctx context.Context, w io.Writer) (contentType string, err error)
}
