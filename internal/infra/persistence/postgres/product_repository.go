package postgres

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const soldQuantitySQL = "(SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi WHERE oi.product_id = products.id)"

var productSortOrders = map[entity.ProductSort]string{
	entity.SortNewest:    "created_at DESC, id",
	entity.SortPriceLow:  "price ASC, id",
	entity.SortPriceHigh: "price DESC, id",
	entity.SortRating:    "rating DESC, review_count DESC, id",
	entity.SortPopular:   soldQuantitySQL + " DESC, review_count DESC, id",
	entity.SortName:      "name ASC, id",
}

var productUpdateColumns = []string{
	"name", "slug", "description", "price", "compare_price", "stock", "is_active", "is_featured",
	"category_id", "images", "colors", "sizes", "rating", "review_count", "updated_at",
}

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a product by ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySlug retrieves a product by slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Read).First(&productM, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves the products with the given IDs.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	return toProductDomains(productModels), nil
}

// List returns one page of products matching filter.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.ProductModel{}).
		Scopes(productFilterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	order, ok := productSortOrders[filter.Sort]
	if !ok {
		order = productSortOrders[entity.SortNewest]
	}

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Scopes(productFilterScope(filter)).
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	return toProductDomains(productModels), total, nil
}

func productFilterScope(filter repository.ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !filter.IncludeInactive {
			db = db.Where("is_active = ?", true)
		}
		if len(filter.CategoryIDs) > 0 {
			db = db.Where("category_id IN ?", filter.CategoryIDs)
		}
		if filter.MinPrice != nil {
			db = db.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			db = db.Where("price <= ?", *filter.MaxPrice)
		}
		if filter.InStock {
			db = db.Where("stock > 0")
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := "%" + escapeLike(search) + "%"
			db = db.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
		}

		return db
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListFeatured returns active featured products, newest first.
func (repo *productRepository) ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return toProductDomains(productModels), nil
}

// ListAll returns every product ordered by name.
func (repo *productRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Order("name ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list all products")
	}

	return toProductDomains(productModels), nil
}

// SoldCounts returns the units sold per product.
func (repo *productRepository) SoldCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProductID uuid.UUID
		TotalSold int64
	}
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.OrderItemModel{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total_sold").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count sold products")
	}

	for _, row := range rows {
		counts[row.ProductID] = row.TotalSold
	}

	return counts, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update saves every mutable field of an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select(productUpdateColumns).
		Updates(productM)
	if result.Error != nil {
		return translateProductWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func translateProductWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return repository.ErrSlugTaken
	case isForeignKeyConstraintViolation(err):
		return repository.ErrInvalidReference
	case isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("stock cannot be negative")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// Delete removes a product.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrProductReferenced
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock subtracts quantity if the product is active and has enough units.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, quantity).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check product existence")
	}
	if count == 0 {
		return repository.ErrProductNotFound
	}

	return repository.ErrInsufficientStock
}

// --- Mapper Functions ---

func toProductDomains(productModels []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:           data.ID,
		Name:         data.Name,
		Slug:         data.Slug,
		Description:  data.Description,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		Stock:        data.Stock,
		IsActive:     data.IsActive,
		IsFeatured:   data.IsFeatured,
		CategoryID:   data.CategoryID,
		Images:       nonNilStrings(data.Images),
		Colors:       nonNilStrings(data.Colors),
		Sizes:        nonNilStrings(data.Sizes),
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:           data.ID,
		Name:         data.Name,
		Slug:         data.Slug,
		Description:  data.Description,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		Stock:        data.Stock,
		IsActive:     data.IsActive,
		IsFeatured:   data.IsFeatured,
		CategoryID:   data.CategoryID,
		Images:       nonNilStrings(data.Images),
		Colors:       nonNilStrings(data.Colors),
		Sizes:        nonNilStrings(data.Sizes),
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
