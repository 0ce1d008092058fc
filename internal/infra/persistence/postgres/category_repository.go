package postgres

import (
	"context"
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

var categoryUpdateColumns = []string{
	"name", "slug", "description", "image", "parent_id", "is_active", "sort_order", "updated_at",
}

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// FindByID retrieves a category by ID.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM, 0), nil
}

// FindBySlug retrieves a category by slug.
func (repo *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Read).First(&categoryM, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	return toCategoryDomain(&categoryM, 0), nil
}

// List returns categories with the number of active products in each.
func (repo *categoryRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Table("categories AS c").
		Select("c.*, COUNT(p.id) AS product_count").
		Joins("LEFT JOIN products p ON p.category_id = c.id AND p.is_active = ?", true).
		Group("c.id").
		Order("c.sort_order ASC, c.name ASC")
	if activeOnly {
		query = query.Where("c.is_active = ?", true)
	}

	var rows []*model.CategoryWithCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, toCategoryDomain(&row.CategoryModel, row.ProductCount))
	}

	return categories, nil
}

// ChildIDs returns the IDs of the direct children of a category.
func (repo *categoryRepository) ChildIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("parent_id = ?", parentID).
		Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list child categories")
	}

	return ids, nil
}

// CountProducts counts products of any state in a category.
func (repo *categoryRepository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count category products")
	}

	return count, nil
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return translateCategoryWriteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// Update saves every mutable field of an existing category.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()
	categoryM := fromCategoryDomain(category)

	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{ID: category.ID}).
		Select(categoryUpdateColumns).
		Updates(categoryM)
	if result.Error != nil {
		return translateCategoryWriteError(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func translateCategoryWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return repository.ErrSlugTaken
	case isForeignKeyConstraintViolation(err):
		return repository.ErrInvalidReference
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// Delete removes a category.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryReferenced
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel, productCount int64) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:           data.ID,
		Name:         data.Name,
		Slug:         data.Slug,
		Description:  data.Description,
		Image:        data.Image,
		ParentID:     data.ParentID,
		IsActive:     data.IsActive,
		SortOrder:    data.SortOrder,
		ProductCount: productCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Image:       data.Image,
		ParentID:    data.ParentID,
		IsActive:    data.IsActive,
		SortOrder:   data.SortOrder,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
