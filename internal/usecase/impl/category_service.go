package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxCategoryDepth bounds the ancestor walk so corrupted data cannot loop forever.
const maxCategoryDepth = 64

type categoryService struct {
	categoryRepo repository.CategoryRepository
	images       service.ImageStorage
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ImageStorage service.ImageStorage
	Logger       *slog.Logger
}

// NewCategoryService creates a new category service instance
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		images:       params.ImageStorage,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) ListActive(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active categories")
	}

	return categories, nil
}

func (srv *categoryService) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) Get(ctx context.Context, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, domainerrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}

// Create adds a category. The parent, when given, must exist.
func (srv *categoryService) Create(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("slug cannot be derived from name")
	}

	if input.ParentID != nil {
		if _, err := srv.Get(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category := &entity.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		ParentID:    input.ParentID,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, mapCategoryWriteError(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.String("categoryID", category.ID.String()), slog.String("slug", category.Slug))

	return category, nil
}

// Update applies the non-nil fields of input. Moving a category under itself
// or one of its descendants is rejected.
func (srv *categoryService) Update(ctx context.Context, categoryID uuid.UUID, input *usecase.CategoryUpdateInput) (*entity.Category, error) {
	category, err := srv.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		slug := *input.Slug
		if slug == "" {
			slug = util.Slugify(category.Name)
		}
		if slug == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("slug cannot be derived from name")
		}
		category.Slug = slug
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Image != nil {
		category.Image = *input.Image
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	switch {
	case input.ClearParent:
		category.ParentID = nil
	case input.ParentID != nil:
		if err := srv.ensureNotAncestor(ctx, categoryID, *input.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, mapCategoryWriteError(err, "failed to update category")
	}

	return category, nil
}

// ensureNotAncestor walks up from parentID and fails if categoryID is on the path.
func (srv *categoryService) ensureNotAncestor(ctx context.Context, categoryID, parentID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		if current == categoryID {
			return domainerrors.ErrCategoryCycle
		}

		node, err := srv.Get(ctx, current)
		if err != nil {
			return err
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}

	return domainerrors.ErrCategoryCycle.WithDetails("category tree is too deep")
}

// Delete removes an inactive category with no children and no products.
func (srv *categoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	category, err := srv.Get(ctx, categoryID)
	if err != nil {
		return err
	}

	if category.IsActive {
		return domainerrors.ErrCategoryInUse.WithMessage("Deactivate the category before deleting it")
	}

	children, err := srv.categoryRepo.ChildIDs(ctx, categoryID)
	if err != nil {
		return errors.Wrap(err, "failed to list child categories")
	}
	if len(children) > 0 {
		return domainerrors.ErrCategoryInUse.WithMessage("Category still has subcategories")
	}

	products, err := srv.categoryRepo.CountProducts(ctx, categoryID)
	if err != nil {
		return errors.Wrap(err, "failed to count category products")
	}
	if products > 0 {
		return domainerrors.ErrCategoryInUse.WithMessage("Category still has products")
	}

	err = srv.categoryRepo.Delete(ctx, categoryID)
	switch {
	case errors.Is(err, repository.ErrCategoryReferenced):
		return domainerrors.ErrCategoryInUse
	case errors.Is(err, repository.ErrCategoryNotFound):
		return domainerrors.ErrCategoryNotFound
	case err != nil:
		return errors.Wrap(err, "failed to delete category")
	}

	if category.Image != "" {
		srv.deleteImage(ctx, category.Image)
	}

	srv.log(ctx).Info("Category deleted", slog.String("categoryID", categoryID.String()))

	return nil
}

// UploadImage stores a new category image and replaces the previous one.
func (srv *categoryService) UploadImage(ctx context.Context, categoryID uuid.UUID, file usecase.UploadedFile) (*entity.Category, error) {
	category, err := srv.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	url, err := srv.images.Upload(ctx, "categories/"+categoryID.String(), file.Filename, file.Data)
	if err != nil {
		return nil, mapImageError(err, file.Filename)
	}

	previous := category.Image
	category.Image = url
	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		srv.deleteImage(ctx, url)

		return nil, mapCategoryWriteError(err, "failed to save category image")
	}

	if previous != "" && previous != url {
		srv.deleteImage(ctx, previous)
	}

	return category, nil
}

func (srv *categoryService) deleteImage(ctx context.Context, url string) {
	if err := srv.images.Delete(ctx, url); err != nil {
		srv.log(ctx).Warn("Failed to delete image", slog.String("url", url), slog.Any("error", err))
	}
}

func mapCategoryWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrSlugTaken):
		return domainerrors.ErrSlugConflict
	case errors.Is(err, repository.ErrInvalidReference):
		return domainerrors.ErrCategoryNotFound.WithMessage("Parent category not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		return domainerrors.ErrCategoryNotFound
	default:
		return errors.Wrap(err, message)
	}
}
