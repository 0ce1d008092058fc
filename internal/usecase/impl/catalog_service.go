package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
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

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	images       service.ImageStorage
	exporter     service.ProductExporter
	paging       pageLimits
	catalog      config.CatalogConfig
	now          func() time.Time
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ImageStorage service.ImageStorage
	Exporter     service.ProductExporter
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	var catalog config.CatalogConfig
	if params.Config != nil && params.Config.Catalog != nil {
		catalog = *params.Config.Catalog
	}

	return &catalogService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		images:       params.ImageStorage,
		exporter:     params.Exporter,
		paging:       newPageLimits(params.Config),
		catalog:      catalog,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of active products.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ProductListInput) (*usecase.ProductPage, error) {
	sort := entity.SortNewest
	if input.Sort != "" {
		sort = entity.ProductSort(input.Sort)
		if !sort.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown sort: " + input.Sort)
		}
	}

	if input.MinPrice != nil && input.MaxPrice != nil && *input.MinPrice > *input.MaxPrice {
		return nil, domainerrors.ErrValidationFailed.WithDetails("min_price must not exceed max_price")
	}

	page, limit := srv.paging.normalize(input.Page, input.Limit)
	filter := repository.ProductFilter{
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		InStock:  input.InStock,
		Search:   input.Search,
		Sort:     sort,
		Offset:   offset(page, limit),
		Limit:    limit,
	}

	if input.Category != "" {
		ids, err := srv.categoryScope(ctx, input.Category)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = ids
	}

	return srv.listPage(ctx, filter, page, limit)
}

// categoryScope resolves a category slug to the category and its direct children.
func (srv *catalogService) categoryScope(ctx context.Context, slug string) ([]uuid.UUID, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, domainerrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find category by slug")
	}
	if !category.IsActive {
		return nil, domainerrors.ErrCategoryNotFound
	}

	children, err := srv.categoryRepo.ChildIDs(ctx, category.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list child categories")
	}

	return append([]uuid.UUID{category.ID}, children...), nil
}

func (srv *catalogService) listPage(ctx context.Context, filter repository.ProductFilter, page, limit int) (*usecase.ProductPage, error) {
	products, total, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	if products == nil {
		products = []*entity.Product{}
	}

	return &usecase.ProductPage{
		Products:   products,
		Pagination: entity.NewPagination(page, limit, total),
	}, nil
}

// FeaturedProducts returns the featured rail with its badges.
func (srv *catalogService) FeaturedProducts(ctx context.Context) ([]*entity.FeaturedProduct, error) {
	products, err := srv.productRepo.ListFeatured(ctx, constants.FeaturedProductLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	featured := make([]*entity.FeaturedProduct, 0, len(products))
	if len(products) == 0 {
		return featured, nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}

	sold, err := srv.productRepo.SoldCounts(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count units sold")
	}

	newSince := srv.now().AddDate(0, 0, -srv.catalog.NewProductDays)
	for _, product := range products {
		totalSold := sold[product.ID]
		featured = append(featured, &entity.FeaturedProduct{
			Product:      product,
			TotalSold:    totalSold,
			IsNew:        srv.catalog.NewProductDays > 0 && product.CreatedAt.After(newSince),
			IsBestseller: srv.catalog.BestsellerMinSold > 0 && totalSold >= int64(srv.catalog.BestsellerMinSold),
		})
	}

	return featured, nil
}

// GetProductBySlug returns an active product. Inactive products are hidden from the storefront.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product by slug")
	}
	if !product.IsActive {
		return nil, domainerrors.ErrProductNotFound
	}

	return product, nil
}

// AdminListProducts returns one page of products in any state.
func (srv *catalogService) AdminListProducts(ctx context.Context, input *usecase.AdminProductListInput) (*usecase.ProductPage, error) {
	page, limit := srv.paging.normalize(input.Page, input.Limit)
	filter := repository.ProductFilter{
		Search:          input.Search,
		IncludeInactive: true,
		Sort:            entity.SortNewest,
		Offset:          offset(page, limit),
		Limit:           limit,
	}
	if input.CategoryID != nil {
		filter.CategoryIDs = []uuid.UUID{*input.CategoryID}
	}

	return srv.listPage(ctx, filter, page, limit)
}

// GetProduct retrieves a product in any state.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct creates a product. The slug is derived from the name when absent.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("slug cannot be derived from name")
	}

	if err := srv.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		Stock:        input.Stock,
		IsActive:     input.IsActive,
		IsFeatured:   input.IsFeatured,
		CategoryID:   input.CategoryID,
		Images:       nonNil(input.Images),
		Colors:       nonNil(input.Colors),
		Sizes:        nonNil(input.Sizes),
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, mapProductWriteError(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.String()), slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct applies the non-nil fields of input.
func (srv *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.ProductUpdateInput) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Slug != nil {
		slug := *input.Slug
		if slug == "" {
			slug = util.Slugify(product.Name)
		}
		if slug == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("slug cannot be derived from name")
		}
		product.Slug = slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = input.ComparePrice
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := srv.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Colors != nil {
		product.Colors = input.Colors
	}
	if input.Sizes != nil {
		product.Sizes = input.Sizes
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, mapProductWriteError(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product that no order references, then its images.
func (srv *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	err = srv.productRepo.Delete(ctx, productID)
	switch {
	case errors.Is(err, repository.ErrProductReferenced):
		return domainerrors.ErrProductInUse
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case err != nil:
		return errors.Wrap(err, "failed to delete product")
	}

	for _, url := range product.Images {
		srv.deleteImage(ctx, url)
	}

	srv.log(ctx).Info("Product deleted", slog.String("productID", productID.String()))

	return nil
}

// UploadProductImages stores files and appends their URLs to the product images.
func (srv *catalogService) UploadProductImages(ctx context.Context, productID uuid.UUID, files []usecase.UploadedFile) (*entity.Product, error) {
	if len(files) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("no files uploaded")
	}

	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	uploaded := make([]string, 0, len(files))
	for _, file := range files {
		url, err := srv.images.Upload(ctx, "products/"+productID.String(), file.Filename, file.Data)
		if err != nil {
			for _, u := range uploaded {
				srv.deleteImage(ctx, u)
			}

			return nil, mapImageError(err, file.Filename)
		}
		uploaded = append(uploaded, url)
	}

	product.Images = append(product.Images, uploaded...)
	if err := srv.productRepo.Update(ctx, product); err != nil {
		for _, u := range uploaded {
			srv.deleteImage(ctx, u)
		}

		return nil, mapProductWriteError(err, "failed to save product images")
	}

	srv.log(ctx).Info("Product images uploaded", slog.String("productID", productID.String()), slog.Int("count", len(uploaded)))

	return product, nil
}

// ExportProducts writes the whole catalog and returns the document content type.
func (srv *catalogService) ExportProducts(ctx context.Context, w io.Writer) (string, error) {
	products, err := srv.productRepo.ListAll(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to list products for export")
	}

	if err := srv.exporter.Export(w, products); err != nil {
		return "", errors.Wrap(err, "failed to export products")
	}

	return srv.exporter.ContentType(), nil
}

func (srv *catalogService) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	_, err := srv.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return domainerrors.ErrCategoryNotFound
	}

	return errors.Wrap(err, "failed to find category")
}

func (srv *catalogService) deleteImage(ctx context.Context, url string) {
	if err := srv.images.Delete(ctx, url); err != nil {
		srv.log(ctx).Warn("Failed to delete image", slog.String("url", url), slog.Any("error", err))
	}
}

func mapProductWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrSlugTaken):
		return domainerrors.ErrSlugConflict
	case errors.Is(err, repository.ErrInvalidReference):
		return domainerrors.ErrCategoryNotFound
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	default:
		return errors.Wrap(err, message)
	}
}

func mapImageError(err error, filename string) error {
	switch {
	case errors.Is(err, service.ErrNotAnImage), errors.Is(err, service.ErrImageTooLarge):
		return domainerrors.ErrInvalidImage.WithDetails(filename + ": " + err.Error())
	default:
		return errors.Wrap(err, "failed to store image")
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
