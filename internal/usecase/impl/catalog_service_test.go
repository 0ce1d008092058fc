package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixtures struct {
	service      *catalogService
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	images       *mockSvc.MockImageStorage
	exporter     *mockSvc.MockProductExporter
}

func createTestCatalogService(t *testing.T) catalogFixtures {
	f := catalogFixtures{
		productRepo:  mockRepo.NewMockProductRepository(t),
		categoryRepo: mockRepo.NewMockCategoryRepository(t),
		images:       mockSvc.NewMockImageStorage(t),
		exporter:     mockSvc.NewMockProductExporter(t),
	}

	f.service = NewCatalogService(CatalogServiceParams{
		ProductRepo:  f.productRepo,
		CategoryRepo: f.categoryRepo,
		ImageStorage: f.images,
		Exporter:     f.exporter,
		Config: &config.Config{Catalog: &config.CatalogConfig{
			NewProductDays:    30,
			BestsellerMinSold: 10,
			DefaultPageSize:   12,
			MaxPageSize:       50,
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*catalogService)

	return f
}

func TestCatalogService_ListProducts_CategoryIncludesChildren(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	parent := &entity.Category{ID: uuid.New(), Slug: "silk", IsActive: true}
	child := uuid.New()
	minPrice := int64(1000)

	f.categoryRepo.EXPECT().FindBySlug(ctx, "silk").Return(parent, nil)
	f.categoryRepo.EXPECT().ChildIDs(ctx, parent.ID).Return([]uuid.UUID{child}, nil)
	f.productRepo.EXPECT().
		List(ctx, repository.ProductFilter{
			CategoryIDs: []uuid.UUID{parent.ID, child},
			MinPrice:    &minPrice,
			InStock:     true,
			Sort:        entity.SortPriceLow,
			Offset:      12,
			Limit:       12,
		}).
		Return(nil, 13, nil)

	page, err := f.service.ListProducts(ctx, &usecase.ProductListInput{
		Category: "silk",
		MinPrice: &minPrice,
		InStock:  true,
		Sort:     "price-low",
		Page:     2,
	})
	require.NoError(t, err)

	assert.NotNil(t, page.Products)
	assert.Equal(t, entity.Pagination{Page: 2, Limit: 12, TotalCount: 13, TotalPages: 2, HasPrev: true}, page.Pagination)
}

func TestCatalogService_ListProducts_Rejects(t *testing.T) {
	low, high := int64(500), int64(100)

	tests := []struct {
		name  string
		input *usecase.ProductListInput
		want  error
	}{
		{name: "unknown sort", input: &usecase.ProductListInput{Sort: "cheapest"}, want: domainerrors.ErrValidationFailed},
		{name: "inverted price range", input: &usecase.ProductListInput{MinPrice: &low, MaxPrice: &high}, want: domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCatalogService(t)

			_, err := f.service.ListProducts(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalogService_ListProducts_InactiveCategory(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()

	f.categoryRepo.EXPECT().FindBySlug(ctx, "hidden").Return(&entity.Category{ID: uuid.New(), IsActive: false}, nil)

	_, err := f.service.ListProducts(ctx, &usecase.ProductListInput{Category: "hidden"})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCatalogService_FeaturedProducts_Badges(t *testing.T) {
	f := createTestCatalogService(t)
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return now }
	ctx := context.Background()

	fresh := newProduct("Fresh", 100, 1)
	fresh.CreatedAt = now.AddDate(0, 0, -3)
	classic := newProduct("Classic", 100, 1)
	classic.CreatedAt = now.AddDate(-1, 0, 0)

	f.productRepo.EXPECT().ListFeatured(ctx, 8).Return([]*entity.Product{fresh, classic}, nil)
	f.productRepo.EXPECT().
		SoldCounts(ctx, []uuid.UUID{fresh.ID, classic.ID}).
		Return(map[uuid.UUID]int64{classic.ID: 25}, nil)

	featured, err := f.service.FeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 2)

	assert.True(t, featured[0].IsNew)
	assert.False(t, featured[0].IsBestseller)
	assert.False(t, featured[1].IsNew)
	assert.True(t, featured[1].IsBestseller)
	assert.Equal(t, int64(25), featured[1].TotalSold)
}

func TestCatalogService_GetProductBySlug_HidesInactive(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	product := newProduct("Retired", 100, 0)
	product.IsActive = false

	f.productRepo.EXPECT().FindBySlug(ctx, "retired").Return(product, nil)

	_, err := f.service.GetProductBySlug(ctx, "retired")

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_CreateProduct_DerivesSlug(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	f.categoryRepo.EXPECT().FindByID(ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	f.productRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.Slug == "banarasi-silk-saree" && p.Images != nil && p.Colors != nil && p.Sizes != nil
		})).
		Return(nil)

	product, err := f.service.CreateProduct(ctx, &usecase.ProductInput{
		Name:       "Banarasi Silk Saree",
		Price:      12999,
		Stock:      4,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	assert.Equal(t, "banarasi-silk-saree", product.Slug)
}

func TestCatalogService_CreateProduct_Errors(t *testing.T) {
	t.Run("slug taken", func(t *testing.T) {
		f := createTestCatalogService(t)
		ctx := context.Background()
		categoryID := uuid.New()

		f.categoryRepo.EXPECT().FindByID(ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
		f.productRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrSlugTaken)

		_, err := f.service.CreateProduct(ctx, &usecase.ProductInput{Name: "Silk", CategoryID: categoryID})
		assert.ErrorIs(t, err, domainerrors.ErrSlugConflict)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := createTestCatalogService(t)
		ctx := context.Background()
		categoryID := uuid.New()

		f.categoryRepo.EXPECT().FindByID(ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

		_, err := f.service.CreateProduct(ctx, &usecase.ProductInput{Name: "Silk", CategoryID: categoryID})
		assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	})

	t.Run("name without slug characters", func(t *testing.T) {
		f := createTestCatalogService(t)

		_, err := f.service.CreateProduct(context.Background(), &usecase.ProductInput{Name: "!!!", CategoryID: uuid.New()})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestCatalogService_UpdateProduct_Partial(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	product := newProduct("Chiffon", 2000, 3)
	price := int64(1800)

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.productRepo.EXPECT().Update(ctx, product).Return(nil)

	got, err := f.service.UpdateProduct(ctx, product.ID, &usecase.ProductUpdateInput{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, int64(1800), got.Price)
	assert.Equal(t, "Chiffon", got.Name)
	assert.Equal(t, 3, got.Stock)
}

func TestCatalogService_UpdateProduct_EmptySlugNeedsLatinName(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	product := newProduct("chiffon", 2000, 3)
	name := "साड़ी"
	empty := ""

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	_, err := f.service.UpdateProduct(ctx, product.ID, &usecase.ProductUpdateInput{Name: &name, Slug: &empty})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Run("referenced by orders", func(t *testing.T) {
		f := createTestCatalogService(t)
		ctx := context.Background()
		product := newProduct("Sold", 100, 0)

		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.productRepo.EXPECT().Delete(ctx, product.ID).Return(repository.ErrProductReferenced)

		err := f.service.DeleteProduct(ctx, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrProductInUse)
	})

	t.Run("removes images after delete", func(t *testing.T) {
		f := createTestCatalogService(t)
		ctx := context.Background()
		product := newProduct("Unsold", 100, 2)
		product.Images = []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}

		f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.productRepo.EXPECT().Delete(ctx, product.ID).Return(nil)
		f.images.EXPECT().Delete(ctx, "https://cdn/a.jpg").Return(errors.New("gone"))
		f.images.EXPECT().Delete(ctx, "https://cdn/b.jpg").Return(nil)

		require.NoError(t, f.service.DeleteProduct(ctx, product.ID))
	})
}

func TestCatalogService_UploadProductImages(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	product := newProduct("Linen", 100, 2)
	product.Images = []string{"https://cdn/old.jpg"}
	prefix := "products/" + product.ID.String()

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.images.EXPECT().Upload(ctx, prefix, "front.jpg", []byte("front")).Return("https://cdn/front.jpg", nil)
	f.images.EXPECT().Upload(ctx, prefix, "back.jpg", []byte("back")).Return("https://cdn/back.jpg", nil)
	f.productRepo.EXPECT().Update(ctx, product).Return(nil)

	got, err := f.service.UploadProductImages(ctx, product.ID, []usecase.UploadedFile{
		{Filename: "front.jpg", Data: []byte("front")},
		{Filename: "back.jpg", Data: []byte("back")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/old.jpg", "https://cdn/front.jpg", "https://cdn/back.jpg"}, got.Images)
}

func TestCatalogService_UploadProductImages_RollsBackOnRejectedFile(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	product := newProduct("Linen", 100, 2)
	prefix := "products/" + product.ID.String()

	f.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.images.EXPECT().Upload(ctx, prefix, "ok.png", mock.Anything).Return("https://cdn/ok.png", nil)
	f.images.EXPECT().Upload(ctx, prefix, "notes.txt", mock.Anything).Return("", service.ErrNotAnImage)
	f.images.EXPECT().Delete(ctx, "https://cdn/ok.png").Return(nil)

	_, err := f.service.UploadProductImages(ctx, product.ID, []usecase.UploadedFile{
		{Filename: "ok.png", Data: []byte("png")},
		{Filename: "notes.txt", Data: []byte("text")},
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidImage)
}

func TestCatalogService_ExportProducts(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	products := []*entity.Product{newProduct("A", 1, 1)}
	var buf bytes.Buffer

	f.productRepo.EXPECT().ListAll(ctx).Return(products, nil)
	f.exporter.EXPECT().Export(&buf, products).Return(nil)
	f.exporter.EXPECT().ContentType().Return("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	contentType, err := f.service.ExportProducts(ctx, &buf)
	require.NoError(t, err)
	assert.Contains(t, contentType, "spreadsheetml")
}
