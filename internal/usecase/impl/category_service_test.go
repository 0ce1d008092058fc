package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCategoryService(t *testing.T) (usecase.CategoryUsecase, *mockRepo.MockCategoryRepository, *mockSvc.MockImageStorage) {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	images := mockSvc.NewMockImageStorage(t)

	srv := NewCategoryService(CategoryServiceParams{
		CategoryRepo: categoryRepo,
		ImageStorage: images,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return srv, categoryRepo, images
}

func TestCategoryService_Create(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	parent := &entity.Category{ID: uuid.New(), Name: "Silk"}

	categoryRepo.EXPECT().FindByID(ctx, parent.ID).Return(parent, nil)
	categoryRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Category) bool {
			return c.Slug == "kanjivaram" && c.ParentID != nil && *c.ParentID == parent.ID
		})).
		Return(nil)

	category, err := srv.Create(ctx, &usecase.CategoryInput{Name: "Kanjivaram", ParentID: &parent.ID, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "kanjivaram", category.Slug)
}

func TestCategoryService_Create_MissingParent(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	parentID := uuid.New()

	categoryRepo.EXPECT().FindByID(ctx, parentID).Return(nil, repository.ErrCategoryNotFound)

	_, err := srv.Create(ctx, &usecase.CategoryInput{Name: "Orphan", ParentID: &parentID})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCategoryService_Update_RejectsCycle(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()

	root := &entity.Category{ID: uuid.New(), Name: "Root"}
	child := &entity.Category{ID: uuid.New(), Name: "Child", ParentID: &root.ID}
	grandchild := &entity.Category{ID: uuid.New(), Name: "Grandchild", ParentID: &child.ID}

	categoryRepo.EXPECT().FindByID(ctx, root.ID).Return(root, nil)
	categoryRepo.EXPECT().FindByID(ctx, grandchild.ID).Return(grandchild, nil)
	categoryRepo.EXPECT().FindByID(ctx, child.ID).Return(child, nil)

	_, err := srv.Update(ctx, root.ID, &usecase.CategoryUpdateInput{ParentID: &grandchild.ID})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryCycle)
}

func TestCategoryService_Update_SelfParent(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Name: "Self"}

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)

	_, err := srv.Update(ctx, category.ID, &usecase.CategoryUpdateInput{ParentID: &category.ID})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryCycle)
}

func TestCategoryService_Update_ClearParent(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	parentID := uuid.New()
	category := &entity.Category{ID: uuid.New(), Name: "Cotton", ParentID: &parentID}
	name := "Handloom Cotton"

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
	categoryRepo.EXPECT().Update(ctx, category).Return(nil)

	got, err := srv.Update(ctx, category.ID, &usecase.CategoryUpdateInput{Name: &name, ClearParent: true})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, name, got.Name)
}

func TestCategoryService_Update_EmptySlugNeedsLatinName(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Name: "Cotton", Slug: "cotton"}
	name := "साड़ी"
	empty := ""

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)

	_, err := srv.Update(ctx, category.ID, &usecase.CategoryUpdateInput{Name: &name, Slug: &empty})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	categoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryService_Update_EmptySlugDerivesFromName(t *testing.T) {
	srv, categoryRepo, _ := createTestCategoryService(t)
	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Name: "Cotton", Slug: "old-cotton"}
	empty := ""

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
	categoryRepo.EXPECT().Update(ctx, category).Return(nil)

	got, err := srv.Update(ctx, category.ID, &usecase.CategoryUpdateInput{Slug: &empty})
	require.NoError(t, err)
	assert.Equal(t, "cotton", got.Slug)
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		active      bool
		children    []uuid.UUID
		products    int64
		wantMessage string
	}{
		{name: "still active", active: true, wantMessage: "Deactivate the category before deleting it"},
		{name: "has children", children: []uuid.UUID{uuid.New()}, wantMessage: "Category still has subcategories"},
		{name: "has products", products: 2, wantMessage: "Category still has products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, categoryRepo, _ := createTestCategoryService(t)
			ctx := context.Background()
			category := &entity.Category{ID: uuid.New(), IsActive: tt.active}

			categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
			if !tt.active {
				categoryRepo.EXPECT().ChildIDs(ctx, category.ID).Return(tt.children, nil)
			}
			if !tt.active && len(tt.children) == 0 {
				categoryRepo.EXPECT().CountProducts(ctx, category.ID).Return(tt.products, nil)
			}

			err := srv.Delete(ctx, category.ID)
			require.ErrorIs(t, err, domainerrors.ErrCategoryInUse)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestCategoryService_Delete_RemovesImage(t *testing.T) {
	srv, categoryRepo, images := createTestCategoryService(t)
	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Image: "https://cdn/cat.jpg"}

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
	categoryRepo.EXPECT().ChildIDs(ctx, category.ID).Return(nil, nil)
	categoryRepo.EXPECT().CountProducts(ctx, category.ID).Return(0, nil)
	categoryRepo.EXPECT().Delete(ctx, category.ID).Return(nil)
	images.EXPECT().Delete(ctx, "https://cdn/cat.jpg").Return(nil)

	require.NoError(t, srv.Delete(ctx, category.ID))
}

func TestCategoryService_UploadImage_ReplacesPrevious(t *testing.T) {
	srv, categoryRepo, images := createTestCategoryService(t)
	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Image: "https://cdn/old.jpg"}

	categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
	images.EXPECT().Upload(ctx, "categories/"+category.ID.String(), "new.jpg", []byte("jpg")).Return("https://cdn/new.jpg", nil)
	categoryRepo.EXPECT().Update(ctx, category).Return(nil)
	images.EXPECT().Delete(ctx, "https://cdn/old.jpg").Return(nil)

	got, err := srv.UploadImage(ctx, category.ID, usecase.UploadedFile{Filename: "new.jpg", Data: []byte("jpg")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/new.jpg", got.Image)
}
