package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
}

// CategoryHandler serves the category tree
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{categoryUC: params.CategoryUC}
}

// CategorySummary is the storefront view of a category
type CategorySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image string    `json:"image"`
	Count int64     `json:"count"`
}

func newCategorySummaries(categories []*entity.Category) []CategorySummary {
	summaries := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		summaries = append(summaries, CategorySummary{
			ID:    category.ID,
			Name:  category.Name,
			Slug:  category.Slug,
			Image: category.Image,
			Count: category.ProductCount,
		})
	}

	return summaries
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryUC.ListActive(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newCategorySummaries(categories))
}

// AdminListCategories handles GET /api/admin/categories
func (h *CategoryHandler) AdminListCategories(c echo.Context) error {
	categories, err := h.categoryUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/admin/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	category, err := h.categoryUC.Get(c.Request().Context(), categoryID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}

// CreateCategory handles POST /api/admin/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	category, err := h.categoryUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category)
}

// UpdateCategory handles PATCH /api/admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	var req usecase.CategoryUpdateInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	category, err := h.categoryUC.Update(c.Request().Context(), categoryID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	if err := h.categoryUC.Delete(c.Request().Context(), categoryID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Category deleted successfully")
}

// UploadCategoryImage handles POST /api/admin/categories/:id/image (multipart field "image")
func (h *CategoryHandler) UploadCategoryImage(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	files, err := readUploads(c, "image")
	if err != nil || len(files) != 1 {
		return response.BadRequest(c, "INVALID_UPLOAD", "Expected multipart form with a single image")
	}

	category, err := h.categoryUC.UploadImage(c.Request().Context(), categoryID, files[0])
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}
