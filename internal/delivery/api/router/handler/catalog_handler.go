package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const exportFilename = "products.xlsx"

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves product listings and admin product management
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	input := &usecase.ProductListInput{
		Category: c.QueryParam("category"),
		InStock:  queryBool(c, "in_stock"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	}

	var err error
	if input.MinPrice, err = queryInt64Ptr(c, "min_price"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "min_price must be an integer")
	}
	if input.MaxPrice, err = queryInt64Ptr(c, "max_price"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "max_price must be an integer")
	}
	if input.Page, err = queryInt(c, "page"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "page must be an integer")
	}
	if input.Limit, err = queryInt(c, "limit"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "limit must be an integer")
	}

	page, err := h.catalogUC.ListProducts(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// FeaturedProducts handles GET /api/products/featured
func (h *CatalogHandler) FeaturedProducts(c echo.Context) error {
	products, err := h.catalogUC.FeaturedProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProductBySlug handles GET /api/products/:slug
func (h *CatalogHandler) GetProductBySlug(c echo.Context) error {
	product, err := h.catalogUC.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// AdminListProducts handles GET /api/admin/products
func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	input := &usecase.AdminProductListInput{Search: c.QueryParam("search")}

	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "category_id must be a UUID")
		}
		input.CategoryID = &categoryID
	}

	var err error
	if input.Page, err = queryInt(c, "page"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "page must be an integer")
	}
	if input.Limit, err = queryInt(c, "limit"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "limit must be an integer")
	}

	page, err := h.catalogUC.AdminListProducts(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetProduct handles GET /api/admin/products/:id
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /api/admin/products/:id
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req usecase.ProductUpdateInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), productID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Product deleted successfully")
}

// UploadProductImages handles POST /api/admin/products/:id/images (multipart field "images")
func (h *CatalogHandler) UploadProductImages(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	files, err := readUploads(c, "images")
	if err != nil {
		return response.BadRequest(c, "INVALID_UPLOAD", "Expected multipart form with images")
	}

	product, err := h.catalogUC.UploadProductImages(c.Request().Context(), productID, files)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ExportProducts handles GET /api/admin/products/export
func (h *CatalogHandler) ExportProducts(c echo.Context) error {
	var buf bytes.Buffer

	contentType, err := h.catalogUC.ExportProducts(c.Request().Context(), &buf)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
