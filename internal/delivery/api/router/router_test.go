package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/delivery/api/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockService "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type routerFixtures struct {
	e          *echo.Echo
	identityUC *mockUsecase.MockIdentityUsecase
	catalogUC  *mockUsecase.MockCatalogUsecase
	categoryUC *mockUsecase.MockCategoryUsecase
	cartUC     *mockUsecase.MockCartUsecase
	orderUC    *mockUsecase.MockOrderUsecase
	dashUC     *mockUsecase.MockDashboardUsecase
	userUC     *mockUsecase.MockUserUsecase
	logBuffer  *mockService.MockLogBuffer
	user       *entity.User
	admin      *entity.User
}

func createTestRouter(t *testing.T) routerFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := routerFixtures{
		e:          echo.New(),
		identityUC: mockUsecase.NewMockIdentityUsecase(t),
		catalogUC:  mockUsecase.NewMockCatalogUsecase(t),
		categoryUC: mockUsecase.NewMockCategoryUsecase(t),
		cartUC:     mockUsecase.NewMockCartUsecase(t),
		orderUC:    mockUsecase.NewMockOrderUsecase(t),
		dashUC:     mockUsecase.NewMockDashboardUsecase(t),
		userUC:     mockUsecase.NewMockUserUsecase(t),
		logBuffer:  mockService.NewMockLogBuffer(t),
		user:       &entity.User{ID: uuid.New(), Email: "asha@example.com", Role: entity.RoleUser},
		admin:      &entity.User{ID: uuid.New(), Email: "admin@example.com", Role: entity.RoleAdmin},
	}

	f.identityUC.EXPECT().ResolveUser(mock.Anything, userToken).Return(f.user, nil).Maybe()
	f.identityUC.EXPECT().ResolveUser(mock.Anything, adminToken).Return(f.admin, nil).Maybe()

	f.e.Validator = validator.New()
	f.e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError

	NewRouter(RouterParams{
		CatalogHandler:  handler.NewCatalogHandler(handler.CatalogHandlerParams{CatalogUC: f.catalogUC, Logger: logger}),
		CategoryHandler: handler.NewCategoryHandler(handler.CategoryHandlerParams{CategoryUC: f.categoryUC}),
		CartHandler:     handler.NewCartHandler(handler.CartHandlerParams{CartUC: f.cartUC}),
		OrderHandler:    handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: f.orderUC}),
		AuthHandler:     handler.NewAuthHandler(),
		AdminHandler: handler.NewAdminHandler(handler.AdminHandlerParams{
			DashboardUC: f.dashUC,
			UserUC:      f.userUC,
			CartUC:      f.cartUC,
			LogBuffer:   f.logBuffer,
			Logger:      logger,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{IdentityUC: f.identityUC}),
		Config:         &config.Config{Storage: &config.StorageConfig{MaxImageBytes: 1 << 20}},
	}).RegisterRoutes(f.e)

	return f
}

func (f routerFixtures) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func (f routerFixtures) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	return f.do(method, target, token, strings.NewReader(body), echo.MIMEApplicationJSON)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, rec.Code, rec.Body.String())
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, code, env.Error.Code)
}

func TestRouter_Health(t *testing.T) {
	f := createTestRouter(t)

	rec := f.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(decode(t, rec).Data))
}

func TestRouter_Authentication(t *testing.T) {
	f := createTestRouter(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/cart", "", nil, "")
		assertErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic abc")
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)
		assertErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("invalid token", func(t *testing.T) {
		f.identityUC.EXPECT().ResolveUser(mock.Anything, "expired").Return(nil, domainerrors.ErrInvalidToken).Once()

		rec := f.do(http.MethodGet, "/api/cart", "expired", nil, "")
		assertErrorCode(t, rec, http.StatusUnauthorized, "INVALID_TOKEN")
	})

	t.Run("user on admin route", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/admin/dashboard", userToken, nil, "")
		assertErrorCode(t, rec, http.StatusForbidden, "FORBIDDEN")
	})

	t.Run("user on admin order listing", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/orders", userToken, nil, "")
		assertErrorCode(t, rec, http.StatusForbidden, "FORBIDDEN")
	})
}

func TestRouter_CheckRole(t *testing.T) {
	f := createTestRouter(t)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "user", token: userToken, want: `{"role":"USER","is_admin":false}`},
		{name: "admin", token: adminToken, want: `{"role":"ADMIN","is_admin":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/auth/check-role", tt.token, nil, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, string(decode(t, rec).Data))
		})
	}
}

func TestRouter_ListProducts(t *testing.T) {
	f := createTestRouter(t)

	t.Run("parses filters", func(t *testing.T) {
		f.catalogUC.EXPECT().
			ListProducts(mock.Anything, mock.MatchedBy(func(input *usecase.ProductListInput) bool {
				return input.Category == "silk" &&
					input.MinPrice != nil && *input.MinPrice == 1000 &&
					input.MaxPrice != nil && *input.MaxPrice == 5000 &&
					input.InStock &&
					input.Search == "red" &&
					input.Sort == "price-low" &&
					input.Page == 2 && input.Limit == 6
			})).
			Return(&usecase.ProductPage{
				Products:   []*entity.Product{{ID: uuid.New(), Name: "Kanjivaram", Price: 4999}},
				Pagination: entity.NewPagination(2, 6, 7),
			}, nil).
			Once()

		rec := f.do(http.MethodGet, "/api/products?category=silk&min_price=1000&max_price=5000&in_stock=true&search=red&sort=price-low&page=2&limit=6", "", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var page usecase.ProductPage
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Kanjivaram", page.Products[0].Name)
		assert.Equal(t, int64(7), page.Pagination.TotalCount)
	})

	t.Run("absent price bounds stay unset", func(t *testing.T) {
		f.catalogUC.EXPECT().
			ListProducts(mock.Anything, mock.MatchedBy(func(input *usecase.ProductListInput) bool {
				return input.MinPrice == nil && input.MaxPrice == nil && !input.InStock
			})).
			Return(&usecase.ProductPage{Products: []*entity.Product{}}, nil).
			Once()

		rec := f.do(http.MethodGet, "/api/products", "", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-numeric price", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/products?min_price=cheap", "", nil, "")
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_QUERY")
	})

	t.Run("domain rejection", func(t *testing.T) {
		f.catalogUC.EXPECT().ListProducts(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrValidationFailed.WithDetails("unknown sort")).
			Once()

		rec := f.do(http.MethodGet, "/api/products?sort=cheapest", "", nil, "")
		assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
		assert.Equal(t, "unknown sort", decode(t, rec).Error.Details)
	})

	t.Run("featured does not match slug route", func(t *testing.T) {
		f.catalogUC.EXPECT().FeaturedProducts(mock.Anything).Return([]*entity.FeaturedProduct{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/products/featured", "", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_ListCategories(t *testing.T) {
	f := createTestRouter(t)

	silk := &entity.Category{ID: uuid.New(), Name: "Silk", Slug: "silk", Image: "https://cdn/silk.png", ProductCount: 12, IsActive: true}
	f.categoryUC.EXPECT().ListActive(mock.Anything).Return([]*entity.Category{silk}, nil).Once()

	rec := f.do(http.MethodGet, "/api/categories", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []handler.CategorySummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, handler.CategorySummary{ID: silk.ID, Name: "Silk", Slug: "silk", Image: "https://cdn/silk.png", Count: 12}, summaries[0])
}

const orderBody = `{
	"items": [{"product_id": "%s", "quantity": 1}],
	"shipping": {
		"full_name": "Asha Rao",
		"phone": "+919800000000",
		"line1": "12 MG Road",
		"city": "Bengaluru",
		"state": "KA",
		"postal_code": "560001",
		"country": "IN"
	}
}`

func TestRouter_PlaceOrder(t *testing.T) {
	productID := uuid.New()
	body := strings.Replace(orderBody, "%s", productID.String(), 1)

	t.Run("guest", func(t *testing.T) {
		f := createTestRouter(t)

		f.orderUC.EXPECT().
			PlaceOrder(mock.Anything, mock.MatchedBy(func(input *usecase.PlaceOrderInput) bool {
				return input.UserID == nil && len(input.Items) == 1 && input.Items[0].ProductID == productID
			})).
			Return(&entity.Order{ID: uuid.New(), OrderNumber: "COD17000000000001234", Total: 5999}, nil).
			Once()

		rec := f.doJSON(http.MethodPost, "/api/orders", "", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp handler.PlaceOrderResponse
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "COD17000000000001234", resp.Order.OrderNumber)
	})

	t.Run("signed in", func(t *testing.T) {
		f := createTestRouter(t)

		f.orderUC.EXPECT().
			PlaceOrder(mock.Anything, mock.MatchedBy(func(input *usecase.PlaceOrderInput) bool {
				return input.UserID != nil && *input.UserID == f.user.ID
			})).
			Return(&entity.Order{ID: uuid.New(), OrderNumber: "COD17000000000005678"}, nil).
			Once()

		rec := f.doJSON(http.MethodPost, "/api/orders", userToken, body)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("client cannot choose the user", func(t *testing.T) {
		f := createTestRouter(t)

		f.orderUC.EXPECT().
			PlaceOrder(mock.Anything, mock.MatchedBy(func(input *usecase.PlaceOrderInput) bool {
				return input.UserID == nil
			})).
			Return(&entity.Order{ID: uuid.New()}, nil).
			Once()

		spoofed := strings.Replace(body, `"items"`, `"UserID": "`+uuid.NewString()+`", "items"`, 1)
		rec := f.doJSON(http.MethodPost, "/api/orders", "", spoofed)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("invalid optional token", func(t *testing.T) {
		f := createTestRouter(t)
		f.identityUC.EXPECT().ResolveUser(mock.Anything, "forged").Return(nil, domainerrors.ErrInvalidToken).Once()

		rec := f.doJSON(http.MethodPost, "/api/orders", "forged", body)
		assertErrorCode(t, rec, http.StatusUnauthorized, "INVALID_TOKEN")
	})

	t.Run("missing shipping field", func(t *testing.T) {
		f := createTestRouter(t)

		rec := f.doJSON(http.MethodPost, "/api/orders", "", strings.Replace(body, `"full_name": "Asha Rao",`, "", 1))
		assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
		assert.Contains(t, decode(t, rec).Error.Details, "full_name is required")
	})

	t.Run("malformed json", func(t *testing.T) {
		f := createTestRouter(t)

		rec := f.doJSON(http.MethodPost, "/api/orders", "", "{")
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("insufficient stock", func(t *testing.T) {
		f := createTestRouter(t)

		f.orderUC.EXPECT().PlaceOrder(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrInsufficientStock.WithMessage("Only 1 units of Organza available")).
			Once()

		rec := f.doJSON(http.MethodPost, "/api/orders", "", body)
		assertErrorCode(t, rec, http.StatusBadRequest, "INSUFFICIENT_STOCK")
		assert.Equal(t, "Only 1 units of Organza available", decode(t, rec).Error.Message)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		f := createTestRouter(t)

		f.orderUC.EXPECT().PlaceOrder(mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

		rec := f.doJSON(http.MethodPost, "/api/orders", "", body)
		assertErrorCode(t, rec, http.StatusInternalServerError, "INTERNAL_ERROR")
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestRouter_Cart(t *testing.T) {
	f := createTestRouter(t)
	productID := uuid.New()

	t.Run("add item", func(t *testing.T) {
		f.cartUC.EXPECT().
			AddItem(mock.Anything, f.user.ID, &usecase.CartItemInput{ProductID: productID, Quantity: 2, Color: "red"}).
			Return(&usecase.CartView{Cart: &entity.Cart{UserID: f.user.ID}, Totals: &entity.CartTotals{}}, nil).
			Once()

		rec := f.doJSON(http.MethodPost, "/api/cart", userToken, `{"product_id":"`+productID.String()+`","quantity":2,"color":"red"}`)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("zero quantity is a valid update", func(t *testing.T) {
		f.cartUC.EXPECT().UpdateItem(mock.Anything, f.user.ID, productID, 0).
			Return(&usecase.CartView{Cart: &entity.Cart{UserID: f.user.ID}, Totals: &entity.CartTotals{}}, nil).
			Once()

		rec := f.doJSON(http.MethodPatch, "/api/cart/items/"+productID.String(), userToken, `{"quantity":0}`)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("missing quantity", func(t *testing.T) {
		rec := f.doJSON(http.MethodPatch, "/api/cart/items/"+productID.String(), userToken, `{}`)
		assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	})

	t.Run("bad product id", func(t *testing.T) {
		rec := f.do(http.MethodDelete, "/api/cart/items/not-a-uuid", userToken, nil, "")
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_ID")
	})

	t.Run("validate is always ok", func(t *testing.T) {
		f.cartUC.EXPECT().ValidateCart(mock.Anything, f.user.ID).
			Return(&entity.CartValidation{IsValid: false, Errors: []string{"Organza: only 1 left"}}).
			Once()

		rec := f.do(http.MethodPost, "/api/cart/validate", userToken, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decode(t, rec).Data), "only 1 left")
	})
}

func TestRouter_AdminDashboard(t *testing.T) {
	f := createTestRouter(t)

	f.dashUC.EXPECT().GetDashboardStats(mock.Anything, entity.RoleAdmin).
		Return(&entity.DashboardStats{TotalOrders: 3, TopProducts: []entity.TopProduct{}, RecentOrders: []entity.OrderSummary{}}, nil).
		Once()

	rec := f.do(http.MethodGet, "/api/admin/dashboard", adminToken, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats entity.DashboardStats
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &stats))
	assert.Equal(t, int64(3), stats.TotalOrders)
}

func TestRouter_AdminUsers(t *testing.T) {
	f := createTestRouter(t)
	targetID := uuid.New()

	t.Run("invalid role", func(t *testing.T) {
		rec := f.doJSON(http.MethodPatch, "/api/admin/users/"+targetID.String(), adminToken, `{"role":"OWNER"}`)
		assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_FAILED")
	})

	t.Run("forbidden change", func(t *testing.T) {
		f.userUC.EXPECT().UpdateRole(mock.Anything, f.admin, targetID, entity.RoleSuperAdmin).
			Return(nil, domainerrors.ErrRoleChangeNotAllowed).
			Once()

		rec := f.doJSON(http.MethodPatch, "/api/admin/users/"+targetID.String(), adminToken, `{"role":"SUPER_ADMIN"}`)
		assertErrorCode(t, rec, http.StatusForbidden, "ROLE_CHANGE_NOT_ALLOWED")
	})

	t.Run("delete", func(t *testing.T) {
		f.userUC.EXPECT().DeleteUser(mock.Anything, f.admin, targetID).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/admin/users/"+targetID.String(), adminToken, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(decode(t, rec).Data))
	})
}

func TestRouter_AdminLogs(t *testing.T) {
	f := createTestRouter(t)

	f.logBuffer.EXPECT().Entries(slog.LevelWarn, 500).
		Return([]service.LogEntry{{Level: "WARN", Message: "slow query"}}).
		Once()

	rec := f.do(http.MethodGet, "/api/admin/logs?level=warn&limit=9000", adminToken, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), "slow query")

	rec = f.do(http.MethodGet, "/api/admin/logs?level=loud", adminToken, nil, "")
	assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_QUERY")
}

func TestRouter_UploadCategoryImage(t *testing.T) {
	f := createTestRouter(t)
	categoryID := uuid.New()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "silk.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	f.categoryUC.EXPECT().
		UploadImage(mock.Anything, categoryID, usecase.UploadedFile{Filename: "silk.png", Data: []byte("\x89PNG fake")}).
		Return(&entity.Category{ID: categoryID, Image: "https://cdn/categories/silk.png"}, nil).
		Once()

	rec := f.do(http.MethodPost, "/api/admin/categories/"+categoryID.String()+"/image", adminToken, &body, writer.FormDataContentType())
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/admin/categories/"+categoryID.String()+"/image", adminToken, strings.NewReader("{}"), echo.MIMEApplicationJSON)
	assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_UPLOAD")
}

func TestRouter_ExportProducts(t *testing.T) {
	f := createTestRouter(t)

	f.catalogUC.EXPECT().ExportProducts(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, w io.Writer) (string, error) {
			_, err := w.Write([]byte("xlsx-bytes"))

			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
		}).
		Once()

	rec := f.do(http.MethodGet, "/api/admin/products/export", adminToken, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "products.xlsx")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}
