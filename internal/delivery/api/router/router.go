// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strconv"

	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

const (
	// maxUploadFiles bounds a single multi-image upload request.
	maxUploadFiles = 10

	staticImagesPath = "/static/images"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CategoryHandler *handler.CategoryHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	AuthHandler     *handler.AuthHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	categoryHandler *handler.CategoryHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	authHandler     *handler.AuthHandler
	adminHandler    *handler.AdminHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		categoryHandler: params.CategoryHandler,
		cartHandler:     params.CartHandler,
		orderHandler:    params.OrderHandler,
		authHandler:     params.AuthHandler,
		adminHandler:    params.AdminHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Storage.StaticDir != "" {
		e.Static(staticImagesPath, r.config.Storage.StaticDir)
	}

	api := e.Group("/api")

	// Storefront catalog, public
	api.GET("/categories", r.categoryHandler.ListCategories)
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.catalogHandler.ListProducts)
		productsGroup.GET("/featured", r.catalogHandler.FeaturedProducts)
		productsGroup.GET("/:slug", r.catalogHandler.GetProductBySlug)
	}

	api.GET("/auth/check-role", r.authHandler.CheckRole, r.authMiddleware.Authenticate)

	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("", r.cartHandler.AddItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.PATCH("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.POST("/validate", r.cartHandler.ValidateCart)
		cartGroup.POST("/refresh-prices", r.cartHandler.RefreshPrices)
	}

	ordersGroup := api.Group("/orders")
	{
		ordersGroup.POST("", r.orderHandler.PlaceOrder, r.authMiddleware.OptionalAuthenticate)
		ordersGroup.GET("/mine", r.orderHandler.ListMyOrders, r.authMiddleware.Authenticate)
		ordersGroup.GET("", r.orderHandler.ListOrders, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin())
	}

	// Back office: authenticate first, then check the role, before any handler runs
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin())

	adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
	adminGroup.GET("/logs", r.adminHandler.Logs)
	adminGroup.POST("/maintenance/sweep-carts", r.adminHandler.SweepCarts)

	upload := echomiddleware.BodyLimit(r.uploadLimit())

	adminCategories := adminGroup.Group("/categories")
	{
		adminCategories.GET("", r.categoryHandler.AdminListCategories)
		adminCategories.POST("", r.categoryHandler.CreateCategory)
		adminCategories.GET("/:id", r.categoryHandler.GetCategory)
		adminCategories.PATCH("/:id", r.categoryHandler.UpdateCategory)
		adminCategories.DELETE("/:id", r.categoryHandler.DeleteCategory)
		adminCategories.POST("/:id/image", r.categoryHandler.UploadCategoryImage, upload)
	}

	adminProducts := adminGroup.Group("/products")
	{
		adminProducts.GET("", r.catalogHandler.AdminListProducts)
		adminProducts.POST("", r.catalogHandler.CreateProduct)
		adminProducts.GET("/export", r.catalogHandler.ExportProducts)
		adminProducts.GET("/:id", r.catalogHandler.GetProduct)
		adminProducts.PATCH("/:id", r.catalogHandler.UpdateProduct)
		adminProducts.DELETE("/:id", r.catalogHandler.DeleteProduct)
		adminProducts.POST("/:id/images", r.catalogHandler.UploadProductImages, upload)
	}

	adminOrders := adminGroup.Group("/orders")
	{
		adminOrders.GET("", r.orderHandler.ListOrders)
		adminOrders.GET("/:id", r.orderHandler.GetOrder)
		adminOrders.PATCH("/:id", r.orderHandler.UpdateOrder)
		adminOrders.GET("/:id/qr", r.orderHandler.OrderQRCode)
	}

	adminUsers := adminGroup.Group("/users")
	{
		adminUsers.GET("", r.adminHandler.ListUsers)
		adminUsers.GET("/:id", r.adminHandler.GetUser)
		adminUsers.PATCH("/:id", r.adminHandler.UpdateUserRole)
		adminUsers.DELETE("/:id", r.adminHandler.DeleteUser)
	}
}

// uploadLimit is the body limit of image upload routes, in bytes.
func (r *router) uploadLimit() string {
	return strconv.Itoa(r.config.Storage.MaxImageBytes*maxUploadFiles) + "B"
}
