// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	msgCartEmpty          = "Cart is empty"
	msgCartValidateFailed = "Failed to validate cart"

	maxAddItemAttempts = 2
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func unavailableMessage(product *entity.Product) string {
	return fmt.Sprintf("%s is no longer available", product.Name)
}

func insufficientStockMessage(product *entity.Product) string {
	return fmt.Sprintf("Only %d units of %s available", product.Stock, product.Name)
}

// ensurePurchasable applies the stock rules shared by adding and updating a line.
func ensurePurchasable(product *entity.Product, quantity int) error {
	if !product.IsActive {
		return domainerrors.ErrProductUnavailable.WithMessage(unavailableMessage(product))
	}
	if quantity > product.Stock {
		return domainerrors.ErrInsufficientStock.WithMessage(insufficientStockMessage(product))
	}

	return nil
}

// GetCart returns the user's cart, creating it on first access.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get or create cart")
	}

	return newCartView(cart), nil
}

// AddItem adds a product to the cart. A product already in the cart has its
// quantity increased and keeps the price locked when it was first added.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*usecase.CartView, error) {
	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	// A concurrent first add of the same product loses on the unique line index.
	// The retry runs in a fresh transaction and merges into the winner's line.
	for attempt := 0; ; attempt++ {
		err = srv.addItem(ctx, userID, product, input)
		if !errors.Is(err, repository.ErrCartItemExists) || attempt == maxAddItemAttempts-1 {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Cart item added", slog.String("userID", userID.String()), slog.String("productID", product.ID.String()), slog.Int("quantity", input.Quantity))

	return srv.reload(ctx, userID)
}

// addItem merges input into the cart line for product, creating the line when missing.
func (srv *cartService) addItem(ctx context.Context, userID uuid.UUID, product *entity.Product, input *usecase.CartItemInput) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		cart, err := cartRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to get or create cart")
		}

		existing, err := cartRepo.FindItem(ctx, cart.ID, product.ID)
		if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
			return errors.Wrap(err, "failed to find cart item")
		}

		if existing != nil {
			quantity := existing.Quantity + input.Quantity
			if err := ensurePurchasable(product, quantity); err != nil {
				return err
			}

			return errors.Wrap(cartRepo.UpdateItemQuantity(ctx, existing.ID, quantity), "failed to update cart item quantity")
		}

		if err := ensurePurchasable(product, input.Quantity); err != nil {
			return err
		}

		item := &entity.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Price:     product.Price,
			Color:     input.Color,
			Size:      input.Size,
		}

		return errors.Wrap(cartRepo.CreateItem(ctx, item), "failed to create cart item")
	})
}

// UpdateItem sets the quantity of a cart line. Zero removes the line.
func (srv *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*usecase.CartView, error) {
	if quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must not be negative")
	}

	item, err := srv.findLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if err := srv.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return nil, errors.Wrap(err, "failed to delete cart item")
		}

		return srv.reload(ctx, userID)
	}

	product := item.Product
	if product == nil {
		product, err = srv.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find product")
		}
	}

	if err := ensurePurchasable(product, quantity); err != nil {
		return nil, err
	}

	if err := srv.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, errors.Wrap(err, "failed to update cart item quantity")
	}

	return srv.reload(ctx, userID)
}

// RemoveItem removes the cart line for a product.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*usecase.CartView, error) {
	item, err := srv.findLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if err := srv.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete cart item")
	}

	return srv.reload(ctx, userID)
}

// ClearCart empties the user's cart. A missing cart is already clear.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find cart")
	}

	return errors.Wrap(srv.cartRepo.ClearItems(ctx, cart.ID), "failed to clear cart items")
}

// ValidateCart checks every line against the current product state.
func (srv *cartService) ValidateCart(ctx context.Context, userID uuid.UUID) *entity.CartValidation {
	result := &entity.CartValidation{
		Errors:                 []string{},
		UnavailableItems:       []string{},
		InsufficientStockItems: []entity.InsufficientStockItem{},
	}

	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		srv.log(ctx).Error("Failed to load cart for validation", slog.String("userID", userID.String()), slog.Any("error", err))
		result.Errors = append(result.Errors, msgCartValidateFailed)

		return result
	}

	if cart.IsEmpty() {
		result.Errors = append(result.Errors, msgCartEmpty)

		return result
	}

	products, err := srv.currentProducts(ctx, cart.Items)
	if err != nil {
		srv.log(ctx).Error("Failed to load products for validation", slog.String("userID", userID.String()), slog.Any("error", err))
		result.Errors = append(result.Errors, msgCartValidateFailed)

		return result
	}

	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}

		if !product.IsActive {
			result.Errors = append(result.Errors, unavailableMessage(product))
			result.UnavailableItems = append(result.UnavailableItems, product.Name)
		}

		if item.Quantity > product.Stock {
			result.Errors = append(result.Errors, insufficientStockMessage(product))
			result.InsufficientStockItems = append(result.InsufficientStockItems, entity.InsufficientStockItem{
				ProductID: product.ID,
				Requested: item.Quantity,
				Available: product.Stock,
			})
		}
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

// UpdateCartItemPrices rewrites the locked price of every line whose product
// price changed. Lines already at the live price are not written.
func (srv *cartService) UpdateCartItemPrices(ctx context.Context, userID uuid.UUID) error {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find cart")
	}

	if cart.IsEmpty() {
		return nil
	}

	products, err := srv.currentProducts(ctx, cart.Items)
	if err != nil {
		return err
	}

	updated := 0
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok || item.Price == product.Price {
			continue
		}

		if err := srv.cartRepo.UpdateItemPrice(ctx, item.ID, product.Price); err != nil {
			return errors.Wrap(err, "failed to update cart item price")
		}
		item.Price = product.Price
		updated++
	}

	if updated > 0 {
		srv.log(ctx).Info("Cart prices refreshed", slog.String("userID", userID.String()), slog.Int("updated", updated))
	}

	return nil
}

// CalculateCartTotals sums the cart at its locked prices.
func (srv *cartService) CalculateCartTotals(ctx context.Context, userID uuid.UUID) *entity.CartTotals {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			srv.log(ctx).Error("Failed to load cart for totals", slog.String("userID", userID.String()), slog.Any("error", err))
		}

		return calculateTotals(nil)
	}

	return calculateTotals(cart)
}

// ClearExpiredCartItems removes lines for inactive products in one statement,
// then deletes lines for sold-out products and clamps lines asking for more
// than the remaining stock. Lines are handled one at a time.
func (srv *cartService) ClearExpiredCartItems(ctx context.Context) (*entity.SweepResult, error) {
	result := &entity.SweepResult{}

	removed, err := srv.cartRepo.DeleteItemsForInactiveProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete cart items for inactive products")
	}
	result.RemovedInactive = removed

	items, err := srv.cartRepo.ListItemsWithProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	for _, item := range items {
		if item.Product == nil {
			continue
		}

		stock := item.Product.Stock
		switch {
		case stock <= 0:
			if err := srv.cartRepo.DeleteItem(ctx, item.ID); err != nil {
				srv.log(ctx).Warn("Failed to delete sold out cart item", slog.String("itemID", item.ID.String()), slog.Any("error", err))

				continue
			}
			result.RemovedNoStock++
		case stock < item.Quantity:
			if err := srv.cartRepo.UpdateItemQuantity(ctx, item.ID, stock); err != nil {
				srv.log(ctx).Warn("Failed to clamp cart item quantity", slog.String("itemID", item.ID.String()), slog.Any("error", err))

				continue
			}
			result.Clamped++
		}
	}

	srv.log(ctx).Info("Cart sweep completed",
		slog.Int64("removedInactive", result.RemovedInactive),
		slog.Int("removedNoStock", result.RemovedNoStock),
		slog.Int("clamped", result.Clamped),
	)

	return result, nil
}

// findLine returns the cart line for a product, mapping a missing cart or line to a not found error.
func (srv *cartService) findLine(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, domainerrors.ErrCartItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	for _, item := range cart.Items {
		if item.ProductID == productID {
			return item, nil
		}
	}

	return nil, domainerrors.ErrCartItemNotFound
}

// currentProducts loads the live state of the products referenced by items.
func (srv *cartService) currentProducts(ctx context.Context, items []*entity.CartItem) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart products")
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	return byID, nil
}

func (srv *cartService) reload(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload cart")
	}

	return newCartView(cart), nil
}

func newCartView(cart *entity.Cart) *usecase.CartView {
	if cart.Items == nil {
		cart.Items = []*entity.CartItem{}
	}

	return &usecase.CartView{Cart: cart, Totals: calculateTotals(cart)}
}

// calculateTotals sums locked prices. A nil cart yields zero totals.
func calculateTotals(cart *entity.Cart) *entity.CartTotals {
	totals := &entity.CartTotals{Items: []*entity.CartItem{}}
	if cart.IsEmpty() {
		return totals
	}

	for _, item := range cart.Items {
		totals.Subtotal += item.LineTotal()
		totals.ItemCount += item.Quantity
	}
	totals.Items = cart.Items

	return totals
}
