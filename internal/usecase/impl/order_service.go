package impl

import (
	"context"
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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultOrderNumberAttempts = 5

// ErrOrderNumberExhausted is returned when every generated order number was already taken
var ErrOrderNumberExhausted = errors.New("no unique order number available")

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	qrcode    service.QRCodeService
	publisher service.EventPublisher
	numbers   service.OrderNumberGenerator
	checkout  config.CheckoutConfig
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	QRCodeService  service.QRCodeService
	EventPublisher service.EventPublisher
	OrderNumbers   service.OrderNumberGenerator
	Config         *config.Config
	Logger         *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	var checkout config.CheckoutConfig
	if params.Config != nil && params.Config.Checkout != nil {
		checkout = *params.Config.Checkout
	}
	if checkout.OrderNumberAttempts <= 0 {
		checkout.OrderNumberAttempts = defaultOrderNumberAttempts
	}

	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		qrcode:    params.QRCodeService,
		publisher: params.EventPublisher,
		numbers:   params.OrderNumbers,
		checkout:  checkout,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// orderLine is a resolved line before its product is locked in.
type orderLine struct {
	productID   uuid.UUID
	quantity    int
	color       string
	size        string
	lockedPrice *int64 // Set for cart checkouts; buy-now lines use the live price.
}

// PlaceOrder creates the address, the order and its items, and decrements
// stock in a single transaction. The event is published after commit.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.UseCart && input.UserID == nil {
		return nil, domainerrors.ErrUnauthorized.WithDetails("checking out a cart requires sign-in")
	}
	if !input.UseCart && len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("order has no items")
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lines, cartID, err := srv.resolveLines(ctx, repoFactory.CartRepo(), input)
		if err != nil {
			return err
		}

		address := newAddress(input)
		if err := repoFactory.AddressRepo().Create(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		orderNumber, err := srv.uniqueOrderNumber(ctx, repoFactory.OrderRepo())
		if err != nil {
			return err
		}

		items, err := srv.reserveStock(ctx, repoFactory.ProductRepo(), lines)
		if err != nil {
			return err
		}

		order = &entity.Order{
			ID:            uuid.New(),
			OrderNumber:   orderNumber,
			UserID:        input.UserID,
			AddressID:     address.ID,
			Address:       address,
			Status:        entity.OrderStatusPending,
			PaymentStatus: entity.PaymentStatusPending,
			PaymentMethod: entity.PaymentMethodCOD,
			Notes:         input.Notes,
			Items:         items,
		}
		srv.applyTotals(order)

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if cartID != uuid.Nil {
			if err := repoFactory.CartRepo().ClearItems(ctx, cartID); err != nil {
				return errors.Wrap(err, "failed to clear cart")
			}
		}

		return nil
	})
	if err != nil {
		return nil, srv.placeOrderError(ctx, err)
	}

	srv.log(ctx).Info("Order placed",
		slog.String("orderID", order.ID.String()),
		slog.String("orderNumber", order.OrderNumber),
		slog.Int64("total", order.Total),
		slog.Bool("guest", order.UserID == nil),
	)

	srv.publishOrderPlaced(ctx, order)

	return order, nil
}

// resolveLines returns the lines to order and, for cart checkouts, the cart to clear.
func (srv *orderService) resolveLines(ctx context.Context, cartRepo repository.CartRepository, input *usecase.PlaceOrderInput) ([]orderLine, uuid.UUID, error) {
	if !input.UseCart {
		lines := make([]orderLine, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity < 1 {
				return nil, uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
			}
			lines = append(lines, orderLine{
				productID: item.ProductID,
				quantity:  item.Quantity,
				color:     item.Color,
				size:      item.Size,
			})
		}

		return lines, uuid.Nil, nil
	}

	cart, err := cartRepo.FindByUserID(ctx, *input.UserID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, uuid.Nil, errors.Wrap(err, "failed to find cart")
	}
	if cart.IsEmpty() {
		return nil, uuid.Nil, domainerrors.ErrCartEmpty
	}

	lines := make([]orderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		price := item.Price
		lines = append(lines, orderLine{
			productID:   item.ProductID,
			quantity:    item.Quantity,
			color:       item.Color,
			size:        item.Size,
			lockedPrice: &price,
		})
	}

	return lines, cart.ID, nil
}

// reserveStock decrements stock for every line and snapshots the products into order items.
func (srv *orderService) reserveStock(ctx context.Context, productRepo repository.ProductRepository, lines []orderLine) ([]*entity.OrderItem, error) {
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := productRepo.FindByID(ctx, line.productID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find product")
		}

		if !product.IsActive {
			return nil, domainerrors.ErrProductUnavailable.WithMessage(unavailableMessage(product))
		}

		err = productRepo.DecrementStock(ctx, product.ID, line.quantity)
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, domainerrors.ErrInsufficientStock.WithMessage(insufficientStockMessage(product))
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to decrement stock")
		}

		price := product.Price
		if line.lockedPrice != nil {
			price = *line.lockedPrice
		}

		items = append(items, &entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       price,
			Quantity:    line.quantity,
			Attributes:  entity.VariantAttributes(line.color, line.size),
		})
	}

	return items, nil
}

// uniqueOrderNumber draws order numbers until one is unused.
func (srv *orderService) uniqueOrderNumber(ctx context.Context, orderRepo repository.OrderRepository) (string, error) {
	for attempt := 1; attempt <= srv.checkout.OrderNumberAttempts; attempt++ {
		candidate := srv.numbers.Next()

		exists, err := orderRepo.ExistsByOrderNumber(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "failed to check order number")
		}
		if !exists {
			return candidate, nil
		}

		srv.log(ctx).Warn("Order number collision", slog.String("orderNumber", candidate), slog.Int("attempt", attempt))
	}

	return "", ErrOrderNumberExhausted
}

// applyTotals fills the money fields from the items and the checkout settings.
func (srv *orderService) applyTotals(order *entity.Order) {
	var subtotal int64
	for _, item := range order.Items {
		subtotal += item.Price * int64(item.Quantity)
	}

	shipping := srv.checkout.ShippingFee
	if srv.checkout.FreeShippingThreshold > 0 && subtotal >= srv.checkout.FreeShippingThreshold {
		shipping = 0
	}

	order.Subtotal = subtotal
	order.Tax = subtotal * srv.checkout.TaxRateBasisPoints / 10000
	order.Shipping = shipping
	order.Total = order.Subtotal + order.Tax + order.Shipping - order.Discount
}

// placeOrderError maps a failed order transaction to the error returned to the client.
func (srv *orderService) placeOrderError(ctx context.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		return appErr
	}

	if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidReference) {
		srv.log(ctx).Warn("Order references an invalid product", slog.Any("error", err))

		return domainerrors.ErrOrderInvalidProduct
	}

	srv.log(ctx).Error("Failed to place order", slog.Any("error", err))

	return domainerrors.ErrOrderCreationFailed
}

func (srv *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	event := &service.OrderPlacedEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		ItemCount:   len(order.Items),
		PlacedAt:    time.Now().UTC(),
	}
	if order.UserID != nil {
		event.UserID = order.UserID.String()
	}

	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order placed event", slog.String("orderNumber", order.OrderNumber), slog.Any("error", err))
	}
}

func newAddress(input *usecase.PlaceOrderInput) *entity.Address {
	shipping := input.Shipping

	return &entity.Address{
		UserID:     input.UserID,
		FullName:   shipping.FullName,
		Phone:      shipping.Phone,
		Email:      shipping.Email,
		Line1:      shipping.Line1,
		Line2:      shipping.Line2,
		City:       shipping.City,
		State:      shipping.State,
		PostalCode: shipping.PostalCode,
		Country:    shipping.Country,
	}
}

// GetOrder retrieves an order with its items
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListOrders lists orders newest first, capped at the admin listing limit
func (srv *orderService) ListOrders(ctx context.Context, filter *usecase.OrderListFilter) ([]*entity.Order, error) {
	repoFilter := repository.OrderFilter{Limit: clampOrderLimit(filter.Limit)}

	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
		}
		repoFilter.Status = filter.Status
	}
	if filter.PaymentStatus != nil {
		if !filter.PaymentStatus.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment status")
		}
		repoFilter.PaymentStatus = filter.PaymentStatus
	}

	orders, err := srv.orderRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListMyOrders lists the caller's own orders
func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx, repository.OrderFilter{UserID: &userID, Limit: constants.MaxOrderListLimit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

// UpdateOrderStatus applies a status, payment status or tracking number change
func (srv *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if input.Status == nil && input.PaymentStatus == nil && input.TrackingNumber == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("nothing to update")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment status")
	}

	err := srv.orderRepo.UpdateStatus(ctx, orderID, repository.OrderStatusUpdate{
		Status:         input.Status,
		PaymentStatus:  input.PaymentStatus,
		TrackingNumber: input.TrackingNumber,
	})
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order updated", slog.String("orderID", orderID.String()))

	return srv.GetOrder(ctx, orderID)
}

// OrderQRCode renders the order number for packing slips
func (srv *orderService) OrderQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateOrderQR(order.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

func clampOrderLimit(limit int) int {
	if limit <= 0 || limit > constants.MaxOrderListLimit {
		return constants.MaxOrderListLimit
	}

	return limit
}
