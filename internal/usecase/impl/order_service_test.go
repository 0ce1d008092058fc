package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
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

type orderServiceFixtures struct {
	service     usecase.OrderUsecase
	txManager   *mockRepo.MockTransactionManager
	orderRepo   *mockRepo.MockOrderRepository
	qrcode      *mockSvc.MockQRCodeService
	publisher   *mockSvc.MockEventPublisher
	numbers     *mockSvc.MockOrderNumberGenerator
	factory     *mockRepo.MockRepositoryFactory
	txProducts  *mockRepo.MockProductRepository
	txOrders    *mockRepo.MockOrderRepository
	txAddresses *mockRepo.MockAddressRepository
	txCarts     *mockRepo.MockCartRepository
}

func createTestOrderService(t *testing.T, checkout *config.CheckoutConfig) orderServiceFixtures {
	if checkout == nil {
		checkout = &config.CheckoutConfig{}
	}

	f := orderServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		orderRepo:   mockRepo.NewMockOrderRepository(t),
		qrcode:      mockSvc.NewMockQRCodeService(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
		numbers:     mockSvc.NewMockOrderNumberGenerator(t),
		factory:     mockRepo.NewMockRepositoryFactory(t),
		txProducts:  mockRepo.NewMockProductRepository(t),
		txOrders:    mockRepo.NewMockOrderRepository(t),
		txAddresses: mockRepo.NewMockAddressRepository(t),
		txCarts:     mockRepo.NewMockCartRepository(t),
	}

	f.service = NewOrderService(OrderServiceParams{
		TxManager:      f.txManager,
		OrderRepo:      f.orderRepo,
		QRCodeService:  f.qrcode,
		EventPublisher: f.publisher,
		OrderNumbers:   f.numbers,
		Config:         &config.Config{Checkout: checkout},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	f.factory.EXPECT().ProductRepo().Return(f.txProducts).Maybe()
	f.factory.EXPECT().OrderRepo().Return(f.txOrders).Maybe()
	f.factory.EXPECT().AddressRepo().Return(f.txAddresses).Maybe()
	f.factory.EXPECT().CartRepo().Return(f.txCarts).Maybe()
	runInTx(f.txManager, f.factory)

	return f
}

func guestShipping() usecase.ShippingInput {
	return usecase.ShippingInput{
		FullName:   "Priya Sharma",
		Phone:      "+91 98765 43210",
		Email:      "priya@example.com",
		Line1:      "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "IN",
	}
}

func expectAddress(f orderServiceFixtures) {
	f.txAddresses.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Address")).
		Run(func(ctx context.Context, address *entity.Address) {
			address.ID = uuid.New()
		}).
		Return(nil)
}

func TestOrderService_PlaceOrder_GuestBuyNow(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()

	product := newProduct("Silk Saree", 5999, 10)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD17000000001231234")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD17000000001231234").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().
		DecrementStock(ctx, product.ID, 1).
		Run(func(ctx context.Context, id uuid.UUID, quantity int) {
			product.Stock -= quantity
		}).
		Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.publisher.EXPECT().
		PublishOrderPlaced(ctx, mock.MatchedBy(func(event *service.OrderPlacedEvent) bool {
			return event.OrderNumber == "COD17000000001231234" && event.UserID == "" && event.Total == 5999
		})).
		Return(nil)

	order, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1, Color: "Maroon"}},
		Shipping: guestShipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5999), order.Total)
	assert.Equal(t, int64(5999), order.Subtotal)
	assert.Regexp(t, `^COD\d+`, order.OrderNumber)
	assert.Nil(t, order.UserID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, 9, product.Stock)
	require.Len(t, order.Items, 1)
	assert.Equal(t, []entity.OrderItemAttribute{{Key: entity.AttributeColor, Value: "Maroon"}}, order.Items[0].Attributes)
	assert.Equal(t, "Silk Saree", order.Items[0].ProductName)
	assert.NotEqual(t, uuid.Nil, order.AddressID)
}

func TestOrderService_PlaceOrder_StockRoundTrip(t *testing.T) {
	for _, tc := range []struct{ stock, quantity int }{{10, 1}, {5, 5}, {7, 3}} {
		f := createTestOrderService(t, nil)
		ctx := context.Background()
		product := newProduct("Cotton", 1000, tc.stock)

		expectAddress(f)
		f.numbers.EXPECT().Next().Return("COD1")
		f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD1").Return(false, nil)
		f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		f.txProducts.EXPECT().
			DecrementStock(ctx, product.ID, tc.quantity).
			RunAndReturn(func(ctx context.Context, id uuid.UUID, quantity int) error {
				if product.Stock < quantity {
					return repository.ErrInsufficientStock
				}
				product.Stock -= quantity

				return nil
			})
		f.txOrders.EXPECT().Create(ctx, mock.Anything).Return(nil)
		f.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(nil)

		_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
			Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: tc.quantity}},
			Shipping: guestShipping(),
		})
		require.NoError(t, err)
		assert.Equal(t, tc.stock-tc.quantity, product.Stock)
	}
}

func TestOrderService_PlaceOrder_AuthenticatedCartCheckout(t *testing.T) {
	f := createTestOrderService(t, &config.CheckoutConfig{
		TaxRateBasisPoints:    500,
		ShippingFee:           150,
		FreeShippingThreshold: 20000,
	})
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")
	userID := uuid.New()

	silk := newProduct("Silk", 7000, 5) // Live price differs from the locked price.
	cart := newCart(userID, newCartItem(silk, 2, 6000))
	cart.Items[0].Size = "free"

	f.txCarts.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD2")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD2").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, silk.ID).Return(silk, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, silk.ID, 2).Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.txCarts.EXPECT().ClearItems(ctx, cart.ID).Return(nil)
	f.publisher.EXPECT().
		PublishOrderPlaced(ctx, mock.MatchedBy(func(event *service.OrderPlacedEvent) bool {
			return event.RequestID == "req-1" && event.UserID == userID.String() && event.ItemCount == 1
		})).
		Return(nil)

	order, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		UserID:   &userID,
		UseCart:  true,
		Shipping: guestShipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12000), order.Subtotal)
	assert.Equal(t, int64(600), order.Tax)
	assert.Equal(t, int64(150), order.Shipping)
	assert.Equal(t, int64(12750), order.Total)
	assert.Equal(t, &userID, order.UserID)
	assert.Equal(t, []entity.OrderItemAttribute{{Key: entity.AttributeSize, Value: "free"}}, order.Items[0].Attributes)
}

func TestOrderService_PlaceOrder_FreeShippingThreshold(t *testing.T) {
	f := createTestOrderService(t, &config.CheckoutConfig{ShippingFee: 150, FreeShippingThreshold: 5000})
	ctx := context.Background()
	product := newProduct("Silk", 5999, 5)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD3")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD3").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, product.ID, 1).Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(nil)

	order, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Shipping: guestShipping(),
	})
	require.NoError(t, err)
	assert.Zero(t, order.Shipping)
	assert.Equal(t, int64(5999), order.Total)
}

func TestOrderService_PlaceOrder_RetriesTakenOrderNumber(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	product := newProduct("Silk", 100, 5)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD-taken").Once()
	f.numbers.EXPECT().Next().Return("COD-free").Once()
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD-taken").Return(true, nil)
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD-free").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, product.ID, 1).Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(nil)

	order, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Shipping: guestShipping(),
	})
	require.NoError(t, err)
	assert.Equal(t, "COD-free", order.OrderNumber)
}

func TestOrderService_PlaceOrder_OrderNumbersExhausted(t *testing.T) {
	f := createTestOrderService(t, &config.CheckoutConfig{OrderNumberAttempts: 2})
	ctx := context.Background()

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD-taken").Times(2)
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD-taken").Return(true, nil).Times(2)

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		Shipping: guestShipping(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrOrderCreationFailed)
}

func TestOrderService_PlaceOrder_Oversell(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	product := newProduct("Organza", 4999, 1)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD4")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD4").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, product.ID, 2).Return(repository.ErrInsufficientStock)

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		Shipping: guestShipping(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Equal(t, "Only 1 units of Organza available", err.Error())
}

func TestOrderService_PlaceOrder_ProductVanished(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	productID := uuid.New()

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD5")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD5").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: productID, Quantity: 1}},
		Shipping: guestShipping(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderInvalidProduct)
	assert.Equal(t, "Product not found or invalid data", err.Error())
}

func TestOrderService_PlaceOrder_ForeignKeyViolationOnInsert(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	product := newProduct("Silk", 100, 5)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD6")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD6").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, product.ID, 1).Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrInvalidReference)

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Shipping: guestShipping(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderInvalidProduct)
}

func TestOrderService_PlaceOrder_StorageFailureIsGeneric(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()

	f.txAddresses.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection refused"))

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		Shipping: guestShipping(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderCreationFailed)
	assert.Equal(t, "Failed to create order", err.Error())
}

func TestOrderService_PlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	product := newProduct("Silk", 100, 5)

	expectAddress(f)
	f.numbers.EXPECT().Next().Return("COD7")
	f.txOrders.EXPECT().ExistsByOrderNumber(ctx, "COD7").Return(false, nil)
	f.txProducts.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	f.txProducts.EXPECT().DecrementStock(ctx, product.ID, 1).Return(nil)
	f.txOrders.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(errors.New("broker down"))

	order, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Items:    []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Shipping: guestShipping(),
	})
	require.NoError(t, err)
	assert.Equal(t, "COD7", order.OrderNumber)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	f := createTestOrderService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	f.txCarts.EXPECT().FindByUserID(ctx, userID).Return(nil, repository.ErrCartNotFound)

	_, err := f.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{UserID: &userID, UseCart: true, Shipping: guestShipping()})

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_PlaceOrder_InputRules(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.PlaceOrderInput
		want  error
	}{
		{
			name:  "no items",
			input: &usecase.PlaceOrderInput{Shipping: guestShipping()},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "guest cart checkout",
			input: &usecase.PlaceOrderInput{UseCart: true, Shipping: guestShipping()},
			want:  domainerrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager := mockRepo.NewMockTransactionManager(t)
			service := NewOrderService(OrderServiceParams{
				TxManager: txManager,
				Config:    &config.Config{},
				Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
			})

			_, err := service.PlaceOrder(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrderService_ListOrders_CapsLimit(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	service := NewOrderService(OrderServiceParams{OrderRepo: orderRepo, Logger: slog.Default()})
	ctx := context.Background()
	status := entity.OrderStatusPending

	orderRepo.EXPECT().
		List(ctx, repository.OrderFilter{Status: &status, Limit: 50}).
		Return([]*entity.Order{}, nil)

	orders, err := service.ListOrders(ctx, &usecase.OrderListFilter{Status: &status, Limit: 500})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ListOrders_RejectsUnknownStatus(t *testing.T) {
	service := NewOrderService(OrderServiceParams{Logger: slog.Default()})
	status := entity.OrderStatus("LOST")

	_, err := service.ListOrders(context.Background(), &usecase.OrderListFilter{Status: &status})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	service := NewOrderService(OrderServiceParams{OrderRepo: orderRepo, Logger: slog.Default()})
	ctx := context.Background()
	orderID := uuid.New()
	shipped := entity.OrderStatusShipped
	tracking := "TRK123"

	orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, repository.OrderStatusUpdate{Status: &shipped, TrackingNumber: &tracking}).
		Return(nil)
	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, Status: shipped, TrackingNumber: tracking}, nil)

	order, err := service.UpdateOrderStatus(ctx, orderID, &usecase.UpdateOrderStatusInput{Status: &shipped, TrackingNumber: &tracking})
	require.NoError(t, err)
	assert.Equal(t, shipped, order.Status)
}

func TestOrderService_UpdateOrderStatus_NotFound(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	service := NewOrderService(OrderServiceParams{OrderRepo: orderRepo, Logger: slog.Default()})
	ctx := context.Background()
	paid := entity.PaymentStatusPaid

	orderRepo.EXPECT().UpdateStatus(ctx, mock.Anything, mock.Anything).Return(repository.ErrOrderNotFound)

	_, err := service.UpdateOrderStatus(ctx, uuid.New(), &usecase.UpdateOrderStatusInput{PaymentStatus: &paid})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_OrderQRCode(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	qr := mockSvc.NewMockQRCodeService(t)
	service := NewOrderService(OrderServiceParams{OrderRepo: orderRepo, QRCodeService: qr, Logger: slog.Default()})
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, OrderNumber: "COD9"}, nil)
	qr.EXPECT().GenerateOrderQR("COD9").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := service.OrderQRCode(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}
