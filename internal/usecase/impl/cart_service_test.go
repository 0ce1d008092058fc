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
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartServiceFixtures struct {
	service     usecase.CartUsecase
	txManager   *mockRepo.MockTransactionManager
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewCartService(CartServiceParams{
		TxManager:   txManager,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return cartServiceFixtures{
		service:     service,
		txManager:   txManager,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// runInTx makes the transaction manager run fn against factory and return its error.
func runInTx(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func newProduct(name string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Name:     name,
		Slug:     name,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
}

func newCart(userID uuid.UUID, items ...*entity.CartItem) *entity.Cart {
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	for _, item := range items {
		item.CartID = cart.ID
	}
	cart.Items = items

	return cart
}

func newCartItem(product *entity.Product, quantity int, price int64) *entity.CartItem {
	return &entity.CartItem{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     price,
		Product:   product,
	}
}

func TestCartService_ValidateCart_AllItemsAvailable(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	silk := newProduct("Silk Saree", 5999, 10)
	cotton := newProduct("Cotton Saree", 1999, 3)
	cart := newCart(userID, newCartItem(silk, 2, 5999), newCartItem(cotton, 3, 1999))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{silk.ID, cotton.ID}).Return([]*entity.Product{silk, cotton}, nil)

	result := fx.service.ValidateCart(ctx, userID)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.UnavailableItems)
	assert.Empty(t, result.InsufficientStockItems)
}

func TestCartService_ValidateCart_InsufficientStock(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	product := newProduct("Kanjivaram", 12999, 2)
	cart := newCart(userID, newCartItem(product, 5, 12999))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID}).Return([]*entity.Product{product}, nil)

	result := fx.service.ValidateCart(ctx, userID)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Only 2 units of Kanjivaram available")
	require.Len(t, result.InsufficientStockItems, 1)
	assert.Equal(t, entity.InsufficientStockItem{ProductID: product.ID, Requested: 5, Available: 2}, result.InsufficientStockItems[0])
}

func TestCartService_ValidateCart_InactiveProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	product := newProduct("Chiffon", 2999, 10)
	product.IsActive = false
	cart := newCart(userID, newCartItem(product, 1, 2999))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID}).Return([]*entity.Product{product}, nil)

	result := fx.service.ValidateCart(ctx, userID)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Chiffon is no longer available"}, result.Errors)
	assert.Equal(t, []string{"Chiffon"}, result.UnavailableItems)
	assert.Empty(t, result.InsufficientStockItems)
}

func TestCartService_ValidateCart_OneBadItemInvalidatesCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	good := newProduct("Georgette", 3999, 10)
	bad := newProduct("Organza", 4999, 0)
	cart := newCart(userID, newCartItem(good, 1, 3999), newCartItem(bad, 1, 4999))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{good.ID, bad.ID}).Return([]*entity.Product{good, bad}, nil)

	result := fx.service.ValidateCart(ctx, userID)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Only 0 units of Organza available"}, result.Errors)
}

func TestCartService_ValidateCart_EmptyCart(t *testing.T) {
	tests := []struct {
		name    string
		cart    *entity.Cart
		findErr error
	}{
		{name: "no cart", cart: nil, findErr: repository.ErrCartNotFound},
		{name: "zero items", cart: &entity.Cart{ID: uuid.New()}, findErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCartService(t)
			ctx := context.Background()
			userID := uuid.New()

			fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(tt.cart, tt.findErr)

			result := fx.service.ValidateCart(ctx, userID)

			assert.False(t, result.IsValid)
			assert.Equal(t, []string{"Cart is empty"}, result.Errors)
		})
	}
}

func TestCartService_ValidateCart_StorageFailure(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(nil, errors.New("connection reset"))

	result := fx.service.ValidateCart(ctx, userID)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Failed to validate cart"}, result.Errors)
}

func TestCartService_CalculateCartTotals_OrderIndependent(t *testing.T) {
	userID := uuid.New()
	a := newCartItem(newProduct("A", 0, 10), 2, 1500)
	b := newCartItem(newProduct("B", 0, 10), 1, 5999)
	c := newCartItem(newProduct("C", 0, 10), 4, 250)

	orders := [][]*entity.CartItem{
		{a, b, c},
		{c, b, a},
		{b, a, c},
	}

	for _, items := range orders {
		fx := createTestCartService(t)
		ctx := context.Background()

		fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(&entity.Cart{ID: uuid.New(), UserID: userID, Items: items}, nil)

		totals := fx.service.CalculateCartTotals(ctx, userID)

		assert.Equal(t, int64(2*1500+5999+4*250), totals.Subtotal)
		assert.Equal(t, 7, totals.ItemCount)
		assert.Len(t, totals.Items, 3)
	}
}

func TestCartService_CalculateCartTotals_UsesLockedPrice(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	product := newProduct("Silk", 7000, 10)
	cart := newCart(userID, newCartItem(product, 2, 5000))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)

	totals := fx.service.CalculateCartTotals(ctx, userID)

	assert.Equal(t, int64(10000), totals.Subtotal)
}

func TestCartService_CalculateCartTotals_ZeroWhenMissing(t *testing.T) {
	for _, findErr := range []error{repository.ErrCartNotFound, errors.New("db down")} {
		fx := createTestCartService(t)
		ctx := context.Background()
		userID := uuid.New()

		fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(nil, findErr)

		totals := fx.service.CalculateCartTotals(ctx, userID)

		require.NotNil(t, totals)
		assert.Zero(t, totals.Subtotal)
		assert.Zero(t, totals.ItemCount)
		assert.Empty(t, totals.Items)
	}
}

func TestCartService_UpdateCartItemPrices_Idempotent(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	repriced := newProduct("Banarasi", 8999, 5)
	unchanged := newProduct("Tussar", 4999, 5)
	staleItem := newCartItem(repriced, 1, 9999)
	cart := newCart(userID, staleItem, newCartItem(unchanged, 1, 4999))

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil).Twice()
	fx.productRepo.EXPECT().FindByIDs(ctx, mock.Anything).Return([]*entity.Product{repriced, unchanged}, nil).Twice()
	fx.cartRepo.EXPECT().UpdateItemPrice(ctx, staleItem.ID, int64(8999)).Return(nil).Once()

	require.NoError(t, fx.service.UpdateCartItemPrices(ctx, userID))
	assert.Equal(t, int64(8999), staleItem.Price)

	// Second pass sees matching prices and writes nothing.
	require.NoError(t, fx.service.UpdateCartItemPrices(ctx, userID))
}

func TestCartService_UpdateCartItemPrices_NoCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(nil, repository.ErrCartNotFound)

	assert.NoError(t, fx.service.UpdateCartItemPrices(ctx, userID))
}

func TestCartService_ClearExpiredCartItems(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	soldOut := newCartItem(newProduct("Sold Out", 1000, 0), 1, 1000)
	short := newCartItem(newProduct("Short", 1000, 2), 5, 1000)
	plenty := newCartItem(newProduct("Plenty", 1000, 50), 3, 1000)

	fx.cartRepo.EXPECT().DeleteItemsForInactiveProducts(ctx).Return(int64(4), nil)
	fx.cartRepo.EXPECT().ListItemsWithProducts(ctx).Return([]*entity.CartItem{soldOut, short, plenty}, nil)
	fx.cartRepo.EXPECT().DeleteItem(ctx, soldOut.ID).Return(nil)
	fx.cartRepo.EXPECT().UpdateItemQuantity(ctx, short.ID, 2).Return(nil)

	result, err := fx.service.ClearExpiredCartItems(ctx)
	require.NoError(t, err)

	assert.Equal(t, &entity.SweepResult{RemovedInactive: 4, RemovedNoStock: 1, Clamped: 1}, result)
}

func TestCartService_ClearExpiredCartItems_ContinuesAfterItemFailure(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	first := newCartItem(newProduct("First", 1000, 0), 1, 1000)
	second := newCartItem(newProduct("Second", 1000, 0), 1, 1000)

	fx.cartRepo.EXPECT().DeleteItemsForInactiveProducts(ctx).Return(int64(0), nil)
	fx.cartRepo.EXPECT().ListItemsWithProducts(ctx).Return([]*entity.CartItem{first, second}, nil)
	fx.cartRepo.EXPECT().DeleteItem(ctx, first.ID).Return(errors.New("deadlock"))
	fx.cartRepo.EXPECT().DeleteItem(ctx, second.ID).Return(nil)

	result, err := fx.service.ClearExpiredCartItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RemovedNoStock)
}

func TestCartService_ClearExpiredCartItems_BulkDeleteFails(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()

	fx.cartRepo.EXPECT().DeleteItemsForInactiveProducts(ctx).Return(int64(0), errors.New("db down"))

	_, err := fx.service.ClearExpiredCartItems(ctx)
	assert.Error(t, err)
}

func TestCartService_AddItem_NewItemLocksPrice(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 10)
	cart := newCart(userID)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().CartRepo().Return(txCartRepo)
	runInTx(fx.txManager, factory)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	txCartRepo.EXPECT().GetOrCreate(ctx, userID).Return(cart, nil)
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartItemNotFound)
	txCartRepo.EXPECT().
		CreateItem(ctx, mock.MatchedBy(func(item *entity.CartItem) bool {
			return item.Price == 5999 && item.Quantity == 2 && item.Color == "red" && item.CartID == cart.ID
		})).
		Return(nil)

	reloaded := newCart(userID, newCartItem(product, 2, 5999))
	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(reloaded, nil)

	view, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 2, Color: "red"})
	require.NoError(t, err)
	assert.Equal(t, int64(11998), view.Totals.Subtotal)
	assert.Equal(t, 2, view.Totals.ItemCount)
}

func TestCartService_AddItem_ConcurrentFirstAddMergesIntoWinner(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 10)
	cart := newCart(userID)
	winner := newCartItem(product, 1, 5999)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().CartRepo().Return(txCartRepo)
	runInTx(fx.txManager, factory)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil).Once()
	txCartRepo.EXPECT().GetOrCreate(ctx, userID).Return(cart, nil).Times(2)
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartItemNotFound).Once()
	txCartRepo.EXPECT().CreateItem(ctx, mock.Anything).Return(repository.ErrCartItemExists).Once()
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(winner, nil).Once()
	txCartRepo.EXPECT().UpdateItemQuantity(ctx, winner.ID, 3).Return(nil).Once()

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(newCart(userID, newCartItem(product, 3, 5999)), nil)

	view, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, view.Totals.ItemCount)
	fx.txManager.AssertNumberOfCalls(t, "Execute", 2)
}

func TestCartService_AddItem_GivesUpAfterRepeatedConflicts(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 10)
	cart := newCart(userID)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().CartRepo().Return(txCartRepo)
	runInTx(fx.txManager, factory)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	txCartRepo.EXPECT().GetOrCreate(ctx, userID).Return(cart, nil)
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartItemNotFound)
	txCartRepo.EXPECT().CreateItem(ctx, mock.Anything).Return(repository.ErrCartItemExists)

	_, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 1})

	assert.ErrorIs(t, err, repository.ErrCartItemExists)
	fx.txManager.AssertNumberOfCalls(t, "Execute", maxAddItemAttempts)
}

func TestCartService_AddItem_MergeExceedsStock(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 3)
	existing := newCartItem(product, 2, 5999)
	cart := newCart(userID, existing)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().CartRepo().Return(txCartRepo)
	runInTx(fx.txManager, factory)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	txCartRepo.EXPECT().GetOrCreate(ctx, userID).Return(cart, nil)
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(existing, nil)

	_, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Equal(t, "Only 3 units of Silk available", err.Error())
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Retired", 5999, 3)
	product.IsActive = false
	cart := newCart(userID)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().CartRepo().Return(txCartRepo)
	runInTx(fx.txManager, factory)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	txCartRepo.EXPECT().GetOrCreate(ctx, userID).Return(cart, nil)
	txCartRepo.EXPECT().FindItem(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartItemNotFound)

	_, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 1})

	assert.ErrorIs(t, err, domainerrors.ErrProductUnavailable)
	assert.Equal(t, "Retired is no longer available", err.Error())
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.AddItem(ctx, uuid.New(), &usecase.CartItemInput{ProductID: productID, Quantity: 1})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_RejectsZeroQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddItem(context.Background(), uuid.New(), &usecase.CartItemInput{ProductID: uuid.New(), Quantity: 0})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateItem_ZeroRemovesLine(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 3)
	item := newCartItem(product, 2, 5999)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(newCart(userID, item), nil).Once()
	fx.cartRepo.EXPECT().DeleteItem(ctx, item.ID).Return(nil)
	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(newCart(userID), nil).Once()

	view, err := fx.service.UpdateItem(ctx, userID, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Items)
	assert.Zero(t, view.Totals.Subtotal)
}

func TestCartService_UpdateItem_OverStock(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := newProduct("Silk", 5999, 3)
	item := newCartItem(product, 2, 5999)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(newCart(userID, item), nil)

	_, err := fx.service.UpdateItem(ctx, userID, product.ID, 4)

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestCartService_RemoveItem_NotInCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(newCart(userID), nil)

	_, err := fx.service.RemoveItem(ctx, userID, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := newCart(userID)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().ClearItems(ctx, cart.ID).Return(nil)

	assert.NoError(t, fx.service.ClearCart(ctx, userID))
}

func TestCartService_ClearCart_NoCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(nil, repository.ErrCartNotFound)

	assert.NoError(t, fx.service.ClearCart(ctx, userID))
}

func TestCartService_GetCart_CreatesCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().GetOrCreate(ctx, userID).Return(&entity.Cart{ID: uuid.New(), UserID: userID}, nil)

	view, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, view.Cart.Items)
	assert.Zero(t, view.Totals.ItemCount)
}
