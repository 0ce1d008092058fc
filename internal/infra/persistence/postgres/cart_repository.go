package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func orderCartItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id")
}

// FindByUserID retrieves the user's cart with items and their products.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	if err := repo.db.WithContext(ctx).
		Preload("Items", orderCartItems).
		Preload("Items.Product").
		First(&cartM, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user id")
	}

	return toCartDomain(&cartM), nil
}

// GetOrCreate returns the user's cart, inserting an empty one when needed.
// Concurrent first requests converge on the same row through the unique user_id index.
func (repo *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	now := time.Now()
	cartM := &model.CartModel{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(cartM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrInvalidReference
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return repo.FindByUserID(ctx, userID)
}

// FindItem retrieves the line for a product in a cart.
func (repo *cartRepository) FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	if err := repo.db.WithContext(ctx).
		First(&itemM, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return toCartItemDomain(&itemM), nil
}

// CreateItem adds a new line to a cart.
func (repo *cartRepository) CreateItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	if err := repo.db.WithContext(ctx).Omit("Product").Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCartItemExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrInvalidReference
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// UpdateItemQuantity sets the quantity of a line.
func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return repo.updateItem(ctx, itemID, map[string]any{"quantity": quantity}, "failed to update cart item quantity")
}

// UpdateItemPrice sets the locked price of a line.
func (repo *cartRepository) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price int64) error {
	return repo.updateItem(ctx, itemID, map[string]any{"price": price}, "failed to update cart item price")
}

func (repo *cartRepository) updateItem(ctx context.Context, itemID uuid.UUID, values map[string]any, details string) error {
	values["updated_at"] = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", itemID).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, details)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// DeleteItem removes a line.
func (repo *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CartItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// ClearItems removes every line of a cart.
func (repo *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.CartItemModel{}, "cart_id = ?", cartID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

// DeleteItemsForInactiveProducts removes every line pointing at an inactive product.
func (repo *cartRepository) DeleteItemsForInactiveProducts(ctx context.Context) (int64, error) {
	inactive := repo.db.Model(&model.ProductModel{}).Select("id").Where("is_active = ?", false)

	result := repo.db.WithContext(ctx).
		Where("product_id IN (?)", inactive).
		Delete(&model.CartItemModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete inactive cart items")
	}

	return result.RowsAffected, nil
}

// ListItemsWithProducts returns every cart line with its product.
func (repo *cartRepository) ListItemsWithProducts(ctx context.Context) ([]*entity.CartItem, error) {
	var itemModels []*model.CartItemModel
	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Order("created_at ASC, id").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	items := make([]*entity.CartItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toCartItemDomain(itemM))
	}

	return items, nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toCartItemDomain(&data.Items[i]))
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Price:     data.Price,
		Color:     data.Color,
		Size:      data.Size,
		Product:   toProductDomain(data.Product),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	if data == nil {
		return nil
	}

	return &model.CartItemModel{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Price:     data.Price,
		Color:     data.Color,
		Size:      data.Size,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
