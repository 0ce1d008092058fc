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
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("product_name ASC, id") }).
		Preload("Items.Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("key ASC") })
}

// Create persists an order with its items and their attributes in one call.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return repository.ErrOrderNumberTaken
		case isForeignKeyConstraintViolation(err):
			return repository.ErrInvalidReference
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
		}
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// ExistsByOrderNumber reports whether an order number is already used.
func (repo *orderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check order number")
	}

	return count > 0, nil
}

// FindByID retrieves an order with its address, items and attributes.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).
		Scopes(preloadOrderDetails).
		First(&orderM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// List returns orders matching the filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Scopes(preloadOrderDetails)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", string(*filter.PaymentStatus))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orderModels []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus applies the non-nil fields of update.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, update repository.OrderStatusUpdate) error {
	values := map[string]any{"updated_at": time.Now()}
	if update.Status != nil {
		values["status"] = string(*update.Status)
	}
	if update.PaymentStatus != nil {
		values["payment_status"] = string(*update.PaymentStatus)
	}
	if update.TrackingNumber != nil {
		values["tracking_number"] = *update.TrackingNumber
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		itemM := &data.Items[i]

		var attrs []entity.OrderItemAttribute
		for _, attrM := range itemM.Attributes {
			attrs = append(attrs, entity.OrderItemAttribute{Key: attrM.Key, Value: attrM.Value})
		}

		items = append(items, &entity.OrderItem{
			ID:          itemM.ID,
			OrderID:     itemM.OrderID,
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			Price:       itemM.Price,
			Quantity:    itemM.Quantity,
			Attributes:  attrs,
		})
	}

	return &entity.Order{
		ID:             data.ID,
		OrderNumber:    data.OrderNumber,
		UserID:         data.UserID,
		AddressID:      data.AddressID,
		Address:        toAddressDomain(data.Address),
		Status:         entity.OrderStatus(data.Status),
		PaymentStatus:  entity.PaymentStatus(data.PaymentStatus),
		PaymentMethod:  data.PaymentMethod,
		Subtotal:       data.Subtotal,
		Tax:            data.Tax,
		Shipping:       data.Shipping,
		Discount:       data.Discount,
		Total:          data.Total,
		Notes:          data.Notes,
		TrackingNumber: data.TrackingNumber,
		Items:          items,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	orderID := data.ID
	if orderID == uuid.Nil {
		orderID = uuid.New()
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		itemID := item.ID
		if itemID == uuid.Nil {
			itemID = uuid.New()
		}

		attrs := make([]model.OrderItemAttributeModel, 0, len(item.Attributes))
		for _, attr := range item.Attributes {
			attrs = append(attrs, model.OrderItemAttributeModel{
				ID:          uuid.New(),
				OrderItemID: itemID,
				Key:         attr.Key,
				Value:       attr.Value,
			})
		}

		items = append(items, model.OrderItemModel{
			ID:          itemID,
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Attributes:  attrs,
		})
	}

	return &model.OrderModel{
		ID:             orderID,
		OrderNumber:    data.OrderNumber,
		UserID:         data.UserID,
		AddressID:      data.AddressID,
		Status:         string(data.Status),
		PaymentStatus:  string(data.PaymentStatus),
		PaymentMethod:  data.PaymentMethod,
		Subtotal:       data.Subtotal,
		Tax:            data.Tax,
		Shipping:       data.Shipping,
		Discount:       data.Discount,
		Total:          data.Total,
		Notes:          data.Notes,
		TrackingNumber: data.TrackingNumber,
		Items:          items,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
