package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber    string           `gorm:"type:varchar(40);uniqueIndex;not null"`
	UserID         *uuid.UUID       `gorm:"type:uuid;index"`
	User           *UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AddressID      uuid.UUID        `gorm:"type:uuid;not null"`
	Address        *AddressModel    `gorm:"foreignKey:AddressID"`
	Status         string           `gorm:"type:varchar(20);not null;default:PENDING;index"`
	PaymentStatus  string           `gorm:"type:varchar(20);not null;default:PENDING;index"`
	PaymentMethod  string           `gorm:"type:varchar(20);not null;default:COD"`
	Subtotal       int64            `gorm:"not null"`
	Tax            int64            `gorm:"not null;default:0"`
	Shipping       int64            `gorm:"not null;default:0"`
	Discount       int64            `gorm:"not null;default:0"`
	Total          int64            `gorm:"not null"`
	Notes          string           `gorm:"type:text"`
	TrackingNumber string           `gorm:"type:varchar(120)"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name and price are snapshots.
type OrderItemModel struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Product     *ProductModel             `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	ProductName string                    `gorm:"type:varchar(255);not null"`
	Price       int64                     `gorm:"not null"`
	Quantity    int                       `gorm:"not null;check:chk_order_items_quantity,quantity >= 1"`
	Attributes  []OrderItemAttributeModel `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderItemAttributeModel mirrors the 'order_item_attributes' table.
type OrderItemAttributeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Key         string    `gorm:"type:varchar(64);not null"`
	Value       string    `gorm:"type:varchar(255);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemAttributeModel) TableName() string {
	return "order_item_attributes"
}
