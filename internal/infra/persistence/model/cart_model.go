package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel mirrors the 'carts' table. A user has at most one cart.
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	User      *UserModel      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel mirrors the 'cart_items' table. Price is the locked unit price.
type CartItemModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CartID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product;index"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int           `gorm:"not null;check:chk_cart_items_quantity,quantity >= 1"`
	Price     int64         `gorm:"not null"`
	Color     string        `gorm:"type:varchar(64)"`
	Size      string        `gorm:"type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
