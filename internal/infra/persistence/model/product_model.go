package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Stock is guarded by a check constraint.
type ProductModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Slug         string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description  string         `gorm:"type:text"`
	Price        int64          `gorm:"not null"`
	ComparePrice *int64
	Stock        int            `gorm:"not null;default:0;check:chk_products_stock,stock >= 0"`
	IsActive     bool           `gorm:"not null;index"`
	IsFeatured   bool           `gorm:"not null;default:false"`
	CategoryID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Category     *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Images       []string       `gorm:"type:jsonb;serializer:json"`
	Colors       []string       `gorm:"type:jsonb;serializer:json"`
	Sizes        []string       `gorm:"type:jsonb;serializer:json"`
	Rating       float64        `gorm:"not null;default:0"`
	ReviewCount  int            `gorm:"not null;default:0"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
