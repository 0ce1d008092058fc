package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table. ParentID forms a tree.
type CategoryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(120);not null"`
	Slug        string         `gorm:"type:varchar(120);uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	Image       string         `gorm:"type:text"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	Parent      *CategoryModel `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
	IsActive    bool           `gorm:"not null"`
	SortOrder   int            `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// CategoryWithCount is a category row joined with its active product count.
type CategoryWithCount struct {
	CategoryModel
	ProductCount int64
}
