// Package model holds the GORM persistence structs. They mirror the tables and are
// mapped to domain entities by the postgres repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	Email      string    `gorm:"type:varchar(255);index"`
	Name       string    `gorm:"type:varchar(120)"`
	Phone      string    `gorm:"type:varchar(32)"`
	Role       string    `gorm:"type:varchar(20);not null;default:USER"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
