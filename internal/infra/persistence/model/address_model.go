package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	User       *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FullName   string     `gorm:"type:varchar(120);not null"`
	Phone      string     `gorm:"type:varchar(32);not null"`
	Email      string     `gorm:"type:varchar(255)"`
	Line1      string     `gorm:"type:varchar(255);not null"`
	Line2      string     `gorm:"type:varchar(255)"`
	City       string     `gorm:"type:varchar(120);not null"`
	State      string     `gorm:"type:varchar(120);not null"`
	PostalCode string     `gorm:"type:varchar(20);not null"`
	Country    string     `gorm:"type:varchar(80);not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
