package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// AddressRepository defines the interface for shipping address persistence.
type AddressRepository interface {
	// Create persists a new address and fills its generated fields.
	Create(ctx context.Context, address *entity.Address) error
}
