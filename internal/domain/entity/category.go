package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node of the catalog tree. Roots have a nil ParentID.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	SortOrder    int        `json:"sort_order"`
	ProductCount int64      `json:"product_count"` // Active products linked to the category; filled by listings only.
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
