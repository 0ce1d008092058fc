package service

import (
	"io"

	"storefront/internal/domain/entity"
)

// ProductExporter writes the product catalog as a spreadsheet.
type ProductExporter interface {
	// ContentType is the MIME type of the written document.
	ContentType() string

	// Export writes products to w.
	Export(w io.Writer, products []*entity.Product) error
}
