// Package export renders the product catalog as an Excel workbook.
package export

import (
	"io"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

const (
	sheetName       = "Products"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout      = "2006-01-02 15:04:05"
)

//nolint:gochecknoglobals
var headers = []string{
	"ID", "Name", "Slug", "CategoryID", "Price", "ComparePrice", "Stock",
	"Active", "Featured", "Colors", "Sizes", "Rating", "Reviews", "Images",
	"CreatedAt", "UpdatedAt",
}

type xlsxExporter struct{}

// NewXLSXExporter creates a ProductExporter writing .xlsx workbooks
func NewXLSXExporter() service.ProductExporter {
	return &xlsxExporter{}
}

func (e *xlsxExporter) ContentType() string {
	return xlsxContentType
}

// Export writes one header row and one row per product.
func (e *xlsxExporter) Export(w io.Writer, products []*entity.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "failed to create sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.CategoryID.String())
		row.AddCell().SetInt64(p.Price)
		comparePrice := row.AddCell()
		if p.ComparePrice != nil {
			comparePrice.SetInt64(*p.ComparePrice)
		}
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetBool(p.IsActive)
		row.AddCell().SetBool(p.IsFeatured)
		row.AddCell().SetString(strings.Join(p.Colors, ","))
		row.AddCell().SetString(strings.Join(p.Sizes, ","))
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.ReviewCount)
		row.AddCell().SetString(strings.Join(p.Images, "\n"))
		row.AddCell().SetString(p.CreatedAt.UTC().Format(timeLayout))
		row.AddCell().SetString(p.UpdatedAt.UTC().Format(timeLayout))
	}

	return errors.Wrap(file.Write(w), "failed to write workbook")
}

