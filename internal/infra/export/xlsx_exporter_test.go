package export

import (
	"bytes"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestXLSXExporter_Export(t *testing.T) {
	comparePrice := int64(7999)
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	products := []*entity.Product{
		{
			ID:           uuid.New(),
			Name:         "Banarasi Silk",
			Slug:         "banarasi-silk",
			CategoryID:   uuid.New(),
			Price:        5999,
			ComparePrice: &comparePrice,
			Stock:        12,
			IsActive:     true,
			Colors:       []string{"red", "gold"},
			Sizes:        []string{"free"},
			Rating:       4.5,
			ReviewCount:  8,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		{
			ID:    uuid.New(),
			Name:  "Cotton Handloom",
			Slug:  "cotton-handloom",
			Price: 1999,
		},
	}

	exporter := NewXLSXExporter()
	assert.Equal(t, xlsxContentType, exporter.ContentType())

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet, ok := file.Sheet[sheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0].Cells
	require.Len(t, header, len(headers))
	assert.Equal(t, "ID", header[0].String())
	assert.Equal(t, "UpdatedAt", header[len(header)-1].String())

	first := sheet.Rows[1].Cells
	assert.Equal(t, products[0].ID.String(), first[0].String())
	assert.Equal(t, "Banarasi Silk", first[1].String())
	assert.Equal(t, "5999", first[4].String())
	assert.Equal(t, "7999", first[5].String())
	assert.Equal(t, "red,gold", first[9].String())
	assert.Equal(t, "2026-02-01 09:30:00", first[14].String())

	second := sheet.Rows[2].Cells
	assert.Equal(t, "Cotton Handloom", second[1].String())
	assert.Equal(t, "", second[5].String())
}

func TestXLSXExporter_EmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Export(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheet[sheetName].Rows, 1)
}
