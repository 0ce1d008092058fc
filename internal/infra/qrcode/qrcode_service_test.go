package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrderNumber = "COD17000000000001234"

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(256, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateOrderQR(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		service := NewQRCodeService(size, "M")

		qrBytes, err := service.GenerateOrderQR(testOrderNumber)
		require.NoError(t, err)
		require.Greater(t, len(qrBytes), 4)

		// PNG magic number
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
	}
}

func TestQRCodeService_ParseOrderQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	encode := func(data QRCodeData) string {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err)

		return string(jsonData)
	}

	tests := []struct {
		name    string
		qrData  string
		want    string
		wantErr string
	}{
		{
			name:   "valid",
			qrData: encode(QRCodeData{OrderNumber: testOrderNumber, Type: orderQRType}),
			want:   testOrderNumber,
		},
		{
			name:    "invalid json",
			qrData:  "invalid json",
			wantErr: "failed to unmarshal QR code data",
		},
		{
			name:    "invalid type",
			qrData:  encode(QRCodeData{OrderNumber: testOrderNumber, Type: "subscription"}),
			wantErr: "invalid QR code type",
		},
		{
			name:    "invalid order number",
			qrData:  encode(QRCodeData{OrderNumber: "ORD-1", Type: orderQRType}),
			wantErr: "invalid order number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseOrderQR(tt.qrData)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
