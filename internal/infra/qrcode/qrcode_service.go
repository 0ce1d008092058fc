package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const orderQRType = "order"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData is the payload encoded in an order QR code
type QRCodeData struct {
	OrderNumber string `json:"order_number"`
	Type        string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateOrderQR renders a PNG QR code carrying the order number, for packing slips
func (s *qrcodeService) GenerateOrderQR(orderNumber string) ([]byte, error) {
	jsonData, err := json.Marshal(QRCodeData{
		OrderNumber: orderNumber,
		Type:        orderQRType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseOrderQR parses scanned QR code data and returns the order number
func (s *qrcodeService) ParseOrderQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != orderQRType {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if !strings.HasPrefix(data.OrderNumber, constants.OrderNumberPrefix) {
		return "", fmt.Errorf("invalid order number: %q", data.OrderNumber)
	}

	return data.OrderNumber, nil
}
