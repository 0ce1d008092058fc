package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateOrderQR generates a QR code that identifies an order by its number
	GenerateOrderQR(orderNumber string) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the order number
	ParseOrderQR(qrData string) (string, error)
}
