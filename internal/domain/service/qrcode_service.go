package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateVendorQR renders a PNG QR code that links to the vendor's profile.
	GenerateVendorQR(vendorID uuid.UUID) ([]byte, error)

	// ParseVendorQR extracts the vendor ID from scanned QR code text.
	ParseVendorQR(qrData string) (uuid.UUID, error)
}
