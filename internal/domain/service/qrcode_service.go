package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for follow QR code generation and parsing
type QRCodeService interface {
	// GenerateFollowQR returns a PNG that encodes a follow link for userID
	GenerateFollowQR(userID uuid.UUID) ([]byte, error)

	// ParseFollowQR parses the encoded link and returns the user ID
	ParseFollowQR(qrData string) (uuid.UUID, error)
}
