package service

import "github.com/google/uuid"

// QRCodeService generates and parses member badge QR codes. The badge is
// what the door scanner reads for the "QR" check-in method.
type QRCodeService interface {
	// GenerateBadge renders a member's badge as a PNG image.
	GenerateBadge(memberID uuid.UUID) ([]byte, error)

	// ParseBadge extracts the member id from scanned badge data.
	ParseBadge(qrData string) (uuid.UUID, error)
}
