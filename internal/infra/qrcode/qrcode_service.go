package qrcode

import (
	"encoding/json"
	"fmt"

	"gymgate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	MemberID string `json:"member_id"`
	Type     string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
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

// GenerateBadge renders a member's badge QR code as a PNG image.
func (s *qrcodeService) GenerateBadge(memberID uuid.UUID) ([]byte, error) {
	data := QRCodeData{
		MemberID: memberID.String(),
		Type:     "member_badge",
	}

	jsonData, err := json.Marshal(data)
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

// ParseBadge parses scanned badge data and returns the member ID.
func (s *qrcodeService) ParseBadge(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != "member_badge" {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	memberID, err := uuid.Parse(data.MemberID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	return memberID, nil
}
