package qrcode

import (
	"net/url"
	"strings"

	"minex/config"
	"minex/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "minex://follow"
)

type qrcodeService struct {
	size    int
	level   qrcode.RecoveryLevel
	baseURL string
}

// NewQRCodeService builds the follow QR service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	var qc config.QRCodeConfig
	if cfg.QRCode != nil {
		qc = *cfg.QRCode
	}

	return newQRCodeService(qc.Size, qc.ErrorCorrectionLevel, qc.BaseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	if size <= 0 {
		size = defaultSize
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &qrcodeService{
		size:    size,
		level:   parseRecoveryLevel(errorCorrectionLevel),
		baseURL: baseURL,
	}
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "l", "low":
		return qrcode.Low
	case "q", "high":
		return qrcode.High
	case "h", "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// FollowLink is the text encoded in a follow QR code.
func (s *qrcodeService) FollowLink(userID uuid.UUID) string {
	return s.baseURL + "/" + userID.String()
}

func (s *qrcodeService) GenerateFollowQR(userID uuid.UUID) ([]byte, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user id is required")
	}

	png, err := qrcode.Encode(s.FollowLink(userID), s.level, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode follow QR code")
	}

	return png, nil
}

// ParseFollowQR accepts links produced by GenerateFollowQR, tolerating a different host or scheme.
func (s *qrcodeService) ParseFollowQR(qrData string) (uuid.UUID, error) {
	link, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse follow link")
	}

	segments := strings.Split(strings.Trim(link.Host+link.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != "follow" {
		return uuid.Nil, errors.Errorf("not a follow link: %s", qrData)
	}

	userID, err := uuid.Parse(segments[len(segments)-1])
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse user ID")
	}

	return userID, nil
}
