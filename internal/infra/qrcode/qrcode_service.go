package qrcode

import (
	"net/url"
	"path"
	"strings"

	"bridge/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// DefaultBaseURL is used when no public profile URL is configured.
const DefaultBaseURL = "bridge://vendors"

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              *url.URL
}

// NewQRCodeService creates a QR code service that encodes vendor profile
// links of the form {baseURL}/{vendorID}.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) (service.QRCodeService, error) {
	if size <= 0 {
		size = defaultSize
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid QR base URL %q", baseURL)
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(errorCorrectionLevel),
		baseURL:              base,
	}, nil
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(level) {
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

// ProfileURL is the text encoded into a vendor's QR code.
func (s *qrcodeService) ProfileURL(vendorID uuid.UUID) string {
	u := *s.baseURL
	u.Path = path.Join(u.Path, vendorID.String())

	return u.String()
}

// GenerateVendorQR renders the vendor's profile link as a PNG.
func (s *qrcodeService) GenerateVendorQR(vendorID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.ProfileURL(vendorID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseVendorQR accepts only links under the configured base URL.
func (s *qrcodeService) ParseVendorQR(qrData string) (uuid.UUID, error) {
	u, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code data")
	}

	if u.Scheme != s.baseURL.Scheme || u.Host != s.baseURL.Host {
		return uuid.Nil, errors.Errorf("QR code does not belong to %s", s.baseURL.String())
	}

	dir, last := path.Split(strings.TrimRight(u.Path, "/"))
	if strings.TrimRight(dir, "/") != strings.TrimRight(s.baseURL.Path, "/") {
		return uuid.Nil, errors.Errorf("unexpected QR code path: %s", u.Path)
	}

	vendorID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse vendor ID")
	}

	return vendorID, nil
}
