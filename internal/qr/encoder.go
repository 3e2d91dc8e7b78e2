package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the side of generated PNG images in pixels.
const DefaultSize = 512

// Encode renders text as a PNG QR code of size x size pixels.
// Medium error correction still fits a full transfer URL of a typical export.
func Encode(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return png, nil
}
