package qr

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"

	"github.com/MKhiriev/go-otp-migrate/internal/logger"
)

// ZXingDecoder decodes QR symbols with gozxing. It is safe for concurrent
// use; every call builds its own reader.
type ZXingDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewZXingDecoder returns a decoder that tries hard on low quality photos.
func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode opens the PNG, JPEG or GIF image at path and decodes its QR symbols.
// It logs through the logger attached to ctx, if any.
func (d *ZXingDecoder) Decode(ctx context.Context, path string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenImage, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}

	results := d.DecodeImage(path, img)
	logger.FromContext(ctx).Debug().
		Str("image", path).
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Int("results", len(results)).
		Msg("image read")

	return results, nil
}

// DecodeImage decodes every QR symbol of an already loaded image, one Result
// per symbol. A missing or unreadable symbol is reported as a Result carrying
// the error.
func (d *ZXingDecoder) DecodeImage(source string, img image.Image) []Result {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return []Result{{Source: source, Err: fmt.Errorf("%w: %w", ErrDecodeImage, err)}}
	}

	found, err := multiqr.NewQRCodeMultiReader().DecodeMultiple(bmp, d.hints)
	if err != nil {
		return []Result{{Source: source, Err: fmt.Errorf("%w: %w", ErrNoSymbol, err)}}
	}
	if len(found) == 0 {
		return []Result{{Source: source, Err: ErrNoSymbol}}
	}

	results := make([]Result, 0, len(found))
	for _, res := range found {
		results = append(results, Result{Source: source, Text: res.GetText()})
	}

	return results
}
