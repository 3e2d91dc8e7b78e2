package qr

import "errors"

var (
	ErrOpenImage     = errors.New("cannot open image")
	ErrDecodeImage   = errors.New("image decoding error")
	ErrNoSymbol      = errors.New("no QR code found")
	ErrDecodeTimeout = errors.New("QR decoding timed out")
	ErrEncode        = errors.New("cannot encode QR code")
)
