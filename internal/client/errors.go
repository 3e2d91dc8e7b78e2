package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrClipboard      = errors.New("cannot copy to clipboard")
	ErrWriteQR        = errors.New("cannot write QR image")
)
