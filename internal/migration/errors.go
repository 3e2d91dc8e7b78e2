package migration

import (
	"errors"
	"fmt"
)

// Envelope errors fail a whole transfer URL.
var (
	// ErrInvalidURL indicates that the decoded text is not a URL at all.
	ErrInvalidURL = errors.New("cannot parse QR code as URL")
	// ErrInvalidScheme indicates a URL scheme that is not handled.
	ErrInvalidScheme = errors.New("invalid or unknown scheme")
	// ErrInvalidBase64 indicates a data parameter that is not valid base64.
	ErrInvalidBase64 = errors.New("invalid base64 data")
	// ErrInvalidBinaryEncoding indicates a blob that is not a valid payload message.
	ErrInvalidBinaryEncoding = errors.New("invalid binary payload")
)

// Mapping errors fail a single credential.
var (
	// ErrUnknownAlgorithm indicates an unspecified or unrecognized algorithm value.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrUnknownDigits indicates an unspecified or unrecognized digit-count value.
	ErrUnknownDigits = errors.New("unknown digits")
	// ErrUnsupportedAlgorithm indicates MD5, which is recognized but refused.
	ErrUnsupportedAlgorithm = errors.New("MD5 not supported")
)

// InvalidSchemeError reports the scheme that was found instead of the
// expected one. It matches ErrInvalidScheme.
type InvalidSchemeError struct {
	Scheme string
}

func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidScheme, e.Scheme)
}

func (e *InvalidSchemeError) Is(target error) bool {
	return target == ErrInvalidScheme
}

// UnknownAlgorithmError carries the raw algorithm integer. It matches
// ErrUnknownAlgorithm.
type UnknownAlgorithmError struct {
	Value int32
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm integral %d", e.Value)
}

func (e *UnknownAlgorithmError) Is(target error) bool {
	return target == ErrUnknownAlgorithm
}

// UnknownDigitsError carries the raw digit-count integer. It matches
// ErrUnknownDigits.
type UnknownDigitsError struct {
	Value int32
}

func (e *UnknownDigitsError) Error() string {
	return fmt.Sprintf("unknown digits integral %d", e.Value)
}

func (e *UnknownDigitsError) Is(target error) bool {
	return target == ErrUnknownDigits
}
