package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptySecret      = errors.New("secret is required")
	ErrEmptyLabel       = errors.New("issuer or account is required")
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
	ErrInvalidDigits    = errors.New("digits must be 6 or 8")
	ErrInvalidPeriod    = errors.New("period must be a positive number of seconds")
	ErrInvalidBatch     = errors.New("batch index must lie in [0, batch size)")
	ErrEmptyPayload     = errors.New("payload has no credentials")
)
