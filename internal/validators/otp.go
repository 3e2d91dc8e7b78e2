package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-otp-migrate/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldSecret targets the shared secret of a credential.
	FieldSecret = "secret"

	// FieldLabel requires at least one of issuer and account.
	FieldLabel = "label"

	// FieldAlgorithm targets the hash algorithm of a credential.
	FieldAlgorithm = "algorithm"

	// FieldDigits targets the code length of a credential.
	FieldDigits = "digits"

	// FieldPeriod targets the time step of a credential. The migration format
	// cannot carry periods other than 30 seconds.
	FieldPeriod = "period"

	// FieldBatch targets the batch index/size pair of a payload.
	FieldBatch = "batch"

	// FieldCredentials requires a payload to hold at least one credential.
	FieldCredentials = "credentials"
)

// OTPValidator implements Validator for models.OTP and
// models.MigrationPayload, by value or by pointer.
type OTPValidator struct {
}

// NewOTPValidator constructs a new OTPValidator and returns it as the
// Validator interface.
func NewOTPValidator() Validator {
	return &OTPValidator{}
}

// Validate dispatches on the dynamic type of obj. Returns ErrUnsupportedType
// for anything else.
func (v *OTPValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.OTP:
		return v.validateOTP(ctx, value, fields...)
	case *models.OTP:
		return v.validateOTP(ctx, *value, fields...)

	case models.MigrationPayload:
		return v.validatePayload(ctx, value, fields...)
	case *models.MigrationPayload:
		return v.validatePayload(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateOTP checks a canonical credential.
//
// Default validated fields (when none specified):
// Secret, Label, Algorithm, Digits.
func (v *OTPValidator) validateOTP(_ context.Context, otp models.OTP, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSecret, FieldLabel, FieldAlgorithm, FieldDigits}
	}

	for _, f := range fields {
		switch f {
		case FieldSecret:
			if len(otp.Secret) == 0 {
				return ErrEmptySecret
			}
		case FieldLabel:
			if otp.Issuer == "" && otp.AccountName() == "" {
				return ErrEmptyLabel
			}
		case FieldAlgorithm:
			switch otp.Algorithm {
			case models.SHA1, models.SHA256, models.SHA512:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, otp.Algorithm)
			}
		case FieldDigits:
			if otp.Digits != 6 && otp.Digits != 8 {
				return fmt.Errorf("%w: %d", ErrInvalidDigits, otp.Digits)
			}
		case FieldPeriod:
			if otp.Period != models.DefaultPeriod {
				return fmt.Errorf("%w: %s (only %s can be exported)", ErrInvalidPeriod, otp.Period, models.DefaultPeriod)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePayload checks a payload built for export.
//
// Default validated fields (when none specified): Batch, Credentials.
func (v *OTPValidator) validatePayload(_ context.Context, p models.MigrationPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBatch, FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldBatch:
			if p.BatchIndex < 0 || p.BatchIndex >= p.BatchSize {
				return fmt.Errorf("%w: index %d, size %d", ErrInvalidBatch, p.BatchIndex, p.BatchSize)
			}
		case FieldCredentials:
			if len(p.OtpParameters) == 0 {
				return ErrEmptyPayload
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
