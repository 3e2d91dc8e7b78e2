package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-otp-migrate/internal/logger"
	"github.com/MKhiriev/go-otp-migrate/internal/migration"
	"github.com/MKhiriev/go-otp-migrate/internal/otpauth"
	"github.com/MKhiriev/go-otp-migrate/internal/qr"
	"github.com/MKhiriev/go-otp-migrate/internal/validators"
	"github.com/MKhiriev/go-otp-migrate/models"
)

// payloadVersion is written into payloads built by Encode.
const payloadVersion = 1

type migrationService struct {
	validator validators.Validator
	newID     func() int32

	logger *logger.Logger
}

// NewMigrationService returns the default MigrationService.
func NewMigrationService(validator validators.Validator, logger *logger.Logger) MigrationService {
	return &migrationService{
		validator: validator,
		newID:     randomBatchID,
		logger:    logger,
	}
}

// randomBatchID returns a non-negative id derived from a random UUID.
func randomBatchID() int32 {
	return int32(uuid.New().ID() & 0x7fffffff)
}

func (s *migrationService) Inspect(ctx context.Context, results []qr.Result) []Entry {
	entries := make([]Entry, 0, len(results))
	for i, res := range results {
		entry := s.inspectOne(res)
		entry.Index = i
		entries = append(entries, entry)

		if entry.Err != nil {
			s.logger.Debug().Int("entry", i).Str("source", res.Source).Stringer("stage", entry.Stage).Err(entry.Err).Msg("entry failed")
		}
	}

	return entries
}

func (s *migrationService) inspectOne(res qr.Result) Entry {
	entry := Entry{Source: res.Source, Text: res.Text}
	if res.Err != nil {
		entry.Stage, entry.Err = StageImage, res.Err
		return entry
	}

	u, err := migration.ParseURL(res.Text)
	if err != nil {
		entry.Stage, entry.Err = StageURL, err
		return entry
	}

	switch u.Scheme {
	case migration.Scheme:
		entry.Kind = KindMigration
		payloads, err := migration.DecodeURL(u)
		if err != nil {
			entry.Stage, entry.Err = StageOTP, err
			return entry
		}
		entry.Batches = make([]Batch, 0, len(payloads))
		for _, p := range payloads {
			entry.Batches = append(entry.Batches, mapPayload(p))
		}

	case otpauth.Scheme:
		entry.Kind = KindSingle
		otp, err := otpauth.Parse(u)
		if err != nil {
			entry.Stage, entry.Err = StageOTP, err
			return entry
		}
		entry.OTP = &otp

	default:
		entry.Stage, entry.Err = StageURL, &migration.InvalidSchemeError{Scheme: u.Scheme}
	}

	return entry
}

// mapPayload maps each credential on its own so one bad entry keeps the
// others usable.
func mapPayload(p models.MigrationPayload) Batch {
	batch := Batch{Payload: p, Credentials: make([]Credential, 0, len(p.OtpParameters))}
	for _, params := range p.OtpParameters {
		otp, err := migration.ParamsToOTP(params)
		batch.Credentials = append(batch.Credentials, Credential{Params: params, OTP: otp, Err: err})
	}
	return batch
}

func (s *migrationService) Encode(ctx context.Context, entries []Entry, perPayload int) ([]models.MigrationPayload, error) {
	var (
		params []models.OtpParameters
		errs   []error
	)

	for _, entry := range entries {
		if entry.Err != nil {
			errs = append(errs, fmt.Errorf("%w: entry %d (%s): %s: %w", ErrEntryFailed, entry.Index, entry.Source, entry.Stage, entry.Err))
			continue
		}

		switch entry.Kind {
		case KindMigration:
			for _, batch := range entry.Batches {
				params = append(params, batch.Payload.OtpParameters...)
			}
		case KindSingle:
			if err := s.validator.Validate(ctx, *entry.OTP); err != nil {
				errs = append(errs, fmt.Errorf("%w: entry %d (%s): %w", ErrEntryFailed, entry.Index, entry.Source, err))
				continue
			}
			if err := s.validator.Validate(ctx, *entry.OTP, validators.FieldPeriod); err != nil {
				s.logger.Warn().Int("entry", entry.Index).Err(err).Msg("period is not exported")
			}
			params = append(params, migration.OTPToParams(*entry.OTP))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(params) == 0 {
		return nil, ErrNothingToEncode
	}

	if perPayload <= 0 {
		perPayload = len(params)
	}
	size := (len(params) + perPayload - 1) / perPayload
	batchID := s.newID()

	payloads := make([]models.MigrationPayload, 0, size)
	for i := 0; i < size; i++ {
		end := min((i+1)*perPayload, len(params))
		p := models.MigrationPayload{
			OtpParameters: params[i*perPayload : end : end],
			Version:       payloadVersion,
			BatchSize:     int32(size),
			BatchIndex:    int32(i),
			BatchID:       batchID,
		}
		if err := s.validator.Validate(ctx, p); err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		payloads = append(payloads, p)
	}

	s.logger.Info().Int("credentials", len(params)).Int("payloads", size).Int32("batch_id", batchID).Msg("migration payloads built")

	return payloads, nil
}

func (s *migrationService) Codes(ctx context.Context, entries []Entry, at time.Time) []Code {
	var codes []Code
	for _, entry := range entries {
		switch {
		case entry.Err != nil:
			codes = append(codes, Code{Entry: entry.Index, Err: entry.Err})
		case entry.Kind == KindSingle:
			codes = append(codes, codeFor(entry.Index, *entry.OTP, nil, at))
		case entry.Kind == KindMigration:
			for _, batch := range entry.Batches {
				for _, c := range batch.Credentials {
					code := codeFor(entry.Index, c.OTP, c.Err, at)
					if c.Err != nil {
						code.Issuer, code.Account = c.Params.Issuer, c.Params.Name
					}
					codes = append(codes, code)
				}
			}
		}
	}

	return codes
}

func codeFor(index int, otp models.OTP, mapErr error, at time.Time) Code {
	code := Code{Entry: index, Issuer: otp.Issuer, Account: otp.AccountName(), Err: mapErr}
	if mapErr != nil {
		return code
	}

	period := otp.Period
	if period <= 0 {
		period = models.DefaultPeriod
	}
	code.Remaining = period - time.Duration(at.UnixNano()%int64(period))
	code.Code, code.Err = otpauth.GenerateCode(otp, at)

	return code
}
