package service

import (
	"time"

	"github.com/MKhiriev/go-otp-migrate/models"
)

// Stage tells which step of the pipeline an entry failed at.
type Stage int

const (
	// StageNone marks a successful entry.
	StageNone Stage = iota
	// StageImage marks an image or QR symbol decoding failure.
	StageImage
	// StageURL marks text that is not a URL or has an unhandled scheme.
	StageURL
	// StageOTP marks a migration or otpauth URL whose content is invalid.
	StageOTP
)

func (s Stage) String() string {
	switch s {
	case StageImage:
		return "image decoding error"
	case StageURL:
		return "OTP URL error"
	case StageOTP:
		return "otp error"
	default:
		return "ok"
	}
}

// Kind tells which URL format an entry held.
type Kind int

const (
	KindUnknown Kind = iota
	KindMigration
	KindSingle
)

// Credential is one raw migration credential and the result of mapping it.
type Credential struct {
	Params models.OtpParameters
	OTP    models.OTP
	Err    error
}

// Batch is one decoded payload with its mapped credentials.
type Batch struct {
	Payload     models.MigrationPayload
	Credentials []Credential
}

// Entry is the outcome of one decode attempt.
type Entry struct {
	// Index is the position of the attempt in the input.
	Index int
	// Source is the image path or literal input.
	Source string
	// Text is the decoded QR text.
	Text string

	Kind Kind
	// Batches is set for KindMigration.
	Batches []Batch
	// OTP is set for KindSingle.
	OTP *models.OTP

	Stage Stage
	Err   error
}

// Code is the current one-time code of a credential.
type Code struct {
	Entry     int
	Issuer    string
	Account   string
	Code      string
	Remaining time.Duration
	Err       error
}
