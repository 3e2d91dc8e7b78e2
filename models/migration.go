// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Algorithm is the hash algorithm enumeration of the migration wire format.
// The type is wide enough to hold any integer read off the wire, including
// values outside the known set.
type Algorithm int32

const (
	// AlgorithmUnspecified is the zero value and is never accepted by the mapper.
	AlgorithmUnspecified Algorithm = 0

	// AlgorithmSHA1 selects HMAC-SHA1.
	AlgorithmSHA1 Algorithm = 1

	// AlgorithmSHA256 selects HMAC-SHA256.
	AlgorithmSHA256 Algorithm = 2

	// AlgorithmSHA512 selects HMAC-SHA512.
	AlgorithmSHA512 Algorithm = 3

	// AlgorithmMD5 is a recognized member that is deliberately not supported.
	AlgorithmMD5 Algorithm = 4
)

// DigitCount is the digit-count enumeration of the migration wire format.
type DigitCount int32

const (
	// DigitCountUnspecified is the zero value and is never accepted by the mapper.
	DigitCountUnspecified DigitCount = 0

	// DigitCountSix yields six-digit codes.
	DigitCountSix DigitCount = 1

	// DigitCountEight yields eight-digit codes.
	DigitCountEight DigitCount = 2
)

// OtpType is the credential kind enumeration of the migration wire format.
// It is carried through the codec but not consumed by the mapper.
type OtpType int32

const (
	OtpTypeUnspecified OtpType = 0
	OtpTypeHOTP        OtpType = 1
	OtpTypeTOTP        OtpType = 2
)

// OtpParameters is one raw credential entry inside a MigrationPayload,
// exactly as it appears on the wire before any validation.
type OtpParameters struct {
	// Secret is the shared secret as raw bytes (not base32-encoded).
	Secret []byte

	// Name is the account label. May be empty.
	Name string

	// Issuer is the service that issued the credential.
	Issuer string

	// Algorithm is the raw hash algorithm enumeration value.
	Algorithm Algorithm

	// Digits is the raw digit-count enumeration value.
	Digits DigitCount

	// Type is the raw credential kind enumeration value.
	Type OtpType

	// Counter is the HOTP moving factor. Zero for time-based credentials.
	Counter int64
}

// MigrationPayload is one decoded data blob of a transfer URL: batch
// metadata plus the credentials carried by this blob.
//
// Exports that do not fit into one QR code are split into several payloads
// sharing BatchID. BatchIndex is expected to lie in [0, BatchSize), but the
// codec surfaces the values as read without checking them.
type MigrationPayload struct {
	// OtpParameters lists the credentials in wire order.
	OtpParameters []OtpParameters

	// Version is the opaque format revision.
	Version int32

	// BatchSize is the declared number of payloads in the batch.
	BatchSize int32

	// BatchIndex is the 0-based position of this payload in its batch.
	BatchIndex int32

	// BatchID identifies the export session.
	BatchID int32
}
