// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultPeriod is the time step of every credential recovered from a
// migration payload. The wire format carries no period field.
const DefaultPeriod = 30 * time.Second

// HashAlgorithm is the HMAC algorithm of a canonical OTP credential.
// Its string form is the value used in the algorithm parameter of
// otpauth:// URLs.
type HashAlgorithm string

const (
	SHA1   HashAlgorithm = "SHA1"
	SHA256 HashAlgorithm = "SHA256"
	SHA512 HashAlgorithm = "SHA512"
)

// OTP is the validated, normalized time-based credential produced from a
// raw migration entry or parsed from an otpauth:// URL.
type OTP struct {
	// Issuer is the issuing service, copied verbatim.
	Issuer string

	// Account is the account label. Nil when the source name was empty.
	Account *string

	// Secret is the shared secret as raw bytes.
	Secret []byte

	// Algorithm is one of SHA1, SHA256 or SHA512.
	Algorithm HashAlgorithm

	// Digits is 6 or 8.
	Digits int

	// Period is the TOTP time step.
	Period time.Duration
}

// AccountName returns the account label or an empty string when absent.
func (o OTP) AccountName() string {
	if o.Account == nil {
		return ""
	}
	return *o.Account
}
