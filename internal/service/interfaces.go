// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service routes decoded QR text to the migration and otpauth
// codecs and prepares what the commands print.
//
// Failures are kept per input entry and, inside a migration entry, per
// credential: a bad image, URL or credential never hides its siblings.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-otp-migrate/internal/qr"
	"github.com/MKhiriev/go-otp-migrate/models"
)

// MigrationService defines the operations behind the dump, encode and code
// commands.
type MigrationService interface {
	// Inspect parses every decode attempt and dispatches it on its URL
	// scheme. It returns one Entry per attempt, in order.
	Inspect(ctx context.Context, results []qr.Result) []Entry

	// Encode collects the credentials of successful entries into fresh
	// payloads of at most perPayload credentials that share one batch id.
	// Raw migration credentials are copied unchanged; single otpauth
	// credentials are validated first. Any failed entry fails the call.
	Encode(ctx context.Context, entries []Entry, perPayload int) ([]models.MigrationPayload, error)

	// Codes computes the code of every credential at time at. Credentials
	// that failed mapping are returned with their error.
	Codes(ctx context.Context, entries []Entry, at time.Time) []Code
}
