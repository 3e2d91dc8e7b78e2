// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migration decodes and encodes the otpauth-migration:// transfer
// URLs produced by authenticator apps when exporting accounts in bulk.
//
// A transfer URL carries one or more data query parameters. Each one is a
// base64 blob holding a binary, field-tagged MigrationPayload message that
// lists a batch of raw credentials.
//
// The package has three layers:
//   - payload.go: binary codec for a single MigrationPayload;
//   - url.go: extraction and embedding of the blobs in the URL query;
//   - mapper.go: conversion of a raw credential into a canonical models.OTP.
//
// Envelope errors (scheme, base64, binary) fail the whole URL. Mapping errors
// fail one credential only, so callers map credentials one by one and keep
// per-credential results.
//
// Every function is pure and safe for concurrent use.
package migration
