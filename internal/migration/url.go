// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migration

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-otp-migrate/models"
)

const (
	// Scheme is the URL scheme of transfer URLs.
	Scheme = "otpauth-migration"

	// Host is the placeholder host written by EncodeURL. It carries no meaning.
	Host = "offline"

	// DataParam is the query key of every payload blob.
	DataParam = "data"
)

// ParseURL parses decoded QR text as a URL. Any scheme is accepted.
func ParseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return u, nil
}

// DecodeURL extracts every payload of a transfer URL, in the order the data
// parameters appear in the query string.
//
// The scheme is checked before anything is decoded. Query parameters other
// than data are ignored. A single undecodable data value fails the whole URL
// and no payloads are returned. A URL without data parameters yields an empty
// slice and no error.
func DecodeURL(u *url.URL) ([]models.MigrationPayload, error) {
	if u.Scheme != Scheme {
		return nil, &InvalidSchemeError{Scheme: u.Scheme}
	}

	found := make([]models.MigrationPayload, 0)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		rawKey, value, _ := strings.Cut(pair, "=")
		if key, err := url.QueryUnescape(rawKey); err != nil || key != DataParam {
			continue
		}

		raw, err := decodeBase64(value)
		if err != nil {
			return nil, err
		}

		payload, err := UnmarshalPayload(raw)
		if err != nil {
			return nil, fmt.Errorf("data parameter #%d: %w", len(found), err)
		}

		found = append(found, payload)
	}

	return found, nil
}

// decodeBase64 decodes a query-escaped standard base64 value with optional
// padding. A '+' left unescaped in the query reads back as a space and is
// restored, since the standard alphabet has no space.
func decodeBase64(value string) ([]byte, error) {
	unescaped, err := url.QueryUnescape(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	unescaped = strings.ReplaceAll(unescaped, " ", "+")
	unescaped = strings.TrimRight(unescaped, "=")

	raw, err := base64.RawStdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}

	return raw, nil
}

// EncodeURL builds a transfer URL holding one data parameter per payload, in
// input order. Values are unpadded standard base64.
func EncodeURL(payloads []models.MigrationPayload) *url.URL {
	pairs := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		value := base64.RawStdEncoding.EncodeToString(MarshalPayload(payload))
		pairs = append(pairs, DataParam+"="+url.QueryEscape(value))
	}

	return &url.URL{
		Scheme:   Scheme,
		Host:     Host,
		RawQuery: strings.Join(pairs, "&"),
	}
}
