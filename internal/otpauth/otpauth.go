// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package otpauth reads and writes single-credential otpauth:// URLs and
// computes one-time codes for canonical credentials.
//
// Only time-based credentials (otpauth://totp/...) are handled; the
// canonical model has no counter.
package otpauth

import (
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/MKhiriev/go-otp-migrate/models"
)

const (
	// Scheme is the URL scheme of single-credential URLs.
	Scheme = "otpauth"

	typeTOTP = "totp"
)

var (
	ErrInvalidScheme    = errors.New("not an otpauth URL")
	ErrUnsupportedType  = errors.New("unsupported OTP type")
	ErrMissingSecret    = errors.New("secret is required")
	ErrInvalidSecret    = errors.New("secret is not valid base32")
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
	ErrInvalidDigits    = errors.New("invalid digits")
	ErrInvalidPeriod    = errors.New("invalid period")
)

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeSecret returns the unpadded RFC 4648 base32 form of a raw secret.
func EncodeSecret(secret []byte) string {
	return secretEncoding.EncodeToString(secret)
}

// DecodeSecret accepts base32 with or without padding, in any letter case.
func DecodeSecret(s string) ([]byte, error) {
	s = strings.TrimRight(strings.ToUpper(strings.TrimSpace(s)), "=")
	b, err := secretEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}
	return b, nil
}

// Format builds the canonical URL of otp:
//
//	otpauth://totp/<issuer>:<account>?secret=..&issuer=..&algorithm=..&digits=..&period=..
//
// Without an issuer the label is the bare account; with one it is always
// "issuer:account", even when the account is empty, so Parse can tell the
// two apart.
func Format(otp models.OTP) *url.URL {
	label := otp.AccountName()
	if otp.Issuer != "" {
		label = otp.Issuer + ":" + label
	}

	period := otp.Period
	if period <= 0 {
		period = models.DefaultPeriod
	}

	query := []string{
		"secret=" + EncodeSecret(otp.Secret),
		"issuer=" + url.QueryEscape(otp.Issuer),
		"algorithm=" + string(otp.Algorithm),
		"digits=" + strconv.Itoa(otp.Digits),
		"period=" + strconv.Itoa(int(period/time.Second)),
	}

	return &url.URL{
		Scheme:   Scheme,
		Host:     typeTOTP,
		Path:     "/" + label,
		RawQuery: strings.Join(query, "&"),
	}
}

// Parse reads a single-credential URL into a canonical credential.
//
// Missing algorithm, digits and period fall back to SHA1, 6 and 30 seconds.
// An issuer query parameter takes precedence over the issuer prefix of the
// label.
func Parse(u *url.URL) (models.OTP, error) {
	if u.Scheme != Scheme {
		return models.OTP{}, fmt.Errorf("%w: %q", ErrInvalidScheme, u.Scheme)
	}
	if !strings.EqualFold(u.Host, typeTOTP) {
		return models.OTP{}, fmt.Errorf("%w: %q", ErrUnsupportedType, u.Host)
	}

	var otp models.OTP

	query := u.Query()
	label := strings.TrimPrefix(u.Path, "/")
	account := label

	// an issuer parameter tells where the label prefix ends even when the
	// issuer itself contains ':'
	if issuer := query.Get("issuer"); issuer != "" && strings.HasPrefix(label, issuer+":") {
		otp.Issuer = issuer
		account = strings.TrimLeft(label[len(issuer)+1:], " ")
	} else if issuer, rest, ok := strings.Cut(label, ":"); ok {
		otp.Issuer = issuer
		account = strings.TrimLeft(rest, " ")
	}
	if account != "" {
		otp.Account = &account
	}

	if query.Has("issuer") {
		otp.Issuer = query.Get("issuer")
	}

	rawSecret := query.Get("secret")
	if rawSecret == "" {
		return models.OTP{}, ErrMissingSecret
	}
	secret, err := DecodeSecret(rawSecret)
	if err != nil {
		return models.OTP{}, err
	}
	otp.Secret = secret

	otp.Algorithm = models.SHA1
	if v := query.Get("algorithm"); v != "" {
		switch alg := models.HashAlgorithm(strings.ToUpper(v)); alg {
		case models.SHA1, models.SHA256, models.SHA512:
			otp.Algorithm = alg
		default:
			return models.OTP{}, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, v)
		}
	}

	otp.Digits = 6
	if v := query.Get("digits"); v != "" {
		digits, err := strconv.Atoi(v)
		if err != nil || (digits != 6 && digits != 8) {
			return models.OTP{}, fmt.Errorf("%w: %q", ErrInvalidDigits, v)
		}
		otp.Digits = digits
	}

	otp.Period = models.DefaultPeriod
	if v := query.Get("period"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return models.OTP{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, v)
		}
		otp.Period = time.Duration(seconds) * time.Second
	}

	return otp, nil
}

// GenerateCode returns the TOTP code of otp at time t.
func GenerateCode(otp models.OTP, t time.Time) (string, error) {
	var algorithm pqotp.Algorithm
	switch otp.Algorithm {
	case models.SHA1:
		algorithm = pqotp.AlgorithmSHA1
	case models.SHA256:
		algorithm = pqotp.AlgorithmSHA256
	case models.SHA512:
		algorithm = pqotp.AlgorithmSHA512
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, otp.Algorithm)
	}

	period := otp.Period
	if period <= 0 {
		period = models.DefaultPeriod
	}

	code, err := totp.GenerateCodeCustom(EncodeSecret(otp.Secret), t, totp.ValidateOpts{
		Period:    uint(period / time.Second),
		Digits:    pqotp.Digits(otp.Digits),
		Algorithm: algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return code, nil
}
