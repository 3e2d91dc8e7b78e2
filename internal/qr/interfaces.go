// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package qr turns images into decoded QR text and text back into QR images.
//
// Decoding yields a list of attempts per image, each either a text or an
// error. The rest of the application only consumes that list.
package qr

//go:generate mockgen -source=interfaces.go -destination=../mock/image_decoder_mock.go -package=mock

import "context"

// Result is one decode attempt.
type Result struct {
	// Source is the image path or the literal input the text came from.
	Source string

	// Text is the decoded QR payload. Empty when Err is set.
	Text string

	// Err is the image or symbol decoding error, if any.
	Err error
}

// ImageDecoder reads the QR symbols of one image file.
type ImageDecoder interface {
	// Decode returns one Result per candidate symbol found in the image at
	// path. The error is set when the file cannot be read as an image at all.
	Decode(ctx context.Context, path string) ([]Result, error)
}
