// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

//go:generate mockgen -source=interfaces.go -destination=../mock/clipboard_mock.go -package=mock

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the configured command and returns when it is done.
	Run(ctx context.Context) error
}

// Clipboard receives the URLs a command emits when copying is enabled.
type Clipboard interface {
	WriteAll(text string) error
}
