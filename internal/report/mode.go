package report

import (
	"errors"
	"fmt"
)

// Mode selects what Render prints for a successful entry.
type Mode string

const (
	// ModePlain prints one otpauth URL per credential.
	ModePlain Mode = "plain"
	// ModeDebug prints every field of every credential.
	ModeDebug Mode = "debug"
	// ModeURL prints one transfer URL per migration entry.
	ModeURL Mode = "url"
)

var ErrUnknownMode = errors.New("unknown output mode")

// ParseMode accepts the names of the three modes.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePlain, ModeDebug, ModeURL:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
