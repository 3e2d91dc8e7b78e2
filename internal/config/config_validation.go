// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can be run.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Command {
	case CommandDump, CommandEncode, CommandCode, CommandVersion:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cfg.Command)
	}

	if len(cfg.Inputs) == 0 && cfg.Command != CommandVersion {
		return ErrNoInputs
	}

	switch cfg.Output.Mode {
	case ModePlain, ModeDebug, ModeURL:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidOutputConfigs, cfg.Output.Mode)
	}

	if cfg.Output.QRSize <= 0 || cfg.Output.PerPayload <= 0 {
		return ErrInvalidOutputConfigs
	}

	if cfg.Scanner.Workers <= 0 || cfg.Scanner.Timeout < 0 {
		return ErrInvalidScannerConfigs
	}

	return nil
}
