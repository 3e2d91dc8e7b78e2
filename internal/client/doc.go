// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the aotp command-line application runtime.
//
// It wires QR scanning, the migration service and report rendering into a
// single process lifecycle driven by the loaded configuration.
package client
