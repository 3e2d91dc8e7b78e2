package config

import (
	"runtime"
	"time"

	"github.com/MKhiriev/go-otp-migrate/internal/qr"
)

// defaults returns the lowest-priority configuration source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Log: Log{
			Level: "warn",
		},
		Output: Output{
			Mode:       ModePlain,
			QRSize:     qr.DefaultSize,
			PerPayload: 10,
		},
		Scanner: Scanner{
			Workers: runtime.NumCPU(),
			Timeout: 30 * time.Second,
		},
	}
}
