package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// commandAliases maps alternative command names onto canonical ones.
var commandAliases = map[string]string{
	"qr-dump": CommandDump,
}

// parseFlags parses the command line (without the program name).
//
// Usage:
//
//	aotp <command> [flags] <image|url>...
//
// Flags:
//
//	-d/-debug dump every field of every credential
//	-u/-url print otpauth-migration URLs instead of otpauth URLs
//	-mode output mode: plain, debug or url
//	-copy copy the printed URLs to the clipboard
//	-o/-qr-file write the encoded URL as a QR code PNG
//	-qr-size QR image side in pixels
//	-per-payload credentials per encoded payload
//	-workers images decoded concurrently
//	-timeout per-image decoding timeout (e.g., "10s")
//	-log-level log level (debug, info, warn, error)
//	-log-file log file path
//	-c/-config json file path with configs
//
// Flags may appear before or after the inputs. -debug takes precedence over
// -url; both take precedence over -mode.
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		debug, urlMode bool
		mode           string
		copyOut        bool
		qrFile         string
		qrSize         int
		perPayload     int
		workers        int
		timeout        time.Duration
		logLevel       string
		logFile        string
		jsonConfigPath string
	)

	fs := flag.NewFlagSet("aotp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&debug, "d", false, "Dump every field of every credential")
	fs.BoolVar(&debug, "debug", false, "Dump every field of every credential (alias)")
	fs.BoolVar(&urlMode, "u", false, "Print otpauth-migration URLs")
	fs.BoolVar(&urlMode, "url", false, "Print otpauth-migration URLs (alias)")
	fs.StringVar(&mode, "mode", "", "Output mode: plain, debug or url")
	fs.BoolVar(&copyOut, "copy", false, "Copy printed URLs to the clipboard")
	fs.StringVar(&qrFile, "o", "", "QR code PNG output path")
	fs.StringVar(&qrFile, "qr-file", "", "QR code PNG output path (alias)")
	fs.IntVar(&qrSize, "qr-size", 0, "QR image side in pixels")
	fs.IntVar(&perPayload, "per-payload", 0, "Credentials per encoded payload")
	fs.IntVar(&workers, "workers", 0, "Images decoded concurrently")
	fs.DurationVar(&timeout, "timeout", 0, "Per-image decoding timeout (e.g., 10s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	var command string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}
	if canonical, ok := commandAliases[command]; ok {
		command = canonical
	}

	var inputs []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("error parsing flags: %w", err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		inputs = append(inputs, args[0])
		args = args[1:]
	}

	switch {
	case debug:
		mode = ModeDebug
	case urlMode:
		mode = ModeURL
	}

	return &StructuredConfig{
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		Output: Output{
			Mode:       mode,
			Copy:       copyOut,
			QRFile:     qrFile,
			QRSize:     qrSize,
			PerPayload: perPayload,
		},
		Scanner: Scanner{
			Workers: workers,
			Timeout: timeout,
		},
		JSONFilePath: jsonConfigPath,
		Command:      command,
		Inputs:       inputs,
	}, nil
}
