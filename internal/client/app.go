package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-otp-migrate/internal/config"
	"github.com/MKhiriev/go-otp-migrate/internal/logger"
	"github.com/MKhiriev/go-otp-migrate/internal/migration"
	"github.com/MKhiriev/go-otp-migrate/internal/qr"
	"github.com/MKhiriev/go-otp-migrate/internal/report"
	"github.com/MKhiriev/go-otp-migrate/internal/service"
	"github.com/MKhiriev/go-otp-migrate/internal/validators"
	"github.com/MKhiriev/go-otp-migrate/models"
)

type App struct {
	cfg       *config.StructuredConfig
	buildInfo models.AppBuildInfo
	mode      report.Mode
	scanner   *qr.Scanner
	service   service.MigrationService
	clipboard Clipboard
	stdout    io.Writer
	now       func() time.Time

	logger *logger.Logger
}

// NewApp wires the application for cfg. Reports are written to stdout.
func NewApp(cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, stdout io.Writer, log *logger.Logger) (*App, error) {
	mode, err := report.ParseMode(cfg.Output.Mode)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		mode:      mode,
		scanner:   qr.NewScanner(qr.NewZXingDecoder(), cfg.Scanner.Workers, cfg.Scanner.Timeout, log.GetChildLogger("scanner")),
		service:   service.NewMigrationService(validators.NewOTPValidator(), log.GetChildLogger("service")),
		clipboard: NewSystemClipboard(),
		stdout:    stdout,
		now:       time.Now,
		logger:    log,
	}, nil
}

// Run scans every input, inspects the decoded text and runs the configured
// command on the result.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Command == config.CommandVersion {
		return a.version()
	}

	results := a.scanner.Scan(ctx, a.cfg.Inputs)
	entries := a.service.Inspect(ctx, results)

	a.logger.Info().Str("command", a.cfg.Command).Int("inputs", len(a.cfg.Inputs)).Int("entries", len(entries)).Msg("inputs inspected")

	switch a.cfg.Command {
	case config.CommandDump:
		return a.dump(entries)
	case config.CommandEncode:
		return a.encode(ctx, entries)
	case config.CommandCode:
		return report.RenderCodes(a.stdout, a.service.Codes(ctx, entries, a.now()))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, a.cfg.Command)
	}
}

func (a *App) version() error {
	_, err := fmt.Fprintf(a.stdout, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(a.buildInfo.BuildVersion()), orNA(a.buildInfo.BuildDate()), orNA(a.buildInfo.BuildCommit()))
	return err
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (a *App) dump(entries []service.Entry) error {
	if err := report.Render(a.stdout, entries, a.mode); err != nil {
		return err
	}

	return a.export(report.URLs(entries, a.mode))
}

func (a *App) encode(ctx context.Context, entries []service.Entry) error {
	payloads, err := a.service.Encode(ctx, entries, a.cfg.Output.PerPayload)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(payloads))
	for _, p := range payloads {
		u := migration.EncodeURL([]models.MigrationPayload{p}).String()
		urls = append(urls, u)
		if _, err = fmt.Fprintln(a.stdout, u); err != nil {
			return err
		}
	}

	return a.export(urls)
}

// export copies urls to the clipboard and writes them as QR images, as
// configured.
func (a *App) export(urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	if a.cfg.Output.Copy {
		if err := a.clipboard.WriteAll(strings.Join(urls, "\n")); err != nil {
			return fmt.Errorf("%w: %w", ErrClipboard, err)
		}
		a.logger.Info().Int("urls", len(urls)).Msg("copied to clipboard")
	}

	if a.cfg.Output.QRFile == "" {
		return nil
	}

	for i, u := range urls {
		path := numberedPath(a.cfg.Output.QRFile, i, len(urls))
		png, err := qr.Encode(u, a.cfg.Output.QRSize)
		if err != nil {
			return err
		}
		if err = os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteQR, err)
		}
		a.logger.Info().Str("file", path).Msg("QR image written")
	}

	return nil
}

// numberedPath inserts the 1-based index before the extension of path when
// more than one file is written.
func numberedPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}

	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + strconv.Itoa(i+1) + ext
}
