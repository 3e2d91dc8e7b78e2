package client

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-otp-migrate/internal/config"
	"github.com/MKhiriev/go-otp-migrate/internal/logger"
	"github.com/MKhiriev/go-otp-migrate/internal/migration"
	"github.com/MKhiriev/go-otp-migrate/internal/mock"
	"github.com/MKhiriev/go-otp-migrate/internal/qr"
	"github.com/MKhiriev/go-otp-migrate/internal/service"
	"github.com/MKhiriev/go-otp-migrate/models"
)

const exampleURL = "otpauth-migration://offline?data=ChQKBUhlbGxvGgdFeGFtcGxlIAEoARgBKCo"

func testConfig(command string, inputs ...string) *config.StructuredConfig {
	return &config.StructuredConfig{
		Command: command,
		Inputs:  inputs,
		Output:  config.Output{Mode: config.ModePlain, QRSize: 256, PerPayload: 10},
		Scanner: config.Scanner{Workers: 2, Timeout: time.Second},
	}
}

// newTestApp builds an App around mocks and returns its output buffer.
func newTestApp(t *testing.T, ctrl *gomock.Controller, cfg *config.StructuredConfig) (*App, *bytes.Buffer, *mock.MockImageDecoder, *mock.MockClipboard) {
	t.Helper()

	var out bytes.Buffer
	app, err := NewApp(cfg, models.NewAppBuildInfo("", "", ""), &out, logger.Nop())
	require.NoError(t, err)

	decoder := mock.NewMockImageDecoder(ctrl)
	clip := mock.NewMockClipboard(ctrl)
	app.scanner = qr.NewScanner(decoder, cfg.Scanner.Workers, cfg.Scanner.Timeout, logger.Nop())
	app.clipboard = clip
	app.now = func() time.Time { return time.Unix(59, 0).UTC() }

	return app, &out, decoder, clip
}

// ── NewApp ────────────────────────────────────────────────────────────────────

func TestNewApp_InvalidMode(t *testing.T) {
	cfg := testConfig(config.CommandDump, "x")
	cfg.Output.Mode = "fancy"

	_, err := NewApp(cfg, models.AppBuildInfo{}, &bytes.Buffer{}, logger.Nop())
	assert.Error(t, err)
}

// ── dump ──────────────────────────────────────────────────────────────────────

func TestRun_Dump_ImageAndLiteral(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, out, decoder, _ := newTestApp(t, ctrl, testConfig(config.CommandDump, "export.png", "otpauth://totp/bob?secret=JBSWY3DP"))

	decoder.EXPECT().Decode(gomock.Any(), "export.png").Return([]qr.Result{{Source: "export.png", Text: exampleURL}}, nil)

	require.NoError(t, app.Run(context.Background()))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2 entity found", lines[0])
	assert.Equal(t, "0 : otpauth-migration", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "  - otpauth://totp/Example:"))
	assert.True(t, strings.HasPrefix(lines[4], "1 : otpauth://totp/bob?"))
}

func TestRun_Dump_ErrorsAreReportedNotReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, out, decoder, _ := newTestApp(t, ctrl, testConfig(config.CommandDump, "broken.png"))

	decoder.EXPECT().Decode(gomock.Any(), "broken.png").Return(nil, qr.ErrDecodeImage)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "0 : image decoding error: image decoding error")
}

func TestRun_Dump_CopiesURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(config.CommandDump, exampleURL)
	cfg.Output.Mode = config.ModeURL
	cfg.Output.Copy = true
	app, _, _, clip := newTestApp(t, ctrl, cfg)

	clip.EXPECT().WriteAll(exampleURL).Return(nil)

	require.NoError(t, app.Run(context.Background()))
}

func TestRun_Dump_ClipboardError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(config.CommandDump, exampleURL)
	cfg.Output.Copy = true
	app, _, _, clip := newTestApp(t, ctrl, cfg)

	clip.EXPECT().WriteAll(gomock.Any()).Return(assert.AnError)

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, ErrClipboard)
	assert.ErrorIs(t, err, assert.AnError)
}

// ── encode ────────────────────────────────────────────────────────────────────

func TestRun_Encode_WritesNumberedQRFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(config.CommandEncode,
		"otpauth://totp/A:a?secret=JBSWY3DP",
		"otpauth://totp/B:b?secret=JBSWY3DP",
		"otpauth://totp/C:c?secret=JBSWY3DP",
	)
	cfg.Output.PerPayload = 2
	cfg.Output.QRFile = filepath.Join(dir, "export.png")
	cfg.Output.Copy = true
	app, out, _, clip := newTestApp(t, ctrl, cfg)

	clip.EXPECT().WriteAll(gomock.Any()).DoAndReturn(func(text string) error {
		assert.Len(t, strings.Split(text, "\n"), 2)
		return nil
	})

	require.NoError(t, app.Run(context.Background()))

	urls := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, urls, 2)
	for i, u := range urls {
		parsed, err := migration.ParseURL(u)
		require.NoError(t, err)
		payloads, err := migration.DecodeURL(parsed)
		require.NoError(t, err)
		require.Len(t, payloads, 1)
		assert.Equal(t, int32(i), payloads[0].BatchIndex)
		assert.Equal(t, int32(2), payloads[0].BatchSize)
	}

	for _, name := range []string{"export-1.png", "export-2.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		imgCfg, err := png.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, 256, imgCfg.Width)
	}
}

func TestRun_Encode_FailedEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, out, _, _ := newTestApp(t, ctrl, testConfig(config.CommandEncode, exampleURL, "otpauth://hotp/x?secret=AA"))

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, service.ErrEntryFailed)
	assert.Empty(t, out.String())
}

// ── code ──────────────────────────────────────────────────────────────────────

func TestRun_Code(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, out, _, _ := newTestApp(t, ctrl, testConfig(config.CommandCode,
		"otpauth://totp/ACME:bob?secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&digits=8"))

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "0 : 94287082   1s  ACME:bob\n", out.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, _, _, _ := newTestApp(t, ctrl, testConfig("frobnicate", exampleURL))

	assert.ErrorIs(t, app.Run(context.Background()), ErrUnknownCommand)
}

func TestNumberedPath(t *testing.T) {
	assert.Equal(t, "out.png", numberedPath("out.png", 0, 1))
	assert.Equal(t, "out-1.png", numberedPath("out.png", 0, 3))
	assert.Equal(t, "dir/out-3.png", numberedPath("dir/out.png", 2, 3))
	assert.Equal(t, "out-2", numberedPath("out", 1, 2))
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	app, err := NewApp(testConfig(config.CommandVersion), models.NewAppBuildInfo("1.2.0", "", "abc123"), &out, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: abc123\n", out.String())
}

// TestClient_Implementations verifies that the app and its generated mock
// both satisfy Client.
func TestClient_Implementations(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockClient(ctrl)
	m.EXPECT().Run(gomock.Any()).Return(nil)

	var c Client = m
	require.NoError(t, c.Run(context.Background()))

	var _ Client = (*App)(nil)
}
