package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourcesWin verifies that a field set by an earlier source
// is not overwritten by a later one, while unset fields are filled in.
func TestBuild_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Output: Output{Mode: ModeDebug}},
		&StructuredConfig{Output: Output{Mode: ModeURL, QRSize: 256}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, ModeDebug, cfg.Output.Mode)
	assert.Equal(t, 256, cfg.Output.QRSize)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("AOTP_OUTPUT_MODE", "url")
	t.Setenv("AOTP_SCANNER_TIMEOUT", "5s")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, ModeURL, b.configs[0].Output.Mode)
	assert.Equal(t, 5*time.Second, b.configs[0].Scanner.Timeout)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"dump", "x.png"}))
	assert.Len(t, b.configs, 1)
}

func TestWithFlags_SetsError_WhenUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"dump", "-no-such-flag"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"output": map[string]any{"qr_size": 300},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, 300, b.configs[1].Output.QRSize)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()
	assert.Error(t, b.err)
}

// TestWithJSON_UsesHighestPriorityPath verifies that the path from the first
// source that sets one is used.
func TestWithJSON_UsesHighestPriorityPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"log": map[string]any{"level": "debug"}})
	second := writeTempJSONConfig(t, map[string]any{"log": map[string]any{"level": "error"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "debug", b.configs[2].Log.Level)
}

func TestWithJSON_DoesNotAppend_WhenErrorAlreadySet(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{})

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	assert.Len(t, b.configs, 1)
}

// ── GetConfig ─────────────────────────────────────────────────────────────────

func TestGetConfig_AppliesDefaults(t *testing.T) {
	cfg, err := GetConfig([]string{"dump", "a.png"})
	require.NoError(t, err)

	assert.Equal(t, CommandDump, cfg.Command)
	assert.Equal(t, []string{"a.png"}, cfg.Inputs)
	assert.Equal(t, ModePlain, cfg.Output.Mode)
	assert.Equal(t, 512, cfg.Output.QRSize)
	assert.Equal(t, 10, cfg.Output.PerPayload)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Scanner.Timeout)
	assert.Positive(t, cfg.Scanner.Workers)
}

func TestGetConfig_Precedence(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"output":  map[string]any{"mode": "url", "qr_size": 128, "per_payload": 3},
		"scanner": map[string]any{"timeout": "2s"},
	})
	t.Setenv("AOTP_CONFIG", path)
	t.Setenv("AOTP_OUTPUT_QR_SIZE", "256")

	cfg, err := GetConfig([]string{"encode", "-debug", "x"})
	require.NoError(t, err)

	assert.Equal(t, ModeDebug, cfg.Output.Mode, "flag beats json")
	assert.Equal(t, 256, cfg.Output.QRSize, "env beats json")
	assert.Equal(t, 3, cfg.Output.PerPayload, "json beats default")
	assert.Equal(t, 2*time.Second, cfg.Scanner.Timeout)
}

func TestGetConfig_Invalid(t *testing.T) {
	_, err := GetConfig([]string{"dump"})
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = GetConfig([]string{"frobnicate", "x"})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = GetConfig([]string{"dump", "-mode", "fancy", "x"})
	assert.ErrorIs(t, err, ErrInvalidOutputConfigs)

	_, err = GetConfig([]string{"dump", "-workers", "-1", "x"})
	assert.ErrorIs(t, err, ErrInvalidScannerConfigs)

	cfg, err := GetConfig([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, CommandVersion, cfg.Command)
}
