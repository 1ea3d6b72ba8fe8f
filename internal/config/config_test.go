package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ViewportConfig{X: 100, Y: 100, Width: 960, Height: 640}, cfg.Viewport)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "none", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
viewport:
  width: 320
input:
  fragment: true
output:
  format: json
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, ViewportConfig{X: 100, Y: 100, Width: 320, Height: 640}, cfg.Viewport)
	assert.True(t, cfg.Input.Fragment)
	assert.False(t, cfg.Input.KeepWhitespace)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "viewport:\n  depth: 3\n"},
		{"zero width", "viewport:\n  width: 0\n"},
		{"negative height", "viewport:\n  height: -1\n"},
		{"bad format", "output:\n  format: xml\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"not yaml", "viewport: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxlayout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewport:\n  x: 0\n  y: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Viewport.X)
	assert.Equal(t, 960.0, cfg.Viewport.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Viewport.Width = 500
	data, err := Dump(cfg)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

type syncBuffer struct {
	data []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *syncBuffer) Sync() error { return nil }

func TestPrepareLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantInfo  bool
		wantDebug bool
	}{
		{"none", false, false},
		{"normal", true, false},
		{"debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf syncBuffer
			log, err := LoggingConfig{Level: tt.level}.PrepareTo(&buf)
			require.NoError(t, err)

			log.Info("info line")
			log.Debug("debug line")
			out := string(buf.data)
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			if tt.wantInfo {
				assert.Contains(t, out, "INFO")
			}
		})
	}

	_, err := LoggingConfig{Level: "loud"}.PrepareTo(zapcore.AddSync(&syncBuffer{}))
	assert.Error(t, err)
}

func TestPrepareWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxlayout.log")
	var console syncBuffer

	log, err := LoggingConfig{Level: "normal", File: path, MaxSize: 1}.PrepareTo(&console)
	require.NoError(t, err)
	log.Info("to both", zap.Int("boxes", 3))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, string(data), `"boxes":3`)
	assert.Contains(t, string(console.data), "to both")
}

func TestValidateRotationLimits(t *testing.T) {
	assert.Error(t, LoggingConfig{Level: "normal", MaxSize: -1}.Validate())
	assert.NoError(t, LoggingConfig{Level: "debug", File: "x.log", MaxBackups: 2}.Validate())
}
