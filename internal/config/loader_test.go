package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultWindowWidth, cfg.Window.Width)
	assert.Equal(t, DefaultTPS, cfg.Window.TPS)
	assert.Len(t, cfg.Cloud.Images, 14)
	assert.Equal(t, 0.9, cfg.Cloud.Opacity)
	assert.Equal(t, 0.1, cfg.Cloud.RotationX)
	assert.Equal(t, 0.15, cfg.Cloud.RotationY)
	assert.Equal(t, 3*time.Second, cfg.Splash.Duration)
	assert.True(t, cfg.Splash.Enabled)
	assert.Equal(t, DefaultLoaderTimeout, cfg.Loader.Timeout)
	assert.NoError(t, Validate(cfg))
}

func TestDefaultConfig_ImagesAreCopied(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cloud.Images[0] = "changed"
	assert.NotEqual(t, "changed", DefaultImages[0])
}

func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "portfolio.yaml", `window:
  width: 640
cloud:
  images:
    - icons/go.png
    - https://example.com/rust.svg
  seed: 42
splash:
  duration: 1500ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, DefaultWindowHeight, cfg.Window.Height)
	assert.Equal(t, []string{"icons/go.png", "https://example.com/rust.svg"}, cfg.Cloud.Images)
	assert.Equal(t, uint64(42), cfg.Cloud.Seed)
	assert.Equal(t, 1500*time.Millisecond, cfg.Splash.Duration)
	assert.Equal(t, DefaultMaxConcurrent, cfg.Loader.MaxConcurrent)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "portfolio.yaml", "window: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "portfolio.yaml", "cloud:\n  opacity: 1.5\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "cloud.opacity")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window.width/height"},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }, "window.tps"},
		{"bad background", func(c *Config) { c.Window.Background = "red" }, "window.background"},
		{"zero hz", func(c *Config) { c.Headless.Hz = 0 }, "headless.hz"},
		{"inverted radius", func(c *Config) { c.Cloud.RadiusMin, c.Cloud.RadiusMax = 5, 3 }, "cloud.radius_min/radius_max"},
		{"negative scale", func(c *Config) { c.Cloud.Scale = -1 }, "cloud.scale"},
		{"blank image", func(c *Config) { c.Cloud.Images = []string{"a", " "} }, "cloud.images[1]"},
		{"camera inside cloud", func(c *Config) { c.Camera.Distance = 4 }, "camera.distance"},
		{"wide fov", func(c *Config) { c.Camera.FOVDegrees = 180 }, "camera.fov_degrees"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }, "camera.near/far"},
		{"zero concurrency", func(c *Config) { c.Loader.MaxConcurrent = 0 }, "loader.max_concurrent"},
		{"negative timeout", func(c *Config) { c.Loader.Timeout = -time.Second }, "loader.timeout"},
		{"negative splash", func(c *Config) { c.Splash.Duration = -time.Second }, "splash.duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := Validate(&cfg)
			require.Error(t, err)

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidate_EmptyImageListAllowed(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cloud.Images = nil
	assert.NoError(t, Validate(&cfg))
}

func TestReadEnvFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, ".env", "PORTFOLIO_LOG_LEVEL=debug\nPORTFOLIO_ICONS=a.png, b.svg\n")
	env, err := ReadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", env[EnvLogLevel])
	assert.Equal(t, "a.png, b.svg", env[EnvIcons])
}

func TestReadEnvFile_Missing(t *testing.T) {
	t.Parallel()

	env, err := ReadEnvFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestApplyEnv_FromMap(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	err := ApplyEnv(&cfg, map[string]string{
		EnvIcons:         "one.png,,  two.svg ",
		EnvLogLevel:      "warn",
		EnvLogFormat:     "json",
		EnvHeadlessHz:    "30",
		EnvMaxConcurrent: "2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"one.png", "two.svg"}, cfg.Cloud.Images)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Headless.Hz)
	assert.Equal(t, 2, cfg.Loader.MaxConcurrent)
}

func TestApplyEnv_ProcessWins(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, map[string]string{EnvLogLevel: "debug"}))
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestApplyEnv_BadInteger(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	err := ApplyEnv(&cfg, map[string]string{EnvHeadlessHz: "fast"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a , ,b,"))
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := ValidationError{Field: "window.tps", Message: "must be positive"}
	assert.Equal(t, "validation error: window.tps: must be positive", err.Error())
}
