// Package config loads portfolio settings from YAML and .env overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abedrayen/Portfolio/iconcloud/sphere"
	"github.com/abedrayen/Portfolio/splash"
)

// Default values for Config.
const (
	DefaultWindowWidth    = 960
	DefaultWindowHeight   = 720
	DefaultTPS            = 60
	DefaultBackground     = "#0a0a14"
	DefaultHeadlessHz     = 60
	DefaultCameraDistance = 10
	DefaultFOVDegrees     = 75
	DefaultNear           = 0.1
	DefaultFar            = 1000
	DefaultMaxConcurrent  = 8
	DefaultMaxTextureSize = 256
	DefaultSVGSize        = 128
	DefaultMaxBytes       = 4 * 1024 * 1024
	DefaultLoaderTimeout  = 15 * time.Second
)

// Environment overrides.
const (
	EnvIcons         = "PORTFOLIO_ICONS"
	EnvLogLevel      = "PORTFOLIO_LOG_LEVEL"
	EnvLogFormat     = "PORTFOLIO_LOG_FORMAT"
	EnvHeadlessHz    = "PORTFOLIO_HEADLESS_HZ"
	EnvMaxConcurrent = "PORTFOLIO_MAX_CONCURRENT"
)

const deviconBase = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/"

// DefaultImages are the skills shown in the cloud.
var DefaultImages = []string{
	deviconBase + "python/python-original.svg",
	deviconBase + "tensorflow/tensorflow-original.svg",
	deviconBase + "keras/keras-original.svg",
	deviconBase + "scikitlearn/scikitlearn-original.svg",
	deviconBase + "pytorch/pytorch-original.svg",
	deviconBase + "jupyter/jupyter-original.svg",
	deviconBase + "express/express-original.svg",
	deviconBase + "react/react-original.svg",
	deviconBase + "nodejs/nodejs-original.svg",
	deviconBase + "mongodb/mongodb-original.svg",
	deviconBase + "wordpress/wordpress-plain.svg",
	deviconBase + "pandas/pandas-original.svg",
	deviconBase + "matplotlib/matplotlib-original.svg",
	deviconBase + "amazonwebservices/amazonwebservices-original-wordmark.svg",
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:      "Portfolio",
			Width:      DefaultWindowWidth,
			Height:     DefaultWindowHeight,
			TPS:        DefaultTPS,
			Background: DefaultBackground,
		},
		Headless: HeadlessConfig{
			Hz:     DefaultHeadlessHz,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Cloud: CloudConfig{
			Images:    append([]string(nil), DefaultImages...),
			RadiusMin: sphere.MinRadius,
			RadiusMax: sphere.MaxRadius,
			RotationX: 0.1,
			RotationY: 0.15,
			Opacity:   0.9,
			Scale:     1,
		},
		Camera: CameraConfig{
			Distance:   DefaultCameraDistance,
			FOVDegrees: DefaultFOVDegrees,
			Near:       DefaultNear,
			Far:        DefaultFar,
		},
		Loader: LoaderConfig{
			MaxConcurrent:  DefaultMaxConcurrent,
			MaxTextureSize: DefaultMaxTextureSize,
			SVGSize:        DefaultSVGSize,
			Timeout:        DefaultLoaderTimeout,
			MaxBytes:       DefaultMaxBytes,
		},
		Splash: SplashConfig{
			Enabled:  true,
			Duration: splash.DefaultDuration,
			Texts:    append([]string(nil), splash.DefaultTexts...),
			Subtitle: splash.DefaultSubtitle,
			Monogram: splash.DefaultMonogram,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadEnvFile returns the key/value pairs of a .env file without touching the
// process environment. A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

// ApplyEnv overrides cfg from env. Process environment variables win over
// entries in env.
func ApplyEnv(cfg *Config, env map[string]string) error {
	get := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}

	if v, ok := get(EnvIcons); ok {
		cfg.Cloud.Images = SplitList(v)
	}
	if v, ok := get(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := get(EnvLogFormat); ok && v != "" {
		cfg.Log.Format = v
	}
	if v, ok := get(EnvHeadlessHz); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: EnvHeadlessHz, Message: "must be an integer"}
		}
		cfg.Headless.Hz = n
	}
	if v, ok := get(EnvMaxConcurrent); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: EnvMaxConcurrent, Message: "must be an integer"}
		}
		cfg.Loader.MaxConcurrent = n
	}
	return Validate(cfg)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return ValidationError{Field: "window.width/height", Message: "must be positive"}
	}
	if cfg.Window.TPS <= 0 {
		return ValidationError{Field: "window.tps", Message: "must be positive"}
	}
	if cfg.Window.Background != "" && !hexColor.MatchString(cfg.Window.Background) {
		return ValidationError{Field: "window.background", Message: "must be #rrggbb"}
	}
	if cfg.Headless.Hz <= 0 {
		return ValidationError{Field: "headless.hz", Message: "must be positive"}
	}
	if cfg.Headless.Width <= 0 || cfg.Headless.Height <= 0 {
		return ValidationError{Field: "headless.width/height", Message: "must be positive"}
	}
	if cfg.Cloud.RadiusMin <= 0 || cfg.Cloud.RadiusMax < cfg.Cloud.RadiusMin {
		return ValidationError{Field: "cloud.radius_min/radius_max", Message: "need 0 < radius_min <= radius_max"}
	}
	if cfg.Cloud.Opacity < 0 || cfg.Cloud.Opacity > 1 {
		return ValidationError{Field: "cloud.opacity", Message: "must be between 0 and 1"}
	}
	if cfg.Cloud.Scale <= 0 {
		return ValidationError{Field: "cloud.scale", Message: "must be positive"}
	}
	for i, img := range cfg.Cloud.Images {
		if strings.TrimSpace(img) == "" {
			return ValidationError{Field: fmt.Sprintf("cloud.images[%d]", i), Message: "required field is empty"}
		}
	}
	if cfg.Camera.Distance <= cfg.Cloud.RadiusMax {
		return ValidationError{Field: "camera.distance", Message: "must be outside the cloud"}
	}
	if cfg.Camera.FOVDegrees <= 0 || cfg.Camera.FOVDegrees >= 180 {
		return ValidationError{Field: "camera.fov_degrees", Message: "must be between 0 and 180"}
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return ValidationError{Field: "camera.near/far", Message: "need 0 < near < far"}
	}
	if cfg.Loader.MaxConcurrent <= 0 {
		return ValidationError{Field: "loader.max_concurrent", Message: "must be positive"}
	}
	if cfg.Loader.MaxTextureSize <= 0 || cfg.Loader.SVGSize <= 0 {
		return ValidationError{Field: "loader.max_texture_size/svg_size", Message: "must be positive"}
	}
	if cfg.Loader.Timeout < 0 {
		return ValidationError{Field: "loader.timeout", Message: "must not be negative"}
	}
	if cfg.Splash.Duration < 0 {
		return ValidationError{Field: "splash.duration", Message: "must not be negative"}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
