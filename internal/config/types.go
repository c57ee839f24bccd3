package config

import (
	"fmt"
	"time"
)

// Config represents portfolio.yaml.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Headless HeadlessConfig `yaml:"headless"`
	Cloud    CloudConfig    `yaml:"cloud"`
	Camera   CameraConfig   `yaml:"camera"`
	Loader   LoaderConfig   `yaml:"loader"`
	Splash   SplashConfig   `yaml:"splash"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig configures the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	// Background is a #rrggbb colour.
	Background string `yaml:"background"`
}

// HeadlessConfig configures the no-window runner.
type HeadlessConfig struct {
	Hz     int    `yaml:"hz"`
	Ticks  uint64 `yaml:"ticks"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// ReloadEvery supersedes the current batch every N ticks; 0 disables.
	ReloadEvery uint64 `yaml:"reload_every"`
}

// CloudConfig configures the icon cloud.
type CloudConfig struct {
	Images    []string `yaml:"images"`
	RadiusMin float64  `yaml:"radius_min"`
	RadiusMax float64  `yaml:"radius_max"`
	// RotationX and RotationY are radians per second.
	RotationX float64 `yaml:"rotation_x"`
	RotationY float64 `yaml:"rotation_y"`
	Opacity   float64 `yaml:"opacity"`
	Scale     float64 `yaml:"scale"`
	// Seed fixes the layout; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// CameraConfig places the camera on +Z looking at the origin.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`
	FOVDegrees float64 `yaml:"fov_degrees"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

// LoaderConfig configures texture fetching.
type LoaderConfig struct {
	MaxConcurrent  int `yaml:"max_concurrent"`
	MaxTextureSize int `yaml:"max_texture_size"`
	SVGSize        int `yaml:"svg_size"`
	// Timeout bounds one HTTP request; 0 leaves requests unbounded.
	Timeout   time.Duration `yaml:"timeout"`
	MaxBytes  int64         `yaml:"max_bytes"`
	Root      string        `yaml:"root"`
	UserAgent string        `yaml:"user_agent"`
}

// SplashConfig configures the intro sequence.
type SplashConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Duration time.Duration `yaml:"duration"`
	Texts    []string      `yaml:"texts"`
	Subtitle string        `yaml:"subtitle"`
	Monogram string        `yaml:"monogram"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}
