// Package config handles mathpaint configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all session settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Shaders    ShaderConfig     `yaml:"shaders"`
	Render     RenderConfig     `yaml:"render"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ShaderConfig holds the GLSL source paths.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	ClearColor     [4]float32 `yaml:"clear_color"`
	PositionAttrib string     `yaml:"position_attribute"`
	UVAttrib       string     `yaml:"uv_attribute"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Painting With Maths",
			Width:  640,
			Height: 480,
			VSync:  true,
		},
		Shaders: ShaderConfig{
			Vertex:   "shaders/canvas.glsl",
			Fragment: "shaders/paint.glsl",
		},
		Render: RenderConfig{
			ClearColor:     [4]float32{0.5, 0.8, 0.4, 1.0},
			PositionAttrib: "vertexPosition",
			UVAttrib:       "vertexUV",
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "mathpaint",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the session cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Shaders.Vertex == "" {
		errs = append(errs, errors.New("vertex shader path is empty"))
	}
	if c.Shaders.Fragment == "" {
		errs = append(errs, errors.New("fragment shader path is empty"))
	}
	if c.Render.PositionAttrib == "" || c.Render.UVAttrib == "" {
		errs = append(errs, errors.New("attribute names must not be empty"))
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("clear_color[%d] = %v out of range [0, 1]", i, v))
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
