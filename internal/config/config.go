// Package config holds the run configuration of the framekit CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/framekit/internal/timeline"
)

type Config struct {
	InputPath    string  `yaml:"input"`
	ScriptPath   string  `yaml:"script"`
	OutDir       string  `yaml:"out_dir"`
	ImageFormat  string  `yaml:"image_format"`
	FrameName    string  `yaml:"frame_name"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FPS          float64 `yaml:"fps"`
	Workers      int     `yaml:"workers"`
	HighQuality  bool    `yaml:"high_quality"`
	Step         int     `yaml:"step"`
	PageDuration float64 `yaml:"page_duration"`
	JPEGQuality  int     `yaml:"jpeg_quality"`
	OutputVideo  string  `yaml:"video"`
	VideoEncoder string  `yaml:"encoder"`
	Quality      int     `yaml:"quality"`
	ShowStats    bool    `yaml:"stats"`
	Mqtt         Mqtt    `yaml:"mqtt"`
}

// Mqtt configures progress publishing. Publishing is off when URL is empty.
type Mqtt struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ImageFormat:  timeline.DefaultImageFormat,
		FrameName:    timeline.DefaultFrameName,
		Width:        timeline.DefaultResolution.Width,
		Height:       timeline.DefaultResolution.Height,
		FPS:          timeline.DefaultFrameRate,
		Step:         1,
		PageDuration: 3,
		JPEGQuality:  90,
		VideoEncoder: "auto",
		Quality:      80,
		Mqtt: Mqtt{
			ClientID: "framekit",
			Topic:    "framekit/progress",
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", c.FPS)
	}
	if c.Step < 1 {
		return fmt.Errorf("step must be at least 1, got %d", c.Step)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch strings.ToLower(c.ImageFormat) {
	case ".png", ".jpg", ".jpeg", "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("unsupported image format %q", c.ImageFormat)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be in [1, 100], got %d", c.Quality)
	}
	if c.Mqtt.URL != "" && c.Mqtt.Topic == "" {
		return fmt.Errorf("mqtt topic is required when url is set")
	}
	return nil
}

// Resolution returns the configured frame size.
func (c *Config) Resolution() timeline.Resolution {
	return timeline.Resolution{Width: c.Width, Height: c.Height}
}

// TimelineOptions returns the timeline options the configuration implies.
func (c *Config) TimelineOptions() []timeline.Option {
	format := strings.ToLower(c.ImageFormat)
	if !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	s := timeline.SettingsOf(
		timeline.KeyImageFormat, format,
		timeline.KeyFrameName, c.FrameName,
		timeline.KeyResolution, c.Resolution(),
	)
	opts := []timeline.Option{
		timeline.WithFrameRate(c.FPS),
		timeline.WithSettings(s),
		timeline.WithHighQuality(c.HighQuality),
	}
	if c.OutDir != "" {
		opts = append(opts, timeline.WithOutDir(c.OutDir))
	}
	if c.Workers > 0 {
		opts = append(opts, timeline.WithWorkers(c.Workers))
	}
	return opts
}
