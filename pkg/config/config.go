// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for vidscale.
type Config struct {
	// External tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Output codec priority, tried in order; the first codec the ffmpeg
	// build can initialize wins.
	CodecPriority []string `yaml:"codec_priority"`

	// Resolution ceiling for upscaled output.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// Default interpolation method.
	Interpolation string `yaml:"interpolation"`

	// Rebuild-variant encode settings.
	RebuildCRF    int    `yaml:"rebuild_crf"`
	RebuildPreset string `yaml:"rebuild_preset"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values. Modern, widely
// compatible codecs come first; legacy fallbacks last.
func Defaults() Config {
	return Config{
		CodecPriority: []string{"libx264", "libopenh264", "mpeg4", "mjpeg"},
		MaxWidth:      7680,
		MaxHeight:     4320,
		Interpolation: "cubic",
		RebuildCRF:    20,
		RebuildPreset: "slow",
		LogLevel:      "info",
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
