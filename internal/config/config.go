package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and render settings for the preview
// tools.
type Config struct {
	// Paths
	Input  string `json:"input"`
	Output string `json:"output"`

	// Texture options
	Filter        string  `json:"filter"` // "ewa" or "trilinear"
	Wrap          string  `json:"wrap"`   // "repeat", "clamp" or "black"
	Scale         float64 `json:"scale"`
	Gamma         *bool   `json:"gamma,omitempty"` // nil = auto by extension
	MaxAnisotropy float64 `json:"max_anisotropy"`

	// Render settings
	Mode        string `json:"mode"` // "panorama" or "sphere"
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values until Resolve fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input   string
	Output  string
	Mode    string
	Filter  string
	Wrap    string
	Width   int
	Workers int
}

// Resolve applies flag overrides and fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Filter != "" {
		c.Filter = flags.Filter
	}
	if flags.Wrap != "" {
		c.Wrap = flags.Wrap
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Mode == "" {
		c.Mode = "panorama"
	}
	if c.Filter == "" {
		c.Filter = "ewa"
	}
	if c.Wrap == "" {
		c.Wrap = "repeat"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.MaxAnisotropy <= 0 {
		c.MaxAnisotropy = 8
	}
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		if c.Mode == "sphere" {
			c.Height = c.Width
		} else {
			c.Height = c.Width / 2
		}
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Output == "" {
		c.Output = "preview.webp"
	}
}
