// Package config loads tcnviz defaults from an optional TOML file.
//
// The file overrides built-in defaults section by section; anything omitted
// keeps its default. A full file looks like:
//
//	[params]
//	kernel = 3
//	growth = 2.0
//	blocks = 4
//	seed = 42
//
//	[render]
//	width = 800
//	height = 600
//	scale = 2.0
//
//	[render.palette]
//	input = "#2e7d32"
//	hidden = "#1e88e5"
//	output = "#e53935"
//	inactive = "#d6dae2"
//	edge = "#8a919e"
//	background = "#ffffff"
//
// A missing file is not an error; a malformed or out-of-range one is.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// Config carries the file-configurable defaults for all CLI surfaces.
type Config struct {
	Params Params `toml:"params"`
	Render Render `toml:"render"`
}

// Params configures the default architecture.
type Params struct {
	Kernel int     `toml:"kernel"`
	Growth float64 `toml:"growth"`
	Blocks int     `toml:"blocks"`
	Seed   uint64  `toml:"seed"`
}

// Render configures the default viewport and colors.
type Render struct {
	Width   float64        `toml:"width"`
	Height  float64        `toml:"height"`
	Scale   float64        `toml:"scale"`
	Palette render.Palette `toml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := tcn.DefaultParams()
	return Config{
		Params: Params{
			Kernel: p.Kernel,
			Growth: p.Growth,
			Blocks: p.Blocks,
			Seed:   pipeline.DefaultSeed,
		},
		Render: Render{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Scale:   pipeline.DefaultScale,
			Palette: render.DefaultPalette(),
		},
	}
}

// DefaultPath returns the conventional config location
// (e.g. ~/.config/tcnviz/config.toml), or "" if no user config
// directory exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tcnviz", "config.toml")
}

// Load reads the TOML file at path and merges it over the defaults.
// An empty path or a missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the same way the pipeline would, so a bad config
// file fails at startup rather than on first render.
func (c Config) Validate() error {
	p := tcn.Params{Kernel: c.Params.Kernel, Growth: c.Params.Growth, Blocks: c.Params.Blocks}
	if err := p.Validate(); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("viewport %gx%g: dimensions must be positive", c.Render.Width, c.Render.Height)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("scale %g: must be positive", c.Render.Scale)
	}
	if err := c.Render.Palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	return nil
}

// Options converts the configuration into a pipeline options baseline.
// Command flags overlay their values on top of this.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Kernel:  c.Params.Kernel,
		Growth:  c.Params.Growth,
		Blocks:  c.Params.Blocks,
		Seed:    c.Params.Seed,
		Width:   c.Render.Width,
		Height:  c.Render.Height,
		Scale:   c.Render.Scale,
		Palette: c.Render.Palette,
	}
}
