package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/heightfield/internal/heightmap"
	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
)

// Config holds the render configuration.
type Config struct {
	Version   string `json:"version"`
	Flags     string `json:"flags"`     // "|" separated, e.g. "large_biomes"
	Dimension string `json:"dimension"` // "overworld", "nether" or "end"
	Seed      int64  `json:"seed"`
	Mode      string `json:"mode"` // "block" or "approx"

	X      int `json:"x"`
	Z      int `json:"z"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Workers int    `json:"workers"`
	Upscale bool   `json:"upscale"` // scale approx images to block resolution
	Compare bool   `json:"compare"` // cross-check block and approx maps
	OutDir  string `json:"out_dir"`
	Name    string `json:"name"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:   gen.Newest.String(),
		Dimension: gen.Overworld.String(),
		Mode:      heightmap.ModeBlock.String(),
		Width:     256,
		Height:    256,
		Workers:   4,
		OutDir:    "./out",
		Name:      "heightmap",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["version"] {
		cfg.Version = fromFile.Version
	}
	if !explicitFlags["flags"] {
		cfg.Flags = fromFile.Flags
	}
	if !explicitFlags["dimension"] {
		cfg.Dimension = fromFile.Dimension
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["mode"] {
		cfg.Mode = fromFile.Mode
	}
	if !explicitFlags["x"] {
		cfg.X = fromFile.X
	}
	if !explicitFlags["z"] {
		cfg.Z = fromFile.Z
	}
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["upscale"] {
		cfg.Upscale = fromFile.Upscale
	}
	if !explicitFlags["compare"] {
		cfg.Compare = fromFile.Compare
	}
	if !explicitFlags["out"] {
		cfg.OutDir = fromFile.OutDir
	}
	if !explicitFlags["name"] {
		cfg.Name = fromFile.Name
	}
}

// World holds the parsed world selection of a Config.
type World struct {
	Version   gen.Version
	Flags     gen.Flags
	Dimension gen.Dimension
	Seed      uint64
}

// World parses the world selection.
func (c *Config) World() (World, error) {
	v, err := gen.ParseVersion(c.Version)
	if err != nil {
		return World{}, fmt.Errorf("version: %w", err)
	}
	f, err := gen.ParseFlags(c.Flags)
	if err != nil {
		return World{}, fmt.Errorf("flags: %w", err)
	}
	d, err := gen.ParseDimension(c.Dimension)
	if err != nil {
		return World{}, fmt.Errorf("dimension: %w", err)
	}
	return World{Version: v, Flags: f, Dimension: d, Seed: uint64(c.Seed)}, nil
}

// Region parses the sampled region.
func (c *Config) Region() (heightmap.Region, error) {
	m, err := heightmap.ParseMode(c.Mode)
	if err != nil {
		return heightmap.Region{}, err
	}
	reg := heightmap.Region{X: c.X, Z: c.Z, Width: c.Width, Height: c.Height, Mode: m}
	return reg, reg.Validate()
}

// Validate checks that every field parses and is in range.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.World(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Region(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Name == "" || c.Name != filepath.Base(c.Name) {
		errs = append(errs, fmt.Errorf("invalid output name %q", c.Name))
	}
	return errors.Join(errs...)
}

// Load fetches the JSON config at src into cfg. src is anything go-getter
// understands: a local path, an https:// URL, a git:: or s3:: source.
func Load(ctx context.Context, src string, cfg *Config, log *slog.Logger) error {
	tmp, err := os.MkdirTemp("", "heightfield-config-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}

	dst := filepath.Join(tmp, "config.json")
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: get.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch config %s: %w", src, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	log.Info("loaded config", "src", src)
	return nil
}
