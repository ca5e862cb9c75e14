// Package config holds the tunable constants of the viewer core and loads
// overrides from a YAML file.
package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config collects every knob the viewer core exposes. Zoom factors are
// multiplicative steps; scales multiply page-space units into pixels.
type Config struct {
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	DefaultZoom   float64 `yaml:"default_zoom"`
	ZoomInFactor  float64 `yaml:"zoom_in_factor"`
	ZoomOutFactor float64 `yaml:"zoom_out_factor"`

	// BaseScale multiplies the zoom factor when rendering the main view, so
	// a 100% zoom still renders at display resolution.
	BaseScale float64 `yaml:"base_scale"`

	ThumbnailScale float64 `yaml:"thumbnail_scale"`
	ThumbnailWidth int     `yaml:"thumbnail_width"`

	PopupMargin     float64 `yaml:"popup_margin"`
	PopupEdgeMargin float64 `yaml:"popup_edge_margin"`
	PreviewMaxSize  int     `yaml:"preview_max_size"`

	// MinAssetSize is the page-space width/height below which a placement is
	// treated as a rendering artifact and dropped.
	MinAssetSize float64 `yaml:"min_asset_size"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MinZoom:         0.25,
		MaxZoom:         4.0,
		DefaultZoom:     1.0,
		ZoomInFactor:    1.25,
		ZoomOutFactor:   0.8,
		BaseScale:       2.0,
		ThumbnailScale:  0.2,
		ThumbnailWidth:  150,
		PopupMargin:     15,
		PopupEdgeMargin: 10,
		PreviewMaxSize:  400,
		MinAssetSize:    1.0,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if c.MinZoom <= 0 {
		err = multierr.Append(err, fmt.Errorf("min_zoom %g must be positive", c.MinZoom))
	}
	if c.MaxZoom < c.MinZoom {
		err = multierr.Append(err, fmt.Errorf("max_zoom %g below min_zoom %g", c.MaxZoom, c.MinZoom))
	}
	if c.DefaultZoom < c.MinZoom || c.DefaultZoom > c.MaxZoom {
		err = multierr.Append(err, fmt.Errorf("default_zoom %g outside [%g, %g]", c.DefaultZoom, c.MinZoom, c.MaxZoom))
	}
	if c.ZoomInFactor <= 1 {
		err = multierr.Append(err, fmt.Errorf("zoom_in_factor %g must exceed 1", c.ZoomInFactor))
	}
	if c.ZoomOutFactor <= 0 || c.ZoomOutFactor >= 1 {
		err = multierr.Append(err, fmt.Errorf("zoom_out_factor %g must be in (0, 1)", c.ZoomOutFactor))
	}
	if c.BaseScale <= 0 {
		err = multierr.Append(err, fmt.Errorf("base_scale %g must be positive", c.BaseScale))
	}
	if c.ThumbnailScale <= 0 {
		err = multierr.Append(err, fmt.Errorf("thumbnail_scale %g must be positive", c.ThumbnailScale))
	}
	if c.ThumbnailWidth <= 0 {
		err = multierr.Append(err, fmt.Errorf("thumbnail_width %d must be positive", c.ThumbnailWidth))
	}
	if c.PopupMargin < 0 || c.PopupEdgeMargin < 0 {
		err = multierr.Append(err, fmt.Errorf("popup margins must not be negative"))
	}
	if c.PreviewMaxSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("preview_max_size %d must be positive", c.PreviewMaxSize))
	}
	if c.MinAssetSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("min_asset_size %g must be positive", c.MinAssetSize))
	}
	return err
}

// ClampZoom limits a requested zoom factor to the configured range.
func (c Config) ClampZoom(z float64) float64 {
	if z < c.MinZoom {
		return c.MinZoom
	}
	if z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}
