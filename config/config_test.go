package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	body := "max_zoom: 8.0\nthumbnail_width: 200\npopup_margin: 20\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxZoom != 8.0 || cfg.ThumbnailWidth != 200 || cfg.PopupMargin != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.MinZoom != 0.25 || cfg.BaseScale != 2.0 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(path, []byte("min_zoom: -1\nzoom_out_factor: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("invalid config should not load")
	}
	// Both violations should be reported, not just the first.
	if !strings.Contains(err.Error(), "min_zoom") || !strings.Contains(err.Error(), "zoom_out_factor") {
		t.Fatalf("expected aggregated errors, got: %v", err)
	}
}

func TestClampZoom(t *testing.T) {
	cfg := Default()
	if got := cfg.ClampZoom(0.01); got != cfg.MinZoom {
		t.Fatalf("clamp low = %g", got)
	}
	if got := cfg.ClampZoom(100); got != cfg.MaxZoom {
		t.Fatalf("clamp high = %g", got)
	}
	if got := cfg.ClampZoom(1.5); got != 1.5 {
		t.Fatalf("in-range zoom changed: %g", got)
	}
}
