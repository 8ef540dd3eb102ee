package emu

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := Config{
		Video: VideoConfig{
			Scale:        3,
			DisableVSync: true,
			Monitor:      1,
			Shader:       "CRT",
		},
		Pattern: PatternConfig{
			Amplitude: 12,
			FreqX:     0.05,
			FreqY:     0.07,
			Speed:     0.2,
		},
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := writeConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := readConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config round trip (-want +got):\n%s", diff)
	}
}

func TestConfigCheckDefaults(t *testing.T) {
	var cfg Config
	cfg.Video.Check()
	cfg.Pattern.Check()

	if cfg.Video.Scale != 2 {
		t.Errorf("default scale = %d", cfg.Video.Scale)
	}
	if cfg.Video.Shader != "Passthrough" {
		t.Errorf("default shader = %q", cfg.Video.Shader)
	}
	if cfg.Pattern.Amplitude != 8 || cfg.Pattern.FreqX != 0.09 ||
		cfg.Pattern.FreqY != 0.11 || cfg.Pattern.Speed != 0.12 {
		t.Errorf("default pattern = %+v", cfg.Pattern)
	}

	cfg.Video.Shader = "NoSuchShader"
	cfg.Video.Check()
	if cfg.Video.Shader != "Passthrough" {
		t.Errorf("invalid shader not replaced, got %q", cfg.Video.Shader)
	}
}
