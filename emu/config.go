package emu

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"ntsctv/emu/log"
	"ntsctv/hw/shaders"
)

type Config struct {
	Video   VideoConfig   `toml:"video"`
	Pattern PatternConfig `toml:"pattern"`

	// Not persisted, injected by the command line.
	Headless  bool   `toml:"-"`
	MaxFrames uint32 `toml:"-"`
}

type VideoConfig struct {
	Scale        int    `toml:"scale"`
	DisableVSync bool   `toml:"disable_vsync"`
	Monitor      int32  `toml:"monitor"`
	Shader       string `toml:"shader"`
}

func (vcfg *VideoConfig) Check() {
	if vcfg.Scale <= 0 {
		vcfg.Scale = 2
	}
	if vcfg.Shader == "" {
		vcfg.Shader = shaders.DefaultName
	}
	if !slices.Contains(shaders.Names(), vcfg.Shader) {
		log.ModEmu.Warnf("Invalid shader name %q, fallback to %q", vcfg.Shader, shaders.DefaultName)
		vcfg.Shader = shaders.DefaultName
	}
}

// PatternConfig controls the wavy checkerboard producer.
type PatternConfig struct {
	Amplitude float64 `toml:"amplitude"`
	FreqX     float64 `toml:"freq_x"`
	FreqY     float64 `toml:"freq_y"`
	Speed     float64 `toml:"speed"`
}

func (pcfg *PatternConfig) Check() {
	if pcfg.Amplitude == 0 {
		pcfg.Amplitude = 8.0
	}
	if pcfg.FreqX == 0 {
		pcfg.FreqX = 0.09
	}
	if pcfg.FreqY == 0 {
		pcfg.FreqY = 0.11
	}
	if pcfg.Speed == 0 {
		pcfg.Speed = 0.12
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("ntsctv")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

func readConfig(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func writeConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// LoadConfigOrDefault loads the configuration from the ntsctv config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	cfg, err := readConfig(filepath.Join(ConfigDir, cfgFilename))
	if err != nil {
		cfg = Config{}
	}
	cfg.Video.Check()
	cfg.Pattern.Check()
	return cfg
}

// SaveConfig into the ntsctv config directory.
func SaveConfig(cfg Config) error {
	return writeConfig(filepath.Join(ConfigDir, cfgFilename), cfg)
}
