package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/olivierh59500/particles-background/backdrop"
)

// Run modes
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeSnapshot = "snapshot"
	ModeServe    = "serve"
)

const (
	maxDimension = 4096
	maxTicks     = 3600
	envPrefix    = "BACKDROP_"
)

var ErrBadSize = errors.New("invalid size")

// Config holds every run setting. Precedence, lowest first: defaults, the
// JSON file, the environment (and .env), command-line flags.
type Config struct {
	Mode       string  `json:"mode"`
	Theme      string  `json:"theme"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Seed       int64   `json:"seed"`
	Opacity    float64 `json:"opacity"`
	Turbulence float64 `json:"turbulence"` // px of Perlin offset on the night wave
	Overlay    bool    `json:"overlay"`
	Ticks      int     `json:"ticks"`
	Output     string  `json:"output"`
	Addr       string  `json:"addr"`
	Debug      bool    `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Mode:    ModeWindow,
		Theme:   backdrop.ThemeNight.String(),
		Width:   800,
		Height:  600,
		Opacity: 0.8,
		Ticks:   120,
		Output:  "backdrop.png",
		Addr:    ":8080",
	}
}

// ThemeValue parses the configured theme.
func (c Config) ThemeValue() (backdrop.Theme, error) {
	return backdrop.ParseTheme(c.Theme)
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeWindow, ModeTerminal, ModeSnapshot, ModeServe:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := c.ThemeValue(); err != nil {
		return err
	}
	if err := checkSize(c.Width, c.Height); err != nil {
		return err
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity out of range 0-1 (got %.2f)", c.Opacity)
	}
	if c.Turbulence < 0 || c.Turbulence > backdrop.MaxWaveTurbulence {
		return fmt.Errorf("turbulence out of range 0-%g (got %.2f)", backdrop.MaxWaveTurbulence, c.Turbulence)
	}
	if c.Ticks < 0 || c.Ticks > maxTicks {
		return fmt.Errorf("ticks out of range 0-%d (got %d)", maxTicks, c.Ticks)
	}
	return nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w > maxDimension || h > maxDimension {
		return fmt.Errorf("%w: %dx%d (1-%d per side)", ErrBadSize, w, h, maxDimension)
	}
	return nil
}

// LoadConfig reads a JSON config over cfg. Missing keys keep their value.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SaveConfig writes cfg as indented JSON.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// loadEnv merges the process environment with an optional dotenv file.
// Real environment variables win over the file.
func loadEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	if path != "" {
		vals, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

// applyEnv overrides cfg from BACKDROP_* variables.
func applyEnv(cfg *Config, env map[string]string) error {
	str := func(key string, dst *string) {
		if v, ok := env[envPrefix+key]; ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, set func(string) error) error {
		v, ok := env[envPrefix+key]
		if !ok || v == "" {
			return nil
		}
		if err := set(v); err != nil {
			return fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, err)
		}
		return nil
	}

	str("MODE", &cfg.Mode)
	str("THEME", &cfg.Theme)
	str("OUTPUT", &cfg.Output)
	str("ADDR", &cfg.Addr)

	return errors.Join(
		num("WIDTH", func(v string) (err error) { cfg.Width, err = strconv.Atoi(v); return }),
		num("HEIGHT", func(v string) (err error) { cfg.Height, err = strconv.Atoi(v); return }),
		num("TICKS", func(v string) (err error) { cfg.Ticks, err = strconv.Atoi(v); return }),
		num("SEED", func(v string) (err error) { cfg.Seed, err = strconv.ParseInt(v, 10, 64); return }),
		num("OPACITY", func(v string) (err error) { cfg.Opacity, err = strconv.ParseFloat(v, 64); return }),
		num("TURBULENCE", func(v string) (err error) { cfg.Turbulence, err = strconv.ParseFloat(v, 64); return }),
		num("OVERLAY", func(v string) (err error) { cfg.Overlay, err = strconv.ParseBool(v); return }),
		num("DEBUG", func(v string) (err error) { cfg.Debug, err = strconv.ParseBool(v); return }),
	)
}

// parseConfig resolves the full configuration for a command line.
func parseConfig(args []string, stderr io.Writer) (Config, string, error) {
	def := DefaultConfig()
	fsFlags := flag.NewFlagSet("particles-background", flag.ContinueOnError)
	fsFlags.SetOutput(stderr)

	var (
		configPath = fsFlags.String("config", "", "JSON config file")
		envPath    = fsFlags.String("env", ".env", "dotenv file with BACKDROP_* overrides")
		flagged    Config
	)
	fsFlags.StringVar(&flagged.Mode, "mode", def.Mode, "window, terminal, snapshot or serve")
	fsFlags.StringVar(&flagged.Theme, "theme", def.Theme, "night or glyphs")
	fsFlags.IntVar(&flagged.Width, "width", def.Width, "window or image width")
	fsFlags.IntVar(&flagged.Height, "height", def.Height, "window or image height")
	fsFlags.Int64Var(&flagged.Seed, "seed", def.Seed, "random seed (0 = time based)")
	fsFlags.Float64Var(&flagged.Opacity, "opacity", def.Opacity, "background opacity 0-1")
	fsFlags.Float64Var(&flagged.Turbulence, "turbulence", def.Turbulence, "Perlin wave turbulence in px (0 = off)")
	fsFlags.BoolVar(&flagged.Overlay, "overlay", def.Overlay, "transparent click-through window")
	fsFlags.IntVar(&flagged.Ticks, "ticks", def.Ticks, "ticks simulated before a snapshot")
	fsFlags.StringVar(&flagged.Output, "out", def.Output, "snapshot PNG path")
	fsFlags.StringVar(&flagged.Addr, "addr", def.Addr, "serve listen address")
	fsFlags.BoolVar(&flagged.Debug, "debug", def.Debug, "write logs to "+logDir)

	if err := fsFlags.Parse(args); err != nil {
		return Config{}, "", err
	}

	cfg := def
	if *configPath != "" {
		if err := LoadConfig(*configPath, &cfg); err != nil {
			return Config{}, "", err
		}
	}
	env, err := loadEnv(*envPath)
	if err != nil {
		return Config{}, "", err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, "", err
	}

	fsFlags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = flagged.Mode
		case "theme":
			cfg.Theme = flagged.Theme
		case "width":
			cfg.Width = flagged.Width
		case "height":
			cfg.Height = flagged.Height
		case "seed":
			cfg.Seed = flagged.Seed
		case "opacity":
			cfg.Opacity = flagged.Opacity
		case "turbulence":
			cfg.Turbulence = flagged.Turbulence
		case "overlay":
			cfg.Overlay = flagged.Overlay
		case "ticks":
			cfg.Ticks = flagged.Ticks
		case "out":
			cfg.Output = flagged.Output
		case "addr":
			cfg.Addr = flagged.Addr
		case "debug":
			cfg.Debug = flagged.Debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	path := *configPath
	if path == "" {
		path = defaultConfigFile
	}
	return cfg, path, nil
}

const defaultConfigFile = "backdrop.json"
