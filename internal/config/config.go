package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the service configuration. Values come from the defaults, then
// the optional TOML file, then the environment.
type Config struct {
	Port         int      `toml:"port"`
	DataDir      string   `toml:"data_dir"`
	OutputDir    string   `toml:"output_dir"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	MaxDimension int      `toml:"max_dimension"`
	Workers      int      `toml:"workers"`
	FetchTimeout Duration `toml:"fetch_timeout"`
	WatchCatalog bool     `toml:"watch_catalog"`
	LogLevel     string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		Port:         8080,
		DataDir:      "data",
		OutputDir:    "out",
		Width:        1080,
		Height:       1920,
		MaxDimension: 8192,
		Workers:      runtime.NumCPU(),
		FetchTimeout: Duration(10 * time.Second),
		WatchCatalog: true,
		LogLevel:     "info",
	}
}

// Load reads path over the defaults, applies env overrides and validates.
// An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("load config: read %q: %w", path, err)
		case len(bytes.TrimSpace(data)) > 0:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("load config: PORT: %w", err)
		}
		c.Port = port
	}
	if v, ok := lookup("DATA_DIR"); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := lookup("OUTPUT_DIR"); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("load config: port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("load config: width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.MaxDimension > 0 && (c.Width > c.MaxDimension || c.Height > c.MaxDimension) {
		return fmt.Errorf("load config: %dx%d exceeds max_dimension %d", c.Width, c.Height, c.MaxDimension)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("load config: workers must be positive, got %d", c.Workers)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("load config: fetch_timeout must be positive, got %s", time.Duration(c.FetchTimeout))
	}
	return nil
}

// Duration is a time.Duration written as a string such as "10s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
