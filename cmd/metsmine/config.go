package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/gardar/metsmine/pkg/query"
	"github.com/gardar/metsmine/pkg/segment"
)

// Page formats an issue directory can hold.
const (
	FormatALTO  = "alto"
	FormatHOCR  = "hocr"
	FormatDocAI = "docai"
)

const envPrefix = "METSMINE_"

// Config is the query configuration. It is read from a YAML file and then
// overridden by METSMINE_* environment variables.
type Config struct {
	Keywords    []string `yaml:"keywords" env:"KEYWORDS" envSeparator:","`
	Preprocess  string   `yaml:"preprocess" env:"PREPROCESS"`
	Dictionary  string   `yaml:"dictionary" env:"DICTIONARY"`
	Workers     int      `yaml:"workers" env:"WORKERS"`
	ImageExt    string   `yaml:"image_ext" env:"IMAGE_EXT"`
	OutputDir   string   `yaml:"output_dir" env:"OUTPUT_DIR"`
	JPEGQuality int      `yaml:"jpeg_quality" env:"JPEG_QUALITY"`
	LogLevel    string   `yaml:"log_level" env:"LOG_LEVEL"`
	PageFormat  string   `yaml:"page_format" env:"PAGE_FORMAT"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	seg := segment.DefaultConfig()
	return Config{
		Preprocess:  "normalize",
		Workers:     runtime.NumCPU(),
		ImageExt:    seg.ImageExt,
		OutputDir:   seg.OutputDir,
		JPEGQuality: seg.Quality,
		LogLevel:    "info",
		PageFormat:  FormatALTO,
	}
}

// loadConfig reads the YAML file at path over the defaults and applies the
// environment overrides. An empty path skips the file. A nil environ reads
// the process environment.
func loadConfig(path string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := query.ParseNormalizer(c.Preprocess); err != nil {
		errs = append(errs, fmt.Errorf("preprocess: %w", err))
	}
	switch c.PageFormat {
	case FormatALTO, FormatHOCR, FormatDocAI:
	default:
		errs = append(errs, fmt.Errorf("page_format: unknown format %q", c.PageFormat))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers: must be at least 1, got %d", c.Workers))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality: must be between 1 and 100, got %d", c.JPEGQuality))
	}
	if !strings.HasPrefix(c.ImageExt, ".") {
		errs = append(errs, fmt.Errorf("image_ext: must start with a dot, got %q", c.ImageExt))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Normalizer returns the configured word normalizer.
func (c Config) Normalizer() query.Normalizer {
	n, err := query.ParseNormalizer(c.Preprocess)
	if err != nil {
		return query.None
	}
	return n
}

// Segment returns the crop configuration.
func (c Config) Segment() segment.Config {
	return segment.Config{ImageExt: c.ImageExt, OutputDir: c.OutputDir, Quality: c.JPEGQuality}
}
