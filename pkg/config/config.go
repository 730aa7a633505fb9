// Package config loads formfill settings from YAML. Values missing from the
// file keep their defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// Config is the top-level configuration.
type Config struct {
	Seed              int64          `yaml:"seed"`
	Generate          GenerateConfig `yaml:"generate"`
	AffirmativeTokens []string       `yaml:"affirmative_tokens"`
	Dataset           DatasetConfig  `yaml:"dataset"`
	Server            ServerConfig   `yaml:"server"`
	Browser           BrowserConfig  `yaml:"browser"`
	Report            ReportConfig   `yaml:"report"`
}

// GenerateConfig holds the ranges used when a control declares no bounds.
type GenerateConfig struct {
	TextMinLength int     `yaml:"text_min_length"`
	TextMaxLength int     `yaml:"text_max_length"`
	IntegerMin    float64 `yaml:"integer_min"`
	IntegerMax    float64 `yaml:"integer_max"`
	MoneyMin      float64 `yaml:"money_min"`
	MoneyMax      float64 `yaml:"money_max"`
	DecimalMin    float64 `yaml:"decimal_min"`
	DecimalMax    float64 `yaml:"decimal_max"`
	Decimals      int     `yaml:"decimals"`
}

// DatasetConfig points at an external reference dataset. An empty path uses
// the embedded one; ".db", ".sqlite" and ".sqlite3" files are read as SQLite.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls `formfill serve`.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	GeoRoutePath string        `yaml:"geo_route_path"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// BrowserConfig controls `formfill browse`.
type BrowserConfig struct {
	Headless   bool          `yaml:"headless"`
	Bin        string        `yaml:"bin"`
	ControlURL string        `yaml:"control_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ReportConfig controls fill reports.
type ReportConfig struct {
	Format      string `yaml:"format"`
	TemplateDir string `yaml:"template_dir"`
}

// Default returns the stock configuration.
func Default() *Config {
	d := synth.DefaultDefaults()
	return &Config{
		Generate: GenerateConfig{
			TextMinLength: d.TextMinLength,
			TextMaxLength: d.TextMaxLength,
			IntegerMin:    d.IntegerMin,
			IntegerMax:    d.IntegerMax,
			MoneyMin:      d.MoneyMin,
			MoneyMax:      d.MoneyMax,
			DecimalMin:    d.DecimalMin,
			DecimalMax:    d.DecimalMax,
			Decimals:      d.Decimals,
		},
		AffirmativeTokens: append([]string(nil), orchestrator.DefaultAffirmativeTokens...),
		Server: ServerConfig{
			Addr:         ":8080",
			GeoRoutePath: "/api/geo",
			MaxBodyBytes: 2 << 20,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  time.Minute,
		},
		Report: ReportConfig{Format: "text"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and required values.
func (c *Config) Validate() error {
	var errs []error
	g := c.Generate
	if g.TextMinLength < 0 || g.TextMaxLength <= 0 {
		errs = append(errs, errors.New("generate: text lengths must be positive"))
	}
	if g.IntegerMax < g.IntegerMin {
		errs = append(errs, errors.New("generate: integer_max is below integer_min"))
	}
	if g.MoneyMax < g.MoneyMin {
		errs = append(errs, errors.New("generate: money_max is below money_min"))
	}
	if g.DecimalMax < g.DecimalMin {
		errs = append(errs, errors.New("generate: decimal_max is below decimal_min"))
	}
	if g.Decimals < 0 || g.Decimals > 9 {
		errs = append(errs, errors.New("generate: decimals must be within [0, 9]"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server: addr is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server: max_body_bytes must be > 0"))
	}
	return errors.Join(errs...)
}

// SynthDefaults converts the generate section.
func (c *Config) SynthDefaults() synth.Defaults {
	g := c.Generate
	return synth.Defaults{
		TextMinLength: g.TextMinLength,
		TextMaxLength: g.TextMaxLength,
		IntegerMin:    g.IntegerMin,
		IntegerMax:    g.IntegerMax,
		MoneyMin:      g.MoneyMin,
		MoneyMax:      g.MoneyMax,
		DecimalMin:    g.DecimalMin,
		DecimalMax:    g.DecimalMax,
		Decimals:      g.Decimals,
	}
}

// OpenDataset loads the configured reference dataset.
func (c *Config) OpenDataset(ctx context.Context) (*geo.Dataset, error) {
	path := strings.TrimSpace(c.Dataset.Path)
	if path == "" {
		return geo.DefaultDataset()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return geo.OpenSQLite(ctx, path)
	default:
		return geo.LoadFile(path)
	}
}
