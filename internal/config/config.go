// Package config holds the tilepack configuration file format.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ganeshsahu2020/EcoListing/mb"
	"github.com/ganeshsahu2020/EcoListing/pack"
	"github.com/goccy/go-yaml"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Logger  LoggerConfig  `yaml:"logger"`
	Source  SourceConfig  `yaml:"source"`
	Archive ArchiveConfig `yaml:"archive"`
	Writer  WriterConfig  `yaml:"writer"`
}

type LoggerConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	JSON  bool   `yaml:"json"`
}

// SourceConfig describes the input tile tree.
type SourceConfig struct {
	Root      string `yaml:"root"`
	Extension string `yaml:"extension"`
}

// ArchiveConfig describes the output file and its fixed metadata.
type ArchiveConfig struct {
	Path           string `yaml:"path"`
	Name           string `yaml:"name"`
	Format         string `yaml:"format"`
	Type           string `yaml:"type"`
	Version        string `yaml:"version"`
	Description    string `yaml:"description"`
	Bounds         string `yaml:"bounds"`
	Center         string `yaml:"center"`
	ComputedBounds bool   `yaml:"computed_bounds"`
}

type WriterConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	metadata := pack.DefaultMetadata()
	return Config{
		Logger: LoggerConfig{Level: "info"},
		Source: SourceConfig{
			Root:      "./public/tiles/city_xyz",
			Extension: pack.DefaultExtension,
		},
		Archive: ArchiveConfig{
			Path:        "./public/tiles/city_raster.mbtiles",
			Name:        metadata.Name,
			Format:      metadata.Format,
			Type:        metadata.Type,
			Version:     metadata.Version,
			Description: metadata.Description,
			Bounds:      metadata.Bounds,
			Center:      metadata.Center,
		},
	}
}

// Load reads the YAML file at path on top of Default().
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("config file not found, using default config", "path", path)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %v: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %v: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Logger.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Source.Extension == "" {
		errs = append(errs, errors.New("source.extension is empty"))
	}
	if c.Writer.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("writer.batch_size must not be negative, got %d", c.Writer.BatchSize))
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level, an empty level means info.
func (c LoggerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("logger.level: %w", err)
	}
	return level, nil
}

// Metadata returns the fixed archive metadata. Zoom levels are left to the builder.
func (c ArchiveConfig) Metadata() mb.Metadata {
	return mb.Metadata{
		Name:        c.Name,
		Format:      c.Format,
		Type:        c.Type,
		Version:     c.Version,
		Description: c.Description,
		Bounds:      c.Bounds,
		Center:      c.Center,
	}
}

// BuilderOptions translates the configuration into pack.Builder options.
func (c *Config) BuilderOptions() []pack.Option {
	return []pack.Option{
		pack.WithMetadata(c.Archive.Metadata()),
		pack.WithExtension(c.Source.Extension),
		pack.WithBatchSize(c.Writer.BatchSize),
		pack.WithComputedBounds(c.Archive.ComputedBounds),
	}
}
