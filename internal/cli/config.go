package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

// Config is the TOML config file.
//
//	[cache]
//	dir   = "/var/cache/scenegraph"
//	scope = "team-a"
//
//	[redis]
//	addr   = "localhost:6379"
//	prefix = "scenegraph:"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	formats = ["svg", "json"]
//	shadows = true
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
	// Scope namespaces cache keys so several deployments can share one
	// backend.
	Scope string `toml:"scope"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Shadows    bool     `toml:"shadows"`
	ToolTips   bool     `toml:"tooltips"`
	EdgeLabels bool     `toml:"edge_labels"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		Redis:  RedisConfig{Prefix: "scenegraph:"},
		Server: ServerConfig{Addr: ":8080", ShutdownTimeout: Duration{10 * time.Second}},
		Render: RenderConfig{Formats: []string{pipeline.FormatSVG}},
	}
}

// LoadConfig reads path over the defaults. An empty path means the default
// location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	if err := errors.ValidateScenePath(path); err != nil {
		return cfg, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}
