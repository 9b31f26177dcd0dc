// Package config loads masonry settings from a TOML file and the environment.
//
// The file is $MASONRY_CONFIG when set, otherwise ~/.config/masonry/config.toml.
// A missing file is not an error. Every key can be overridden by an
// environment variable: "cache.redis.addr" becomes MASONRY_CACHE_REDIS_ADDR.
// Command-line flags override both.
//
//	[layout]
//	width = 1200
//	column_width = 250
//
//	[layout.breakpoints]
//	md = 3
//	xl = 5
//
//	[cache]
//	backend = "redis"
//	redis.addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MASONRY"

// Config holds application configuration.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// LayoutConfig holds default layout options.
type LayoutConfig struct {
	Width             float64        `mapstructure:"width"`
	Gap               float64        `mapstructure:"gap"`
	ColumnWidth       float64        `mapstructure:"column_width"`
	Columns           int            `mapstructure:"columns"`
	Placeholder       float64        `mapstructure:"placeholder"`
	Breakpoints       map[string]int `mapstructure:"breakpoints"`
	BreakpointDefault int            `mapstructure:"breakpoint_default"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `mapstructure:"backend"` // none, file, redis, mongo
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
	Mongo   MongoConfig `mapstructure:"mongo"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads configuration from file and env. Env var overrides use prefix MASONRY_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("layout.width", pipeline.DefaultWidth)
	v.SetDefault("layout.gap", float64(pipeline.DefaultGap))
	v.SetDefault("layout.column_width", float64(pipeline.DefaultColumnWidth))
	v.SetDefault("layout.columns", 0)
	v.SetDefault("layout.placeholder", float64(pipeline.DefaultPlaceholder))
	v.SetDefault("layout.breakpoint_default", 0)

	v.SetDefault("cache.backend", cache.BackendFile)
	v.SetDefault("cache.dir", DefaultCacheDir())
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.mongo.uri", "")
	v.SetDefault("cache.mongo.database", cache.DefaultMongoDatabase)
	v.SetDefault("cache.mongo.collection", cache.DefaultMongoCollection)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
}

// PipelineOptions returns the layout defaults as pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	gap := c.Layout.Gap
	return pipeline.Options{
		Width:             c.Layout.Width,
		Gap:               &gap,
		ColumnWidth:       c.Layout.ColumnWidth,
		Columns:           c.Layout.Columns,
		Placeholder:       c.Layout.Placeholder,
		Breakpoints:       c.Layout.Breakpoints,
		BreakpointDefault: c.Layout.BreakpointDefault,
	}
}

// CacheOptions returns the cache backend selection.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}

// Path returns the config file location Load reads from.
func Path() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "masonry"), nil
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/masonry/).
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "masonry")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "masonry")
	}
	return filepath.Join(home, ".cache", "masonry")
}
