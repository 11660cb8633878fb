// Package config loads forgefetch configuration from a TOML file.
//
// The default location is ~/.config/forgefetch/config.toml. A missing file is
// not an error; defaults apply. Example:
//
//	install_prereleases = false
//
//	[cache]
//	backend = "file"   # file, redis, or none
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[auth]
//	username = "someuser"
//	app_password = "secret"
//
//	[server]
//	addr = ":8264"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/forgefetch/forgefetch/pkg/cache"
)

// Config is the full forgefetch configuration.
type Config struct {
	// InstallPrereleases makes release resolution consider prerelease tags.
	InstallPrereleases bool `toml:"install_prereleases"`

	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Auth   AuthConfig   `toml:"auth"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the response cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend"` // "file", "redis", or "none"
	Dir     string   `toml:"dir"`     // file backend directory; empty for the default
	TTL     Duration `toml:"ttl"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AuthConfig holds HTTP basic credentials for private repositories.
type AuthConfig struct {
	Username    string `toml:"username"`
	AppPassword string `toml:"app_password"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration wraps time.Duration so TOML values like "24h" decode directly.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: "file",
			TTL:     Duration{24 * time.Hour},
		},
		Server: ServerConfig{
			Addr: ":8264",
		},
	}
}

// DefaultPath returns the default config file location
// (~/.config/forgefetch/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "forgefetch", "config.toml"), nil
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CacheBackend constructs the cache backend the configuration names.
func (c Config) CacheBackend(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", "file":
		dir := c.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cache.DefaultDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
}
