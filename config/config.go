// Package config holds the connection settings of a cache store.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one memcached store.
type Config struct {
	Prefix   string        `yaml:"prefix"`
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Disabled bool          `yaml:"disabled"`
	Timeout  time.Duration `yaml:"timeout"` // per-call socket timeout; 0 => client default
}

// DefaultConfig returns a config for a local memcached.
func DefaultConfig() *Config {
	return &Config{
		Host: "127.0.0.1",
		Port: 11211,
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv applies environment variable overrides to the config.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv("TAGCACHE_PREFIX"); v != "" {
		cfg.Prefix = v
	}
	if v := os.Getenv("TAGCACHE_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("TAGCACHE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TAGCACHE_PORT: %w", err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("TAGCACHE_DISABLED"); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TAGCACHE_DISABLED: %w", err)
		}
		cfg.Disabled = d
	}
	return nil
}

func (c *Config) IsDisabled() bool { return c.Disabled }

// Addr is host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks what is needed to connect. A disabled store only needs a prefix.
func (c *Config) Validate() error {
	var errs []error
	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix is required"))
	}
	if !c.Disabled {
		if c.Host == "" {
			errs = append(errs, errors.New("host is required"))
		}
		if c.Port <= 0 || c.Port > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout %v must not be negative", c.Timeout))
	}
	return errors.Join(errs...)
}
