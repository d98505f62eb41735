// Package config provides configuration types and defaults for influencegraph.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/influencegraph/pkg/errors"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all configuration for influencegraph.
type Config struct {
	Cache  CacheConfig  `toml:"cache" mapstructure:"cache"`
	Render RenderConfig `toml:"render" mapstructure:"render"`
	Server ServerConfig `toml:"server" mapstructure:"server"`
	Log    LogConfig    `toml:"log" mapstructure:"log"`
	Quotes string       `toml:"quotes" mapstructure:"quotes"` // quote book TOML; empty uses the built-in sample
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend" mapstructure:"backend" validate:"oneof=file redis none"`
	Dir       string `toml:"dir" mapstructure:"dir"` // file backend; empty uses the XDG cache dir
	RedisURL  string `toml:"redis_url" mapstructure:"redis_url" validate:"required_if=Backend redis"`
	Namespace string `toml:"namespace" mapstructure:"namespace"`
}

// RenderConfig holds defaults for the render and layout commands.
type RenderConfig struct {
	VizType string   `toml:"viz_type" mapstructure:"viz_type" validate:"oneof=lanes nodelink"`
	Width   float64  `toml:"width" mapstructure:"width" validate:"gt=0"`
	Scale   float64  `toml:"scale" mapstructure:"scale" validate:"gt=0"`
	Formats []string `toml:"formats" mapstructure:"formats" validate:"min=1,dive,oneof=svg html png json"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Addr            string        `toml:"addr" mapstructure:"addr" validate:"required"`
	AllowedOrigins  []string      `toml:"allowed_origins" mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `toml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging settings. File enables a rotating log file in
// addition to stderr.
type LogConfig struct {
	Verbose    bool   `toml:"verbose" mapstructure:"verbose"`
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   CacheFile,
			Namespace: "influencegraph:",
		},
		Render: RenderConfig{
			VizType: "lanes",
			Width:   1000,
			Scale:   2,
			Formats: []string{"svg"},
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8000",
			AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:8000"},
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid configuration")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid configuration: %s", strings.Join(msgs, "; "))
}
