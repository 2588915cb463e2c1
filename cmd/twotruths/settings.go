package main

import (
	"fmt"
	"time"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/spf13/viper"
)

// Settings is the effective CLI configuration after flags, env and config file.
type Settings struct {
	Inputs    []string         `mapstructure:"inputs" yaml:"inputs"`
	Verbose   bool             `mapstructure:"verbose" yaml:"verbose"`
	LogLevel  string           `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string           `mapstructure:"log_format" yaml:"log_format"`
	Generate  GenerateSettings `mapstructure:"generate" yaml:"generate"`
	Serve     ServeSettings    `mapstructure:"serve" yaml:"serve"`
	Store     StoreSettings    `mapstructure:"store" yaml:"store"`
	MCP       MCPSettings      `mapstructure:"mcp" yaml:"mcp"`
}

// GenerateSettings holds batch parameters.
type GenerateSettings struct {
	Truths        int    `mapstructure:"truths" yaml:"truths"`
	Lies          int    `mapstructure:"lies" yaml:"lies"`
	MaxRetries    int    `mapstructure:"max_retries" yaml:"max_retries"`
	EnsureNotTrue bool   `mapstructure:"ensure_not_true" yaml:"ensure_not_true"`
	RandomOrder   bool   `mapstructure:"random_order" yaml:"random_order"`
	Seed          uint64 `mapstructure:"seed" yaml:"seed"`
	Format        string `mapstructure:"format" yaml:"format"`
}

// Request converts the settings into an engine request.
func (g GenerateSettings) Request() domain.Request {
	return domain.Request{
		Truths:        g.Truths,
		Lies:          g.Lies,
		MaxRetries:    g.MaxRetries,
		EnsureNotTrue: g.EnsureNotTrue,
		RandomOrder:   g.RandomOrder,
		Seed:          g.Seed,
	}
}

// ServeSettings configures the HTTP server.
type ServeSettings struct {
	Port      int     `mapstructure:"port" yaml:"port"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// StoreSettings selects the batch store.
type StoreSettings struct {
	Backend       string        `mapstructure:"backend" yaml:"backend"`
	Dir           string        `mapstructure:"dir" yaml:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"-"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Port      int    `mapstructure:"port" yaml:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("generate.truths", 2)
	v.SetDefault("generate.lies", 1)
	v.SetDefault("generate.max_retries", domain.DefaultMaxRetries)
	v.SetDefault("generate.ensure_not_true", true)
	v.SetDefault("generate.random_order", false)
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate.format", "text")

	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.rate_limit", 10.0)
	v.SetDefault("serve.rate_burst", 20)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.dir", ".twotruths/batches")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.ttl", time.Hour)

	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.port", 8081)
}

// loadSettings decodes the effective settings from v.
func loadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
