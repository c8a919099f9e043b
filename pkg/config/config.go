package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort  string `mapstructure:"PORT"`
	ServiceName string `mapstructure:"SERVICE_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	UserAgent      string `mapstructure:"USER_AGENT"`
	AcceptLanguage string `mapstructure:"ACCEPT_LANGUAGE"`

	RequestTimeoutSeconds int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	DetailDelayMS         int `mapstructure:"DETAIL_DELAY_MS"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env is fine, the environment alone is enough in production.
	_ = v.ReadInConfig()

	v.SetDefault("PORT", "8000")
	v.SetDefault("SERVICE_NAME", "Idealista Contacts Scraper API")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("USER_AGENT", defaultUserAgent)
	v.SetDefault("ACCEPT_LANGUAGE", "es-ES,es;q=0.9")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 25)
	v.SetDefault("DETAIL_DELAY_MS", 2000)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 600)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequestTimeout is the per-request socket timeout for outbound fetches.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DetailDelay is the fixed pause after each detail page fetch.
func (c *Config) DetailDelay() time.Duration {
	return time.Duration(c.DetailDelayMS) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
