// Package config loads client settings from an optional config file and
// the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration. The four credential fields
// come from the environment; their absence is only an error for commands
// that reach the network, so no validation happens here.
type Config struct {
	Credentials CredentialsConfig `mapstructure:"credentials"`
	API         APIConfig         `mapstructure:"api"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Watchlist   WatchlistConfig   `mapstructure:"watchlist"`
}

// CredentialsConfig holds the OAuth2 password-grant secrets.
type CredentialsConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
}

// APIConfig holds endpoint and identification settings.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	AuthURL   string `mapstructure:"auth_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// CacheConfig holds cache location and freshness windows. QuickTTL is the
// longer window used when stale-but-fast answers are acceptable.
type CacheConfig struct {
	Path     string        `mapstructure:"path"`
	TTL      time.Duration `mapstructure:"ttl"`
	QuickTTL time.Duration `mapstructure:"quick_ttl"`
}

// WatchlistConfig holds the watchlist location.
type WatchlistConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from ./config.yaml (if present) and the
// environment. Environment values take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/lurk")

	v.SetDefault("api.base_url", "https://oauth.reddit.com/")
	v.SetDefault("api.auth_url", "https://www.reddit.com/")
	v.SetDefault("api.user_agent", "cli:lurk:1.0")
	v.SetDefault("cache.path", "./lurk-cache.db")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.quick_ttl", time.Hour)
	v.SetDefault("watchlist.path", "./lurk-watchlist.db")

	v.AutomaticEnv()
	v.BindEnv("credentials.client_id", "REDDIT_CLIENT_ID")
	v.BindEnv("credentials.client_secret", "REDDIT_CLIENT_SECRET")
	v.BindEnv("credentials.username", "REDDIT_USERNAME")
	v.BindEnv("credentials.password", "REDDIT_PASSWORD")
	v.BindEnv("api.user_agent", "LURK_USER_AGENT")
	v.BindEnv("cache.path", "LURK_CACHE_PATH")
	v.BindEnv("watchlist.path", "LURK_WATCHLIST_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
