package config

import (
	"errors"
	"net/url"
	"time"
)

const (
	StaticOracleMode = "static"
	HttpOracleMode   = "http"
)

// OracleConfig selects the price source. The static oracle serves the prices
// listed in the genesis file.
type OracleConfig struct {
	Mode    string `mapstructure:"mode"`
	Host    string `mapstructure:"host"`
	Timeout int    `mapstructure:"timeout"`
	// Prices fetched over http are cached per token for CacheTTL.
	CacheSize int           `mapstructure:"cache-size"`
	CacheTTL  time.Duration `mapstructure:"cache-ttl"`
}

func (cfg *OracleConfig) Validate() error {
	switch cfg.Mode {
	case "", StaticOracleMode:
		cfg.Mode = StaticOracleMode
		return nil
	case HttpOracleMode:
	default:
		return errors.New("oracle mode must be static or http")
	}

	if cfg.Host == "" {
		return errors.New("host cannot be empty")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	if cfg.CacheSize < 0 || cfg.CacheTTL < 0 {
		return errors.New("oracle cache size and ttl cannot be negative")
	}

	parsedURL, err := url.ParseRequestURI(cfg.Host)
	if err != nil {
		return errors.New("invalid oracle service host")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("host must start with http or https")
	}

	return nil
}
