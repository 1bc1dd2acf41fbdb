package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig is where the prometheus endpoint listens, apart from the
// ledger API.
type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("invalid metrics host %q", cfg.Host)
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return fmt.Errorf("metrics port %d outside [1024, 65535]", cfg.Port)
	}
	return nil
}

// Address is the host:port the metrics server binds to.
func (cfg *MetricsConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
