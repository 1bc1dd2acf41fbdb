package config

import (
	"errors"
)

// SwapConfig configures the oracle priced reward swap. Swaps settle against
// the reserve account's balances.
type SwapConfig struct {
	ReserveAccount string `mapstructure:"reserve-account"`
	FeeBPS         uint64 `mapstructure:"fee-bps"`
}

func (cfg *SwapConfig) Validate() error {
	if err := validateAddress("reserve-account", cfg.ReserveAccount); err != nil {
		return err
	}

	if cfg.FeeBPS >= 10000 {
		return errors.New("swap fee must be below 10000 bps")
	}

	return nil
}
