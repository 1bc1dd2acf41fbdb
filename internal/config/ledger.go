package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type LedgerConfig struct {
	// CustodyAccount holds every token staked into or rewarded by the ledger.
	CustodyAccount      string        `mapstructure:"custody-account"`
	WithdrawTimelock    time.Duration `mapstructure:"withdraw-timelock"`
	MinProfitSharingBPS uint64        `mapstructure:"min-profit-sharing-bps"`
	SlashingTreasury    string        `mapstructure:"slashing-treasury"`
	Admins              []string      `mapstructure:"admins"`
	Slashers            []string      `mapstructure:"slashers"`
	// RewardSource is the account queue reward events are paid from.
	RewardSource string `mapstructure:"reward-source"`
}

func (cfg *LedgerConfig) Validate() error {
	if err := validateAddress("custody-account", cfg.CustodyAccount); err != nil {
		return err
	}

	if cfg.WithdrawTimelock < 0 {
		return fmt.Errorf("withdraw timelock cannot be negative")
	}

	if cfg.MinProfitSharingBPS > 10000 {
		return fmt.Errorf("min profit sharing bps cannot be above 10000")
	}

	if cfg.SlashingTreasury != "" {
		if err := validateAddress("slashing-treasury", cfg.SlashingTreasury); err != nil {
			return err
		}
	}

	if len(cfg.Admins) == 0 {
		return fmt.Errorf("at least one ledger admin is required")
	}
	for _, a := range cfg.Admins {
		if err := validateAddress("admins", a); err != nil {
			return err
		}
	}
	for _, s := range cfg.Slashers {
		if err := validateAddress("slashers", s); err != nil {
			return err
		}
	}

	return validateAddress("reward-source", cfg.RewardSource)
}

func (cfg *LedgerConfig) Custody() common.Address {
	return common.HexToAddress(cfg.CustodyAccount)
}

func (cfg *LedgerConfig) Treasury() common.Address {
	if cfg.SlashingTreasury == "" {
		return common.Address{}
	}
	return common.HexToAddress(cfg.SlashingTreasury)
}

func (cfg *LedgerConfig) RewardSourceAccount() common.Address {
	return common.HexToAddress(cfg.RewardSource)
}

// TimelockSeconds returns the withdraw timelock in whole seconds.
func (cfg *LedgerConfig) TimelockSeconds() uint64 {
	return uint64(cfg.WithdrawTimelock / time.Second)
}

func validateAddress(field, value string) error {
	if !common.IsHexAddress(value) {
		return fmt.Errorf("invalid %s address: %q", field, value)
	}
	if common.HexToAddress(value) == (common.Address{}) {
		return fmt.Errorf("%s address cannot be zero", field)
	}
	return nil
}
