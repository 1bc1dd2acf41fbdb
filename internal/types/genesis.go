package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

const maxCollateralDecimals = 36

type GenesisCollateral struct {
	Address        string `json:"address" yaml:"address"`
	Symbol         string `json:"symbol" yaml:"symbol"`
	Decimals       uint8  `json:"decimals" yaml:"decimals"`
	MaxStakeAmount string `json:"max_stake_amount" yaml:"max_stake_amount"`
	IsUSDStable    bool   `json:"is_usd_stable" yaml:"is_usd_stable"`
	// Price is the static USD price with 8 decimals, used by the static
	// oracle. USD stable collaterals do not need one.
	Price    string `json:"price,omitempty" yaml:"price,omitempty"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

type GenesisValidator struct {
	Address          string `json:"address" yaml:"address"`
	Admin            string `json:"admin" yaml:"admin"`
	RewardWeight     uint64 `json:"reward_weight" yaml:"reward_weight"`
	ProfitSharingBPS uint64 `json:"profit_sharing_bps" yaml:"profit_sharing_bps"`
	Disabled         bool   `json:"disabled" yaml:"disabled"`
}

// GenesisBalance seeds an account's token balance, e.g. delegator wallets or
// the swap reserve.
type GenesisBalance struct {
	Account string `json:"account" yaml:"account"`
	Token   string `json:"token" yaml:"token"`
	Amount  string `json:"amount" yaml:"amount"`
}

type Genesis struct {
	Collaterals []*GenesisCollateral `json:"collaterals" yaml:"collaterals"`
	Validators  []*GenesisValidator  `json:"validators" yaml:"validators"`
	Balances    []*GenesisBalance    `json:"balances" yaml:"balances"`
}

func NewGenesis(filePath string) (*Genesis, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var genesis Genesis
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &genesis)
	default:
		err = json.Unmarshal(data, &genesis)
	}
	if err != nil {
		return nil, err
	}
	err = ValidateGenesis(&genesis)
	if err != nil {
		return nil, err
	}

	return &genesis, nil
}

// Prices returns the static oracle prices listed in the genesis file.
func (g *Genesis) Prices() (map[common.Address]*uint256.Int, error) {
	prices := make(map[common.Address]*uint256.Int)
	for _, c := range g.Collaterals {
		if c.Price == "" {
			continue
		}
		price, err := ParseAmount(c.Price)
		if err != nil {
			return nil, fmt.Errorf("collateral %s price: %w", c.Address, err)
		}
		prices[common.HexToAddress(c.Address)] = price
	}
	return prices, nil
}

// ParseAmount parses a non negative base 10 integer amount.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

// ParseAddress parses a 0x prefixed hex account or token address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ValidateGenesis validates the genesis file
func ValidateGenesis(g *Genesis) error {
	if len(g.Collaterals) == 0 {
		return fmt.Errorf("genesis must have at least one collateral")
	}

	collaterals := make(map[common.Address]bool)
	for _, c := range g.Collaterals {
		addr, err := ParseAddress(c.Address)
		if err != nil {
			return fmt.Errorf("invalid collateral: %w", err)
		}
		if addr == (common.Address{}) {
			return fmt.Errorf("collateral address cannot be zero")
		}
		if collaterals[addr] {
			return fmt.Errorf("duplicate collateral %s", c.Address)
		}
		collaterals[addr] = true

		if c.Decimals > maxCollateralDecimals {
			return fmt.Errorf("collateral %s decimals cannot be above %d", c.Address, maxCollateralDecimals)
		}
		if _, err := ParseAmount(c.MaxStakeAmount); err != nil {
			return fmt.Errorf("collateral %s max stake amount: %w", c.Address, err)
		}
		if c.Price != "" {
			price, err := ParseAmount(c.Price)
			if err != nil {
				return fmt.Errorf("collateral %s price: %w", c.Address, err)
			}
			if price.IsZero() {
				return fmt.Errorf("collateral %s price should be positive", c.Address)
			}
		}
	}

	validators := make(map[common.Address]bool)
	for _, v := range g.Validators {
		addr, err := ParseAddress(v.Address)
		if err != nil {
			return fmt.Errorf("invalid validator: %w", err)
		}
		if validators[addr] {
			return fmt.Errorf("duplicate validator %s", v.Address)
		}
		validators[addr] = true
		if _, err := ParseAddress(v.Admin); err != nil {
			return fmt.Errorf("validator %s admin: %w", v.Address, err)
		}
		if v.ProfitSharingBPS > 10000 {
			return fmt.Errorf("validator %s profit sharing cannot be above 10000 bps", v.Address)
		}
	}

	for _, b := range g.Balances {
		if _, err := ParseAddress(b.Account); err != nil {
			return fmt.Errorf("invalid balance account: %w", err)
		}
		token, err := ParseAddress(b.Token)
		if err != nil {
			return fmt.Errorf("invalid balance token: %w", err)
		}
		if !collaterals[token] {
			return fmt.Errorf("balance token %s is not a collateral", b.Token)
		}
		if _, err := ParseAmount(b.Amount); err != nil {
			return fmt.Errorf("balance of %s: %w", b.Account, err)
		}
	}
	return nil
}

// ValidateProfitSharing checks every genesis validator against the
// configured profit sharing floor.
func (g *Genesis) ValidateProfitSharing(minBPS uint64) error {
	for _, v := range g.Validators {
		if v.ProfitSharingBPS < minBPS {
			return fmt.Errorf(
				"validator %s profit sharing %d bps is below the minimum %d bps",
				v.Address, v.ProfitSharingBPS, minBPS,
			)
		}
	}
	return nil
}
