package clients

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-ledger/internal/clients/access"
	"github.com/babylonchain/staking-ledger/internal/clients/bank"
	"github.com/babylonchain/staking-ledger/internal/clients/oracle"
	"github.com/babylonchain/staking-ledger/internal/clients/swap"
	"github.com/babylonchain/staking-ledger/internal/config"
)

// Clients are the collaborators the ledger calls out to.
type Clients struct {
	Bank   *bank.Bank
	Oracle oracle.OracleClientInterface
	Swap   *swap.Swapper
	Access *access.Registry
}

func New(cfg *config.Config, prices map[common.Address]*uint256.Int) (*Clients, error) {
	bankClient := bank.New(cfg.Ledger.Custody())
	oracleClient, err := oracle.New(&cfg.Oracle, prices)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Bank:   bankClient,
		Oracle: oracleClient,
		Swap:   swap.New(&cfg.Swap, bankClient, oracleClient),
		Access: access.New(&cfg.Ledger),
	}, nil
}
