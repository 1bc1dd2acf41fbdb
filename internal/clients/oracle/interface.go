package oracle

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PriceDecimals is the fixed point precision of every oracle price.
const PriceDecimals = 8

// OracleClientInterface returns USD prices with PriceDecimals decimals.
type OracleClientInterface interface {
	PriceOf(ctx context.Context, token common.Address) (*uint256.Int, error)
	SetPrice(token common.Address, price *uint256.Int) error
}
