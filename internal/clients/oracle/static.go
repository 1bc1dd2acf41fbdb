package oracle

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	ErrPriceNotFound = errors.New("price not found")
	ErrZeroPrice     = errors.New("price must be positive")
)

// StaticOracle serves prices seeded from the genesis file and updated by
// admins.
type StaticOracle struct {
	mu     sync.RWMutex
	prices map[common.Address]*uint256.Int
}

func NewStaticOracle(prices map[common.Address]*uint256.Int) *StaticOracle {
	o := &StaticOracle{prices: make(map[common.Address]*uint256.Int, len(prices))}
	for token, price := range prices {
		o.prices[token] = price.Clone()
	}
	return o
}

func (o *StaticOracle) PriceOf(_ context.Context, token common.Address) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	price, ok := o.prices[token]
	if !ok {
		return nil, errors.Wrapf(ErrPriceNotFound, "token %s", token.Hex())
	}
	return price.Clone(), nil
}

func (o *StaticOracle) SetPrice(token common.Address, price *uint256.Int) error {
	if price == nil || price.IsZero() {
		return ErrZeroPrice
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[token] = price.Clone()
	return nil
}
