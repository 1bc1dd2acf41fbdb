package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// maxDecimals keeps normalized amounts well inside 256 bits.
const maxDecimals = 36

// AddCollateral registers a new enabled collateral. Collaterals are never
// removed once registered.
func (l *Ledger) AddCollateral(
	ctx context.Context, caller, id common.Address, maxStake *uint256.Int, decimals uint8, isUSDStable bool,
) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		if id == (common.Address{}) {
			return newError(CodeInvalidArgument, "zero collateral address")
		}
		if _, ok := l.collaterals[id]; ok {
			return newError(CodeAlreadyExists, "collateral already registered").withCollateral(id)
		}
		if decimals > maxDecimals {
			return newError(CodeInvalidArgument, "decimals %d above %d", decimals, maxDecimals).withCollateral(id)
		}
		l.collaterals[id] = &Collateral{
			SlashedAmount:  zero(),
			TotalLocked:    zero(),
			Rewards:        zero(),
			MaxStakeAmount: maxStake.Clone(),
			Decimals:       decimals,
			IsEnabled:      true,
			IsUSDStable:    isUSDStable,
		}
		l.collateralIDs = append(l.collateralIDs, id)
		tx.onRevert(func() {
			delete(l.collaterals, id)
			l.collateralIDs = l.collateralIDs[:len(l.collateralIDs)-1]
		})
		tx.addToSet(l.activeCollaterals, id)
		tx.emit(Event{Type: EventCollateralAdded, Collateral: id, Amount: dec(maxStake), Value: uint64(decimals)})
		return nil
	})
}

// SetCollateralEnabled toggles membership in the active collateral list.
// Disabled collaterals reject new stake and are skipped by reward
// distribution.
func (l *Ledger) SetCollateralEnabled(ctx context.Context, caller, id common.Address, enabled bool) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		c, err := l.getCollateral(id)
		if err != nil {
			return err
		}
		if c.IsEnabled == enabled {
			return nil
		}
		tx.setBool(&c.IsEnabled, enabled)
		if enabled {
			tx.addToSet(l.activeCollaterals, id)
		} else {
			tx.removeFromSet(l.activeCollaterals, id)
		}
		tx.emit(Event{Type: EventCollateralStatusChanged, Collateral: id, Value: boolValue(enabled)})
		return nil
	})
}

// SetCollateralMaxStake updates the per pool stake cap of a collateral.
func (l *Ledger) SetCollateralMaxStake(ctx context.Context, caller, id common.Address, maxStake *uint256.Int) error {
	return l.run(ctx, func(ctx context.Context, tx *txn) error {
		if err := l.requireRole(AdminRole, caller); err != nil {
			return err
		}
		c, err := l.getCollateral(id)
		if err != nil {
			return err
		}
		tx.set(&c.MaxStakeAmount, maxStake.Clone())
		tx.emit(Event{Type: EventCollateralCapChanged, Collateral: id, Amount: dec(maxStake)})
		return nil
	})
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
