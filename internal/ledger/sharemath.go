package ledger

import (
	"github.com/holiman/uint256"
)

const (
	// BPSDenominator is 100% expressed in basis points.
	BPSDenominator uint64 = 10000
	// PriceDecimals is the fixed point precision of oracle prices.
	PriceDecimals uint8 = 8
	// Precision is the 18-decimal fixed point scale used for prices and
	// fractional percentages.
	Precision uint64 = 1e18
)

var (
	bpsDenominator = uint256.NewInt(BPSDenominator)
	precision      = uint256.NewInt(Precision)
	// oracle prices carry 8 decimals, this lifts them to 18.
	priceScale = uint256.NewInt(1e10)
)

// MulDiv returns floor(x*y/d) computed with a 512-bit intermediate product.
// It fails when d is zero or when the result does not fit in 256 bits.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, newError(CodeArithmetic, "division by zero")
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, newError(CodeArithmetic, "multiplication overflow")
	}
	return z, nil
}

// SharesFor converts a token amount into pool shares at the current exchange
// rate. An empty pool issues shares 1:1 so the first depositor sets the rate.
func SharesFor(amount, totalShares, totalAmount *uint256.Int) (*uint256.Int, error) {
	if totalAmount.IsZero() || totalShares.IsZero() {
		return amount.Clone(), nil
	}
	return MulDiv(amount, totalShares, totalAmount)
}

// AmountFor converts pool shares back into a token amount. Callers must guard
// against empty pools, a zero share supply is an arithmetic error.
func AmountFor(shares, totalAmount, totalShares *uint256.Int) (*uint256.Int, error) {
	if totalShares.IsZero() {
		return nil, newError(CodeArithmetic, "zero total shares")
	}
	return MulDiv(shares, totalAmount, totalShares)
}

// SharePrice is the 18-decimal price of one share. An empty pool prices its
// shares at 1.
func SharePrice(totalAmount, totalShares *uint256.Int) (*uint256.Int, error) {
	if totalShares.IsZero() {
		return precision.Clone(), nil
	}
	return MulDiv(totalAmount, precision, totalShares)
}

// ApplyBPS returns floor(amount*bps/10000).
func ApplyBPS(amount *uint256.Int, bps uint64) (*uint256.Int, error) {
	return MulDiv(amount, uint256.NewInt(bps), bpsDenominator)
}

// ApplyFraction returns floor(amount*fraction/1e18).
func ApplyFraction(amount, fraction *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, fraction, precision)
}

// normalize scales an amount with the given decimals to 18 decimals.
func normalize(amount *uint256.Int, decimals uint8) (*uint256.Int, error) {
	switch {
	case decimals == 18:
		return amount.Clone(), nil
	case decimals < 18:
		scale := pow10(18 - decimals)
		z, overflow := new(uint256.Int).MulOverflow(amount, scale)
		if overflow {
			return nil, newError(CodeArithmetic, "normalization overflow")
		}
		return z, nil
	default:
		return new(uint256.Int).Div(amount, pow10(decimals-18)), nil
	}
}

func pow10(n uint8) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(n)))
}

func minInt(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return x
	}
	return y
}

func zero() *uint256.Int {
	return new(uint256.Int)
}
