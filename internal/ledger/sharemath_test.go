package ledger

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(x uint64) *uint256.Int {
	return uint256.NewInt(x)
}

func TestMulDiv(t *testing.T) {
	got, err := MulDiv(u(7), u(3), u(2))
	require.NoError(t, err)
	assert.Equal(t, u(10), got)

	maxU := new(uint256.Int).SetAllOne()
	got, err = MulDiv(maxU, u(2), u(4))
	require.NoError(t, err, "intermediate product must not overflow")
	want := new(uint256.Int).Rsh(maxU, 1)
	assert.Equal(t, want, got)

	_, err = MulDiv(maxU, u(2), u(1))
	assert.ErrorIs(t, err, ErrArithmetic)

	_, err = MulDiv(u(1), u(1), u(0))
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestSharesFor(t *testing.T) {
	tests := []struct {
		name        string
		amount      uint64
		totalShares uint64
		totalAmount uint64
		want        uint64
	}{
		{"empty pool issues 1:1", 1000, 0, 0, 1000},
		{"zero shares issues 1:1", 10, 0, 50, 10},
		{"zero amount issues 1:1", 10, 50, 0, 10},
		{"par rate", 500, 1000, 1000, 500},
		{"appreciated pool", 100, 1000, 1250, 80},
		{"floors", 1, 3, 2, 1},
		{"dust mints nothing", 1, 1, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SharesFor(u(tt.amount), u(tt.totalShares), u(tt.totalAmount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Uint64())
		})
	}
}

func TestAmountFor(t *testing.T) {
	got, err := AmountFor(u(200), u(1500), u(1200))
	require.NoError(t, err)
	assert.Equal(t, uint64(250), got.Uint64())

	_, err = AmountFor(u(1), u(1), u(0))
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestSharePrice(t *testing.T) {
	price, err := SharePrice(u(0), u(0))
	require.NoError(t, err)
	assert.Equal(t, Precision, price.Uint64())

	price, err = SharePrice(u(1250), u(1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1.25e18), price.Uint64())
}

func TestApplyBPSAndFraction(t *testing.T) {
	got, err := ApplyBPS(u(999), 5000)
	require.NoError(t, err)
	assert.Equal(t, uint64(499), got.Uint64())

	got, err = ApplyFraction(u(500), u(0.1e18))
	require.NoError(t, err)
	assert.Equal(t, uint64(50), got.Uint64())
}

func TestNormalize(t *testing.T) {
	got, err := normalize(u(1e6), 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(1e18), got.Uint64())

	got, err = normalize(u(1e18), 18)
	require.NoError(t, err)
	assert.Equal(t, uint64(1e18), got.Uint64())

	got, err = normalize(new(uint256.Int).Mul(u(1e18), u(100)), 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(1e18), got.Uint64())

	_, err = normalize(new(uint256.Int).SetAllOne(), 0)
	assert.ErrorIs(t, err, ErrArithmetic)
}
