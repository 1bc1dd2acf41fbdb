package access_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/clients/access"
	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/ledger"
)

var (
	admin   = common.HexToAddress("0xad")
	slasher = common.HexToAddress("0x51")
	alice   = common.HexToAddress("0xa1")
)

func newRegistry() *access.Registry {
	return access.New(&config.LedgerConfig{
		Admins:   []string{admin.Hex()},
		Slashers: []string{slasher.Hex()},
	})
}

func TestHasRole(t *testing.T) {
	r := newRegistry()
	assert.True(t, r.HasRole(ledger.AdminRole, admin))
	assert.False(t, r.HasRole(ledger.SlasherRole, admin))
	assert.True(t, r.HasRole(ledger.SlasherRole, slasher))
	assert.False(t, r.HasRole(ledger.Role("operator"), admin))
}

func TestGrantAndRevoke(t *testing.T) {
	r := newRegistry()

	require.NoError(t, r.Grant(ledger.SlasherRole, alice))
	assert.True(t, r.HasRole(ledger.SlasherRole, alice))
	assert.Equal(t, []common.Address{slasher, alice}, r.Members(ledger.SlasherRole))

	require.NoError(t, r.Revoke(ledger.SlasherRole, alice))
	assert.False(t, r.HasRole(ledger.SlasherRole, alice))

	assert.ErrorIs(t, r.Grant(ledger.Role("operator"), alice), access.ErrUnknownRole)
	assert.Error(t, r.Revoke(ledger.AdminRole, admin), "the last admin stays")

	require.NoError(t, r.Grant(ledger.AdminRole, alice))
	require.NoError(t, r.Revoke(ledger.AdminRole, admin))
	assert.Equal(t, []common.Address{alice}, r.Members(ledger.AdminRole))
}

func TestSnapshotRestore(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Grant(ledger.AdminRole, alice))
	snapshot := r.Snapshot()

	restored := access.New(&config.LedgerConfig{Admins: []string{admin.Hex()}})
	require.NoError(t, restored.Restore(snapshot))
	assert.True(t, restored.HasRole(ledger.AdminRole, alice))
	assert.True(t, restored.HasRole(ledger.SlasherRole, slasher))

	snapshot[ledger.Role("operator")] = []common.Address{alice}
	assert.ErrorIs(t, restored.Restore(snapshot), access.ErrUnknownRole)
}
