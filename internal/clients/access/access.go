package access

import (
	"bytes"
	"sort"

	mapset "github.com/deckarep/golang-set"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/ledger"
)

var ErrUnknownRole = ledger.ErrUnknownRole

// Registry holds the accounts granted each ledger role.
type Registry struct {
	roles map[ledger.Role]mapset.Set
}

func New(cfg *config.LedgerConfig) *Registry {
	r := &Registry{
		roles: map[ledger.Role]mapset.Set{
			ledger.AdminRole:   mapset.NewSet(),
			ledger.SlasherRole: mapset.NewSet(),
		},
	}
	for _, a := range cfg.Admins {
		r.roles[ledger.AdminRole].Add(common.HexToAddress(a))
	}
	for _, s := range cfg.Slashers {
		r.roles[ledger.SlasherRole].Add(common.HexToAddress(s))
	}
	return r
}

func (r *Registry) HasRole(role ledger.Role, account common.Address) bool {
	members, ok := r.roles[role]
	return ok && members.Contains(account)
}

func (r *Registry) Grant(role ledger.Role, account common.Address) error {
	members, ok := r.roles[role]
	if !ok {
		return errors.Wrapf(ErrUnknownRole, "%s", role)
	}
	members.Add(account)
	return nil
}

func (r *Registry) Revoke(role ledger.Role, account common.Address) error {
	members, ok := r.roles[role]
	if !ok {
		return errors.Wrapf(ErrUnknownRole, "%s", role)
	}
	if role == ledger.AdminRole && members.Cardinality() == 1 && members.Contains(account) {
		return errors.New("cannot revoke the last admin")
	}
	members.Remove(account)
	return nil
}

// Members lists the accounts holding role ordered by address.
func (r *Registry) Members(role ledger.Role) []common.Address {
	members, ok := r.roles[role]
	if !ok {
		return nil
	}
	out := make([]common.Address, 0, members.Cardinality())
	for _, m := range members.ToSlice() {
		out = append(out, m.(common.Address))
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// Snapshot returns every role's members.
func (r *Registry) Snapshot() map[ledger.Role][]common.Address {
	out := make(map[ledger.Role][]common.Address, len(r.roles))
	for role := range r.roles {
		out[role] = r.Members(role)
	}
	return out
}

// Restore grants the members of a snapshot on top of the configured ones.
func (r *Registry) Restore(snapshot map[ledger.Role][]common.Address) error {
	for role, members := range snapshot {
		for _, m := range members {
			if err := r.Grant(role, m); err != nil {
				return err
			}
		}
	}
	return nil
}
