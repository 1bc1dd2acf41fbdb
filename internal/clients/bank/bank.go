package bank

import (
	"context"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// Balance is one account's holding of one token.
type Balance struct {
	Token   common.Address `json:"token"`
	Account common.Address `json:"account"`
	Amount  string         `json:"amount"`
}

type change struct {
	token   common.Address
	account common.Address
	prev    *uint256.Int
}

// Bank is the in process token ledger backing the staking ledger's custody.
// Writes made between Checkpoint and Commit are journaled so a failed ledger
// operation can revert them.
type Bank struct {
	mu       sync.Mutex
	custody  common.Address
	balances map[common.Address]map[common.Address]*uint256.Int
	journal  []change
	depth    int
}

func New(custody common.Address) *Bank {
	return &Bank{
		custody:  custody,
		balances: make(map[common.Address]map[common.Address]*uint256.Int),
	}
}

func (b *Bank) Custody() common.Address {
	return b.custody
}

func (b *Bank) BalanceOf(token, account common.Address) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balance(token, account).Clone()
}

// Balances lists every non zero holding of account ordered by token.
func (b *Bank) Balances(account common.Address) []Balance {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Balance
	for token, accounts := range b.balances {
		if amount, ok := accounts[account]; ok && !amount.IsZero() {
			out = append(out, Balance{Token: token, Account: account, Amount: amount.Dec()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Token.Cmp(out[j].Token) < 0
	})
	return out
}

// Credit mints amount of token to account. Used for external deposits.
func (b *Bank) Credit(token, account common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sum, overflow := new(uint256.Int).AddOverflow(b.balance(token, account), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	b.write(token, account, sum)
	return nil
}

// Move transfers amount of token between two accounts. Nothing changes when
// from cannot cover it.
func (b *Bank) Move(token, from, to common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.move(token, from, to, amount)
}

func (b *Bank) TransferIn(_ context.Context, token, from common.Address, amount *uint256.Int) error {
	return b.Move(token, from, b.custody, amount)
}

func (b *Bank) TransferOut(_ context.Context, token, to common.Address, amount *uint256.Int) error {
	return b.Move(token, b.custody, to, amount)
}

// Checkpoint opens a journaled section and returns its position.
func (b *Bank) Checkpoint() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.depth++
	return len(b.journal)
}

// RevertTo undoes every write made since checkpoint and closes the section.
func (b *Bank) RevertTo(checkpoint int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.journal) - 1; i >= checkpoint; i-- {
		c := b.journal[i]
		b.balances[c.token][c.account] = c.prev
	}
	b.journal = b.journal[:checkpoint]
	b.close()
}

// Commit keeps the writes made since checkpoint and closes the section.
func (b *Bank) Commit(_ int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.close()
}

// Snapshot lists every non zero balance ordered by token then account.
func (b *Bank) Snapshot() []Balance {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Balance
	for token, accounts := range b.balances {
		for account, amount := range accounts {
			if amount.IsZero() {
				continue
			}
			out = append(out, Balance{Token: token, Account: account, Amount: amount.Dec()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Token.Cmp(out[j].Token); c != 0 {
			return c < 0
		}
		return out[i].Account.Cmp(out[j].Account) < 0
	})
	return out
}

// Restore replaces every balance with the given list.
func (b *Bank) Restore(balances []Balance) error {
	next := make(map[common.Address]map[common.Address]*uint256.Int)
	for _, bal := range balances {
		amount, err := uint256.FromDecimal(bal.Amount)
		if err != nil {
			return errors.Wrapf(err, "balance of %s in %s", bal.Account.Hex(), bal.Token.Hex())
		}
		if next[bal.Token] == nil {
			next[bal.Token] = make(map[common.Address]*uint256.Int)
		}
		next[bal.Token][bal.Account] = amount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances = next
	b.journal = nil
	b.depth = 0
	return nil
}

func (b *Bank) close() {
	if b.depth > 0 {
		b.depth--
	}
	if b.depth == 0 {
		b.journal = nil
	}
}

func (b *Bank) move(token, from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() || from == to {
		return nil
	}
	fromBalance := b.balance(token, from)
	if fromBalance.Lt(amount) {
		return errors.Wrapf(ErrInsufficientBalance, "%s holds %s of %s, needs %s",
			from.Hex(), fromBalance.Dec(), token.Hex(), amount.Dec())
	}
	toBalance, overflow := new(uint256.Int).AddOverflow(b.balance(token, to), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	b.write(token, from, new(uint256.Int).Sub(fromBalance, amount))
	b.write(token, to, toBalance)
	return nil
}

func (b *Bank) balance(token, account common.Address) *uint256.Int {
	if amount, ok := b.balances[token][account]; ok {
		return amount
	}
	return new(uint256.Int)
}

// write never mutates a stored value so the journal can keep pointers.
func (b *Bank) write(token, account common.Address, amount *uint256.Int) {
	accounts, ok := b.balances[token]
	if !ok {
		accounts = make(map[common.Address]*uint256.Int)
		b.balances[token] = accounts
	}
	if b.depth > 0 {
		b.journal = append(b.journal, change{token: token, account: account, prev: b.balance(token, account)})
	}
	accounts[account] = amount
}
