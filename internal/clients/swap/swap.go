package swap

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/babylonchain/staking-ledger/internal/config"
)

const (
	bpsDenominator = 10000
	maxDecimals    = 36
)

var (
	ErrUnknownToken = errors.New("token not registered for swaps")
	ErrQuote        = errors.New("swap quote out of range")
)

// usdPrice is the 8 decimal price of a USD stable token.
var usdPrice = uint256.NewInt(1e8)

// Book moves balances between accounts of the custody book.
type Book interface {
	Custody() common.Address
	Move(token, from, to common.Address, amount *uint256.Int) error
}

type PriceOracle interface {
	PriceOf(ctx context.Context, token common.Address) (*uint256.Int, error)
}

type Token struct {
	Decimals    uint8
	IsUSDStable bool
}

// Swapper converts reward tokens at oracle prices against a reserve account.
// The input leaves custody for the reserve and the output is paid from the
// reserve to the recipient.
type Swapper struct {
	mu      sync.RWMutex
	book    Book
	oracle  PriceOracle
	reserve common.Address
	feeBPS  uint64
	tokens  map[common.Address]Token
}

func New(cfg *config.SwapConfig, book Book, oracle PriceOracle) *Swapper {
	return &Swapper{
		book:    book,
		oracle:  oracle,
		reserve: common.HexToAddress(cfg.ReserveAccount),
		feeBPS:  cfg.FeeBPS,
		tokens:  make(map[common.Address]Token),
	}
}

func (s *Swapper) Reserve() common.Address {
	return s.reserve
}

func (s *Swapper) RegisterToken(token common.Address, decimals uint8, isUSDStable bool) error {
	if decimals > maxDecimals {
		return errors.Errorf("token %s decimals %d above %d", token.Hex(), decimals, maxDecimals)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = Token{Decimals: decimals, IsUSDStable: isUSDStable}
	return nil
}

// Quote returns the amount of tokenOut paid for amountIn of tokenIn after
// the swap fee.
func (s *Swapper) Quote(
	ctx context.Context, tokenIn, tokenOut common.Address, amountIn *uint256.Int,
) (*uint256.Int, error) {
	in, err := s.token(tokenIn)
	if err != nil {
		return nil, err
	}
	out, err := s.token(tokenOut)
	if err != nil {
		return nil, err
	}
	priceIn, err := s.price(ctx, tokenIn, in)
	if err != nil {
		return nil, err
	}
	priceOut, err := s.price(ctx, tokenOut, out)
	if err != nil {
		return nil, err
	}

	// amountIn * priceIn * 10^decOut / (priceOut * 10^decIn)
	num, overflow := new(uint256.Int).MulOverflow(priceIn, pow10(out.Decimals))
	if overflow {
		return nil, ErrQuote
	}
	den, overflow := new(uint256.Int).MulOverflow(priceOut, pow10(in.Decimals))
	if overflow {
		return nil, ErrQuote
	}
	amountOut, overflow := new(uint256.Int).MulDivOverflow(amountIn, num, den)
	if overflow {
		return nil, ErrQuote
	}
	if s.feeBPS > 0 {
		amountOut.MulDivOverflow(amountOut, uint256.NewInt(bpsDenominator-s.feeBPS), uint256.NewInt(bpsDenominator))
	}
	return amountOut, nil
}

func (s *Swapper) Swap(
	ctx context.Context, tokenIn, tokenOut, recipient common.Address, amountIn *uint256.Int,
) (*uint256.Int, error) {
	amountOut, err := s.Quote(ctx, tokenIn, tokenOut, amountIn)
	if err != nil {
		return nil, err
	}
	if err := s.book.Move(tokenIn, s.book.Custody(), s.reserve, amountIn); err != nil {
		return nil, errors.Wrap(err, "swap input")
	}
	if err := s.book.Move(tokenOut, s.reserve, recipient, amountOut); err != nil {
		return nil, errors.Wrap(err, "swap output from reserve")
	}
	return amountOut, nil
}

func (s *Swapper) token(id common.Address) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[id]
	if !ok {
		return Token{}, errors.Wrapf(ErrUnknownToken, "token %s", id.Hex())
	}
	return t, nil
}

func (s *Swapper) price(ctx context.Context, id common.Address, t Token) (*uint256.Int, error) {
	if t.IsUSDStable {
		return usdPrice, nil
	}
	price, err := s.oracle.PriceOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if price.IsZero() {
		return nil, errors.Errorf("zero price for %s", id.Hex())
	}
	return price, nil
}

func pow10(decimals uint8) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
}
