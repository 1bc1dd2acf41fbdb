package oracle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	baseclient "github.com/babylonchain/staking-ledger/internal/clients/base"
	"github.com/babylonchain/staking-ledger/internal/config"
)

const defaultCacheSize = 256

type PriceResponse struct {
	Token string `json:"token"`
	// Price is a base 10 integer with PriceDecimals decimals.
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

type cachedPrice struct {
	price     *uint256.Int
	expiresAt time.Time
}

// HttpOracle fetches prices from an external price service. Prices are
// cached per token for the configured ttl.
type HttpOracle struct {
	config        *config.OracleConfig
	httpClient    *http.Client
	defaultHeader map[string]string
	cache         *lru.Cache
	now           func() time.Time
}

func NewHttpOracle(cfg *config.OracleConfig) (*HttpOracle, error) {
	size := cfg.CacheSize
	if size == 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &HttpOracle{
		config:     cfg,
		httpClient: &http.Client{},
		defaultHeader: map[string]string{
			"Accept": "application/json",
		},
		cache: cache,
		now:   time.Now,
	}, nil
}

// New builds the oracle selected by the config mode. prices seed the static
// oracle and are ignored in http mode.
func New(cfg *config.OracleConfig, prices map[common.Address]*uint256.Int) (OracleClientInterface, error) {
	if cfg.Mode == config.HttpOracleMode {
		return NewHttpOracle(cfg)
	}
	return NewStaticOracle(prices), nil
}

// Necessary for the BaseClient interface
func (c *HttpOracle) GetBaseURL() string {
	return c.config.Host
}

func (c *HttpOracle) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *HttpOracle) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *HttpOracle) PriceOf(ctx context.Context, token common.Address) (*uint256.Int, error) {
	if cached, ok := c.cache.Get(token); ok {
		entry := cached.(cachedPrice)
		if c.now().Before(entry.expiresAt) {
			return entry.price.Clone(), nil
		}
		c.cache.Remove(token)
	}

	opts := &baseclient.BaseClientOptions{
		Path:     fmt.Sprintf("/v1/prices/%s", token.Hex()),
		Template: "/v1/prices/{token}",
		Headers:  c.defaultHeader,
	}
	resp, apiErr := baseclient.SendRequest[any, PriceResponse](ctx, c, http.MethodGet, opts, nil)
	if apiErr != nil {
		return nil, errors.Wrapf(apiErr, "fetch price of %s", token.Hex())
	}
	price, err := uint256.FromDecimal(resp.Price)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid price %q for %s", resp.Price, token.Hex())
	}
	if price.IsZero() {
		return nil, errors.Wrapf(ErrZeroPrice, "token %s", token.Hex())
	}

	if c.config.CacheTTL > 0 {
		c.cache.Add(token, cachedPrice{price: price.Clone(), expiresAt: c.now().Add(c.config.CacheTTL)})
	}
	return price, nil
}

// SetPrice is unsupported, the remote service owns the prices.
func (c *HttpOracle) SetPrice(common.Address, *uint256.Int) error {
	return errors.New("prices are read only in http oracle mode")
}
