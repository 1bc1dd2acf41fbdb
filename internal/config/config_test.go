package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/config"
)

const testConfig = `
server:
  host: 127.0.0.1
  port: 8090
  write-timeout: 60s
  read-timeout: 60s
  idle-timeout: 60s
  allowed-origins: ["*"]
  log-level: info
  max-content-length: 4096
  health-check-interval: 30
db:
  db-name: staking-ledger
  address: "mongodb://localhost:27017"
  max-pagination-limit: 10
  max-tx-retries: 3
queue:
  queue_user: user
  queue_password: password
  url: "localhost:5672"
  processing_timeout: 5
  msg_max_retry_attempts: 3
  requeue_delay_time: 60
metrics:
  host: 0.0.0.0
  port: 2112
ledger:
  custody-account: "0x00000000000000000000000000000000000000c0"
  withdraw-timelock: 24h
  min-profit-sharing-bps: 1000
  slashing-treasury: "0x000000000000000000000000000000000000007e"
  admins: ["0x00000000000000000000000000000000000000ad"]
  slashers: ["0x0000000000000000000000000000000000000051"]
  reward-source: "0x00000000000000000000000000000000000000fe"
oracle:
  mode: static
  host: "http://localhost:8091"
  timeout: 1000
swap:
  reserve-account: "0x000000000000000000000000000000000000005e"
  fee-bps: 30
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg, err := config.New(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, config.DefaultCallerHeader, cfg.Server.CallerHeader)
	assert.Equal(t, 3, cfg.Db.MaxTxRetries)
	assert.Equal(t, config.QuorumQueueType, cfg.Queue.QueueType)
	assert.Equal(t, 24*time.Hour, cfg.Ledger.WithdrawTimelock)
	assert.Equal(t, uint64(86400), cfg.Ledger.TimelockSeconds())
	assert.Equal(t, "0x00000000000000000000000000000000000000c0", cfg.Ledger.Custody().Hex())
	assert.Len(t, cfg.Ledger.Slashers, 1)
	assert.Equal(t, config.StaticOracleMode, cfg.Oracle.Mode)
	assert.Equal(t, uint64(30), cfg.Swap.FeeBPS)
	assert.Equal(t, "0.0.0.0:2112", cfg.Metrics.Address())
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LEDGER_MIN__PROFIT__SHARING__BPS", "2500")

	cfg, err := config.New(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, uint64(2500), cfg.Ledger.MinProfitSharingBPS)
}

func TestConfigMissingFile(t *testing.T) {
	_, err := config.New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad host", map[string]string{"SERVER_HOST": "localhost"}},
		{"log level", map[string]string{"SERVER_LOG__LEVEL": "trace"}},
		{"db scheme", map[string]string{"DB_ADDRESS": "postgres://localhost:27017"}},
		{"tx retries", map[string]string{"DB_MAX__TX__RETRIES": "11"}},
		{"queue timeout", map[string]string{"QUEUE_PROCESSING_TIMEOUT": "0"}},
		{"queue retries", map[string]string{"QUEUE_MSG_MAX_RETRY_ATTEMPTS": "0"}},
		{"custody", map[string]string{"LEDGER_CUSTODY__ACCOUNT": "0x1234"}},
		{"profit sharing", map[string]string{"LEDGER_MIN__PROFIT__SHARING__BPS": "10001"}},
		{"reward source", map[string]string{
			"LEDGER_REWARD__SOURCE": "0x0000000000000000000000000000000000000000",
		}},
		{"oracle mode", map[string]string{"ORACLE_MODE": "chainlink"}},
		{"oracle host", map[string]string{"ORACLE_MODE": "http", "ORACLE_HOST": "localhost:8091"}},
		{"swap fee", map[string]string{"SWAP_FEE__BPS": "10000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.New(writeConfig(t, testConfig))
			assert.Error(t, err)
		})
	}
}

func TestOracleHttpConfig(t *testing.T) {
	cfg := config.OracleConfig{Mode: config.HttpOracleMode, Host: "https://prices.example.com", Timeout: 500}
	assert.NoError(t, cfg.Validate())

	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())
}
