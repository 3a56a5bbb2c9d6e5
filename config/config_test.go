package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "address-valuation", cfg.JWT.Issuer)
	assert.Empty(t, cfg.JWT.Secret)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.Equal(t, 8*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, "https://mempool.space/api", cfg.Providers.MempoolURL)
	assert.Equal(t, "https://blockstream.info/api", cfg.Providers.BlockstreamURL)

	assert.Equal(t, 3, cfg.Price.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Price.RetryDelay)
	assert.Equal(t, time.Minute, cfg.Price.CacheTTL)
	assert.Equal(t, time.Minute, cfg.Price.RefreshInterval)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Price.Assets)

	assert.Equal(t, 4, cfg.Valuation.MaxConcurrency)
	assert.Equal(t, 20, cfg.Valuation.MaxBatchSize)
	assert.Equal(t, int64(60), cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
redis:
  enabled: false
  host: "redis.example.com"
  port: 6380
  password: "redispwd"
  db: 2
jwt:
  secret: "operator-secret"
  expiry: "12h"
log:
  level: "debug"
  pretty: true
providers:
  timeout: "3s"
  mempool_url: "http://mempool.local/api"
  etherscan_key: "KEY"
price:
  max_retries: 2
  retry_delay: "250ms"
  cache_ttl: "2m"
  refresh_interval: "0s"
  assets: ["BTC"]
valuation:
  max_concurrency: 8
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.example.com", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "redispwd", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)

	assert.Equal(t, "operator-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	assert.Equal(t, 3*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, "http://mempool.local/api", cfg.Providers.MempoolURL)
	assert.Equal(t, "KEY", cfg.Providers.EtherscanKey)

	assert.Equal(t, 2, cfg.Price.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Price.RetryDelay)
	assert.Equal(t, 2*time.Minute, cfg.Price.CacheTTL)
	assert.Equal(t, time.Duration(0), cfg.Price.RefreshInterval)
	assert.Equal(t, []string{"BTC"}, cfg.Price.Assets)
	assert.Equal(t, 8, cfg.Valuation.MaxConcurrency)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AVE_SERVER_PORT", "3000")
	t.Setenv("AVE_REDIS_HOST", "env-redis-host")
	t.Setenv("AVE_PRICE_CACHE_TTL", "90s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "env-redis-host", cfg.Redis.Host)
	assert.Equal(t, 90*time.Second, cfg.Price.CacheTTL)
}

func TestLoad_RejectsUnboundedRetry(t *testing.T) {
	t.Setenv("AVE_PRICE_MAX_RETRIES", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price.max_retries")
}

func TestLoad_RejectsUnknownServerMode(t *testing.T) {
	t.Setenv("AVE_SERVER_MODE", "verbose")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.mode")
}

func TestRedisConfig_Addr(t *testing.T) {
	redisCfg := RedisConfig{
		Host: "redis.local",
		Port: 6380,
	}

	assert.Equal(t, "redis.local:6380", redisCfg.Addr())
}
