package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Price     PriceConfig     `mapstructure:"price"`
	Valuation ValuationConfig `mapstructure:"valuation"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"` // empty disables admin routes
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ProvidersConfig holds upstream balance source settings.
// Base URLs are overridable so tests and private gateways can stand in.
type ProvidersConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MempoolURL     string        `mapstructure:"mempool_url"`
	BlockstreamURL string        `mapstructure:"blockstream_url"`
	BlockchainURL  string        `mapstructure:"blockchain_url"`
	BlockcypherURL string        `mapstructure:"blockcypher_url"`
	EtherscanURL   string        `mapstructure:"etherscan_url"`
	EtherscanKey   string        `mapstructure:"etherscan_key"`
	EthRPCURL      string        `mapstructure:"eth_rpc_url"`
}

// PriceConfig holds price chain and cache settings.
type PriceConfig struct {
	CoinGeckoURL    string        `mapstructure:"coingecko_url"`
	BinanceURL      string        `mapstructure:"binance_url"`
	OKXURL          string        `mapstructure:"okx_url"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 disables background refresh
	Assets          []string      `mapstructure:"assets"`
}

type ValuationConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
	MaxBatchSize   int `mapstructure:"max_batch_size"`
}

type RateLimitConfig struct {
	Limit  int64         `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AVE_ (Address Valuation Engine).
// Nested keys use underscore: AVE_REDIS_HOST, AVE_PRICE_CACHE_TTL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "address-valuation")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("providers.timeout", "8s")
	v.SetDefault("providers.mempool_url", "https://mempool.space/api")
	v.SetDefault("providers.blockstream_url", "https://blockstream.info/api")
	v.SetDefault("providers.blockchain_url", "https://blockchain.info")
	v.SetDefault("providers.blockcypher_url", "https://api.blockcypher.com/v1/btc/main")
	v.SetDefault("providers.etherscan_url", "https://api.etherscan.io/v2/api")
	v.SetDefault("providers.etherscan_key", "")
	v.SetDefault("providers.eth_rpc_url", "https://cloudflare-eth.com")
	v.SetDefault("price.coingecko_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("price.binance_url", "https://api.binance.com")
	v.SetDefault("price.okx_url", "https://www.okx.com")
	v.SetDefault("price.max_retries", 3)
	v.SetDefault("price.retry_delay", "5s")
	v.SetDefault("price.cache_ttl", "60s")
	v.SetDefault("price.refresh_interval", "60s")
	v.SetDefault("price.assets", []string{"BTC", "ETH"})
	v.SetDefault("valuation.max_concurrency", 4)
	v.SetDefault("valuation.max_batch_size", 20)
	v.SetDefault("ratelimit.limit", 60)
	v.SetDefault("ratelimit.window", "1m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: AVE_REDIS_HOST -> redis.host
	v.SetEnvPrefix("AVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that would make retry or caching unbounded.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if c.Price.MaxRetries < 1 {
		return fmt.Errorf("price.max_retries must be >= 1, got %d", c.Price.MaxRetries)
	}
	if c.Price.RetryDelay < 0 {
		return fmt.Errorf("price.retry_delay must not be negative")
	}
	if c.Price.CacheTTL <= 0 {
		return fmt.Errorf("price.cache_ttl must be positive")
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive")
	}
	if c.Valuation.MaxConcurrency < 1 {
		return fmt.Errorf("valuation.max_concurrency must be >= 1")
	}
	return nil
}
