package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"address-valuation/config"
	httpHandler "address-valuation/internal/adapter/http/handler"
	"address-valuation/internal/adapter/http/middleware"
	btcProvider "address-valuation/internal/adapter/provider/btc"
	ethProvider "address-valuation/internal/adapter/provider/eth"
	priceProvider "address-valuation/internal/adapter/provider/price"
	"address-valuation/internal/adapter/provider/upstream"
	redisStorage "address-valuation/internal/adapter/storage/redis"
	"address-valuation/internal/core/ports"
	"address-valuation/internal/service"
	"address-valuation/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(os.Getenv("AVE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Address Valuation Engine")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs the price mirror and rate limiting; both are optional.
	var (
		mirror         ports.PriceMirror
		rateLimitStore middleware.RateLimitStore
		healthCheckers []ports.HealthChecker
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without price mirror and rate limiting")
		} else {
			defer rdb.Close()
			log.Info().Msg("Redis connected")
			mirror = redisStorage.NewPriceMirror(rdb)
			rateLimitStore = redisStorage.NewRateLimitStore(rdb)
			healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		}
	}

	// Upstream providers share one HTTP client.
	client := upstream.NewClient(nil, cfg.Providers.Timeout)

	balanceProviders := []ports.BalanceProvider{
		btcProvider.NewMempoolProvider(cfg.Providers.MempoolURL, client),
		btcProvider.NewBlockstreamProvider(cfg.Providers.BlockstreamURL, client),
		btcProvider.NewBlockchainInfoProvider(cfg.Providers.BlockchainURL, client),
		btcProvider.NewBlockcypherProvider(cfg.Providers.BlockcypherURL, client),
		ethProvider.NewEtherscanProvider(cfg.Providers.EtherscanURL, cfg.Providers.EtherscanKey, client, logger.Component(log, "etherscan")),
	}
	rpc, err := ethProvider.NewRPCProvider(ctx, cfg.Providers.EthRPCURL)
	if err != nil {
		log.Warn().Err(err).Msg("Ethereum JSON-RPC provider disabled")
	} else {
		defer rpc.Close()
		balanceProviders = append(balanceProviders, rpc)
	}

	balances := service.NewBalanceChain(balanceProviders, cfg.Providers.Timeout, logger.Component(log, "balance_chain"))

	// CoinGecko also prices ERC-20 holdings.
	coingecko := priceProvider.NewCoinGeckoProvider(cfg.Price.CoinGeckoURL, client)
	priceChain := service.NewPriceChain(
		coingecko,
		[]ports.PriceProvider{
			priceProvider.NewBinanceProvider(cfg.Price.BinanceURL, client),
			priceProvider.NewOKXProvider(cfg.Price.OKXURL, client),
		},
		service.PriceChainConfig{
			MaxRetries: cfg.Price.MaxRetries,
			RetryDelay: cfg.Price.RetryDelay,
			Timeout:    cfg.Providers.Timeout,
		},
		logger.Component(log, "price_chain"),
	)

	cache := service.NewPriceCache(cfg.Price.CacheTTL, logger.Component(log, "price_cache"))
	cache.Warm(ctx, mirror, cfg.Price.Assets)

	feed := service.NewPriceFeed(priceChain, cache, mirror, logger.Component(log, "price_feed"),
		service.WithTokenPrices(coingecko))
	valuationSvc := service.NewValuationService(balances, feed, cfg.Valuation.MaxConcurrency, logger.Component(log, "valuation"))
	refresher := service.NewPriceRefresher(feed, cfg.Price.Assets, cfg.Price.RefreshInterval, logger.Component(log, "price_refresher"))
	go refresher.Run(ctx)

	var tokenSvc ports.TokenService
	if cfg.JWT.Secret != "" {
		tokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	} else {
		log.Warn().Msg("jwt.secret not set, admin routes disabled")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ValuationSvc:   valuationSvc,
		PriceRefresher: refresher,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		ValuationRateLimit: middleware.RateLimitRule{
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: healthCheckers,
		TrackedAssets:  cfg.Price.Assets,
		MaxBatchSize:   cfg.Valuation.MaxBatchSize,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
