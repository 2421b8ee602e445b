// Command vaultlens serves a live dashboard of yield vault metrics. It
// polls the aggregation API, optionally refreshes share prices and asset
// amounts over JSON-RPC, enriches every vault with derived yield and
// benchmark figures, and streams the results to the browser over SSE.
//
// Usage:
//
//	vaultlens --config config.yaml
//	vaultlens setup   (interactive configuration wizard)
//	vaultlens         (uses CLI arguments)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vaultlens/vaultlens/config"
	"github.com/vaultlens/vaultlens/internal/clients"
	"github.com/vaultlens/vaultlens/internal/domain"
	"github.com/vaultlens/vaultlens/internal/events"
	"github.com/vaultlens/vaultlens/internal/services/collector"
	"github.com/vaultlens/vaultlens/internal/services/pricer"
	"github.com/vaultlens/vaultlens/internal/setup"
	"github.com/vaultlens/vaultlens/internal/storage/runsnapshots"
	"github.com/vaultlens/vaultlens/internal/web"
)

func main() {
	var (
		cfg config.Config
		err error
	)

	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		cfg, err = config.FromFile("config.gen.yaml")
	} else {
		cfg, err = config.Get()
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	tokens := make(domain.TokenTable)
	if cfg.TokenListPath != "" {
		tokens, err = clients.LoadTokenList(cfg.TokenListPath)
		if err != nil {
			logger.Fatal("failed to load token list", zap.Error(err))
		}
	}

	api := clients.NewAPIClient(cfg.SeedURL, logger)

	opts := collector.Options{}
	if cfg.RPCEndpoint != "" {
		reader, err := clients.NewChainReader(cfg.RPCEndpoint, logger)
		if err != nil {
			logger.Fatal("failed to connect RPC endpoint", zap.Error(err))
		}
		defer reader.Close()
		opts.Chain = reader
	}

	switch cfg.PriceFallback {
	case "binance":
		opts.Fallback = pricer.NewBinancePricer(clients.NewBinanceClient())
	case "bybit":
		opts.Fallback = pricer.NewBybitPricer(clients.NewBybitClient())
	}

	store, err := runsnapshots.NewWALStore(cfg.SnapshotDir)
	if err != nil {
		logger.Fatal("failed to open run snapshot store", zap.Error(err))
	}
	defer store.Close()

	broadcaster := events.NewRefreshBroadcaster(16)

	coll := collector.New(api, store, broadcaster,
		tokens, domain.DefaultStrategyTable(), cfg.LabelOverrides,
		cfg.PollInterval, logger, opts)

	server := web.NewServer(cfg.ListenAddr, store, broadcaster, domain.DefaultChainTable())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := coll.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("collector stopped", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("vaultlens started",
		zap.String("listen", cfg.ListenAddr),
		zap.String("seed", cfg.SeedURL),
		zap.Duration("poll_interval", cfg.PollInterval))

	if err := server.Start(ctx); err != nil {
		logger.Fatal("web server failed", zap.Error(err))
	}
}
