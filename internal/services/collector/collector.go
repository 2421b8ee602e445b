// Package collector drives the refresh cycle: pull a snapshot from the
// aggregation API, optionally refresh records from chain reads and fill
// price gaps, run the enrichment pipeline, persist and publish the run.
package collector

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vaultlens/vaultlens/internal/clients"
	"github.com/vaultlens/vaultlens/internal/domain"
	"github.com/vaultlens/vaultlens/internal/events"
	"github.com/vaultlens/vaultlens/internal/services/enricher"
	"github.com/vaultlens/vaultlens/internal/services/pricer"
)

// chainRefresher is implemented by the chain reader; nil disables reads.
type chainRefresher interface {
	Refresh(ctx context.Context, rec *domain.VaultRecord) error
}

type snapshotStore interface {
	Save(snapshot domain.RunSnapshot) error
}

// Collector polls the data sources and re-enriches all vaults each cycle.
// Every cycle recomputes from scratch; there is no incremental state to
// go stale.
type Collector struct {
	api         *clients.APIClient
	chain       chainRefresher
	store       snapshotStore
	broadcaster *events.RefreshBroadcaster
	fallback    pricer.Pricer

	tokens     domain.TokenTable
	strategies domain.StrategyTable
	overrides  map[string]string

	interval time.Duration
	logger   *zap.Logger
}

// Options carries optional collaborators for the collector.
type Options struct {
	Chain    chainRefresher
	Fallback pricer.Pricer
}

// New creates a collector over the given reference tables.
func New(api *clients.APIClient, store snapshotStore, broadcaster *events.RefreshBroadcaster,
	tokens domain.TokenTable, strategies domain.StrategyTable, overrides map[string]string,
	interval time.Duration, logger *zap.Logger, opts Options) *Collector {

	return &Collector{
		api:         api,
		chain:       opts.Chain,
		store:       store,
		broadcaster: broadcaster,
		fallback:    opts.Fallback,
		tokens:      tokens,
		strategies:  strategies,
		overrides:   overrides,
		interval:    interval,
		logger:      logger,
	}
}

// Run executes an immediate refresh and then polls until ctx is done.
func (c *Collector) Run(ctx context.Context) error {
	if err := c.runOnce(ctx); err != nil {
		c.logger.Error("initial refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.runOnce(ctx); err != nil {
				c.logger.Error("refresh failed", zap.Error(err))
			}
		}
	}
}

func (c *Collector) runOnce(ctx context.Context) error {
	snap, err := c.api.FetchSnapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch snapshot")
	}

	now := time.Now()

	for chainID, records := range snap.Vaults {
		prices := snap.Prices[chainID]
		if prices == nil {
			prices = make(domain.PriceTable)
		}

		if c.chain != nil {
			for i := range records {
				if err := c.chain.Refresh(ctx, &records[i]); err != nil {
					// stale API figures stay usable
					c.logger.Warn("chain refresh failed, keeping API values",
						zap.String("vault", records[i].Address),
						zap.Error(err))
				}
			}
		}

		if c.fallback != nil {
			for i := range records {
				pricer.FillMissing(ctx, c.fallback, prices, c.tokens, records[i].Assets, c.logger)
			}
		}

		enriched := enricher.EnrichAll(now, records, enricher.ReferenceData{
			Tokens:         c.tokens,
			Strategies:     c.strategies,
			Prices:         prices,
			LabelOverrides: c.overrides,
		})

		run := domain.RunSnapshot{
			RunID:     uuid.NewString(),
			ChainID:   chainID,
			Timestamp: now,
			Vaults:    enriched,
		}

		if c.store != nil {
			if err := c.store.Save(run); err != nil {
				c.logger.Error("failed to persist run snapshot",
					zap.String("chain", chainID),
					zap.Error(err))
			}
		}
		if c.broadcaster != nil {
			c.broadcaster.Publish(run)
		}

		c.logger.Info("enrichment run completed",
			zap.String("run_id", run.RunID),
			zap.String("chain", chainID),
			zap.Int("vaults", len(enriched)))
	}

	return nil
}
