// Package enricher runs the derived-metrics pipeline: raw vault records in,
// enriched vault records out. Each pass is a pure function of the record,
// the injected reference tables and a fixed "now".
package enricher

import (
	"sync"
	"time"

	"github.com/vaultlens/vaultlens/internal/domain"
	"github.com/vaultlens/vaultlens/internal/services/benchmark"
	"github.com/vaultlens/vaultlens/internal/services/classifier"
	"github.com/vaultlens/vaultlens/internal/services/resolver"
	"github.com/vaultlens/vaultlens/internal/services/yield"
)

// ReferenceData is the immutable snapshot of reference tables injected
// into each enrichment pass. No hidden module-level state.
type ReferenceData struct {
	Tokens     domain.TokenTable
	Strategies domain.StrategyTable
	Prices     domain.PriceTable
	// LabelOverrides maps lowercase vault addresses to manually curated
	// strategy descriptions.
	LabelOverrides map[string]string
}

// Enrich computes every derived metric for one vault record. It never
// fails: missing reference data degrades individual fields to zero or
// empty values.
func Enrich(now time.Time, rec domain.VaultRecord, refs ReferenceData) domain.EnrichedVault {
	class := classifier.Classify(rec, refs.Strategies, refs.LabelOverrides)
	resolved := resolver.Resolve(rec.Assets, refs.Tokens, refs.Prices)

	earnings := yield.Calculate(yield.Input{
		Samples:       rec.APR,
		Capabilities:  class.Capabilities,
		ALMFeePercent: rec.ALMFeePercent,
		Rebalances:    rec.ALMRebalances,
		Now:           now,
	})

	hold := benchmark.Compare(benchmark.Input{
		SharePrice:             rec.SharePrice,
		CreatedAt:              rec.CreatedAt,
		Now:                    now,
		Assets:                 resolved.Assets,
		AssetsPricesOnCreation: rec.AssetsPricesOnCreation,
		AssetsPricesLast:       rec.AssetsPricesLast,
		Prices:                 refs.Prices,
		VSHoldAnnualized:       rec.VSHoldAnnualized,
		VSHoldAssetsAnnualized: rec.VSHoldAssetsAnnualized,
	})

	return domain.EnrichedVault{
		VaultRecord: rec,

		ResolvedAssets:    resolved.Assets,
		AssetsProportions: resolved.Proportions,
		AssetsUSD:         resolved.ValuesUSD,
		TotalAssetsUSD:    resolved.TotalUSD,

		Earning:         earnings.Earning,
		PoolSwapFeesAPR: earnings.PoolSwapFeesAPR,
		FarmAPR:         earnings.FarmAPR,
		DailySimpleAPR:  earnings.DailySimpleAPR,
		Rebalances:      earnings.Rebalances,

		ImpermanentLossRisk: class.ILTier,
		StrategyLabel:       class.Label,
		Protocols:           class.Protocols,
		Capabilities:        class.Capabilities,

		VSHold:         hold.VSHold,
		IsVSHoldActive: hold.Active,
	}
}

// EnrichAll enriches a batch concurrently. Vaults are independent, so
// ordering is preserved only by output index.
func EnrichAll(now time.Time, recs []domain.VaultRecord, refs ReferenceData) []domain.EnrichedVault {
	out := make([]domain.EnrichedVault, len(recs))

	var wg sync.WaitGroup
	for i := range recs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = Enrich(now, recs[i], refs)
		}(i)
	}
	wg.Wait()

	return out
}
