package enricher

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultlens/vaultlens/internal/domain"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRefs() ReferenceData {
	tokens := make(domain.TokenTable)
	tokens.Add(domain.TokenMeta{Address: "0xusdc", Symbol: "USDC", Decimals: 6})
	tokens.Add(domain.TokenMeta{Address: "0xweth", Symbol: "WETH", Decimals: 18})

	return ReferenceData{
		Tokens:     tokens,
		Strategies: domain.DefaultStrategyTable(),
		Prices: domain.PriceTable{
			"0xusdc": {Price: decimal.NewFromInt(1)},
			"0xweth": {Price: decimal.RequireFromString("0.5")},
		},
	}
}

func testRecord(address string) domain.VaultRecord {
	return domain.VaultRecord{
		Address:    address,
		Name:       "Test Vault",
		Symbol:     "TV",
		ChainID:    "137",
		CreatedAt:  testNow.Unix() - 10*86400,
		SharePrice: "1.05",
		TVL:        "2000",
		Assets: []domain.VaultAsset{
			{Address: "0xusdc", RawAmount: "1000000000"},
			{Address: "0xweth", RawAmount: "2000000000000000000000"},
		},
		APR: domain.APRSamples{
			TotalWithoutFees: domain.APRWindowSamples{Latest: "10"},
			PoolSwapFees:     domain.APRWindowSamples{Daily: "2", Weekly: "3"},
			Farm:             domain.APRWindowSamples{Daily: "5", Weekly: "6"},
		},
		StrategyShortID:  "GQMF",
		StrategySpecific: "Narrow",
		VSHoldAnnualized: "20",
	}
}

func TestEnrich(t *testing.T) {
	out := Enrich(testNow, testRecord("0xvault"), testRefs())

	// asset resolution
	require.Len(t, out.ResolvedAssets, 2)
	assert.Equal(t, "USDC", out.ResolvedAssets[0].Symbol)
	assert.Equal(t, []int{50, 50}, out.AssetsProportions)
	assert.True(t, out.TotalAssetsUSD.Equal(decimal.NewFromInt(2000)))

	// yield grid
	assert.Equal(t, "12", out.Earning.APR.WithFees.Latest.String())
	require.NotNil(t, out.PoolSwapFeesAPR)
	assert.Equal(t, "2", out.PoolSwapFeesAPR.Daily.String())
	assert.Nil(t, out.Rebalances)

	// classification
	assert.Equal(t, 3, out.ImpermanentLossRisk)
	assert.Equal(t, "Narrow", out.StrategyLabel)
	assert.True(t, out.Capabilities.HasSwapFees)

	// benchmark
	assert.True(t, out.IsVSHoldActive)
	assert.Equal(t, "20", out.VSHold.LifetimeAnnualized.String())

	// raw record carried through
	assert.Equal(t, "0xvault", out.Address)
	assert.Equal(t, "137", out.ChainID)
}

func TestEnrichMissingPriceLeavesYieldAndHoldUntouched(t *testing.T) {
	rec := testRecord("0xvault")

	full := Enrich(testNow, rec, testRefs())

	gapped := testRefs()
	delete(gapped.Prices, "0xweth")
	degraded := Enrich(testNow, rec, gapped)

	// only the valuation degrades
	assert.Equal(t, []int{100, 0}, degraded.AssetsProportions)
	assert.True(t, degraded.TotalAssetsUSD.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, full.Earning, degraded.Earning)
	assert.Equal(t, full.VSHold, degraded.VSHold)
	assert.Equal(t, full.IsVSHoldActive, degraded.IsVSHoldActive)
}

func TestEnrichIsDeterministic(t *testing.T) {
	rec := testRecord("0xvault")
	refs := testRefs()

	first, err := json.Marshal(Enrich(testNow, rec, refs))
	require.NoError(t, err)
	second, err := json.Marshal(Enrich(testNow, rec, refs))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestEnrichEmptyRecord(t *testing.T) {
	out := Enrich(testNow, domain.VaultRecord{Address: "0xempty"}, ReferenceData{})

	assert.Empty(t, out.ResolvedAssets)
	assert.True(t, out.TotalAssetsUSD.IsZero())
	assert.True(t, out.Earning.APR.WithFees.Latest.IsZero())
	assert.False(t, out.IsVSHoldActive)
	// nil strategy table still yields permissive defaults
	assert.True(t, out.Capabilities.HasSwapFees)
}

func TestEnrichAll(t *testing.T) {
	refs := testRefs()
	recs := make([]domain.VaultRecord, 20)
	for i := range recs {
		recs[i] = testRecord(fmt.Sprintf("0xvault%02d", i))
	}

	out := EnrichAll(testNow, recs, refs)

	require.Len(t, out, len(recs))
	for i, enriched := range out {
		assert.Equal(t, recs[i].Address, enriched.Address, "output order must match input")
		assert.Equal(t, []int{50, 50}, enriched.AssetsProportions)
	}
}

func TestEnrichAllEmpty(t *testing.T) {
	out := EnrichAll(testNow, nil, testRefs())
	assert.Empty(t, out)
}
