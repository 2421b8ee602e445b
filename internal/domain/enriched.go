package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolvedAsset is a vault asset extended with display metadata.
// Display fields stay empty when the token list has no entry.
type ResolvedAsset struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
	Name    string `json:"name,omitempty"`
	LogoURI string `json:"logo,omitempty"`
	Color   string `json:"color,omitempty"`
}

// WindowValues holds one derived percentage per reporting window.
type WindowValues struct {
	Latest decimal.Decimal `json:"latest"`
	Daily  decimal.Decimal `json:"daily"`
	Weekly decimal.Decimal `json:"weekly"`
}

// YieldBreakdown splits window values into with/without swap-fee variants.
type YieldBreakdown struct {
	WithFees    WindowValues `json:"withFees"`
	WithoutFees WindowValues `json:"withoutFees"`
}

// EarningData is the full derived yield grid: twelve scalar percentages.
type EarningData struct {
	APR YieldBreakdown `json:"apr"`
	APY YieldBreakdown `json:"apy"`
}

// RebalanceCounts summarizes recent ALM rebalance activity.
type RebalanceCounts struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// ProtocolLabel is a display label for a protocol the strategy routes through.
type ProtocolLabel struct {
	Title string `json:"title"`
	Logo  string `json:"logo"`
}

// HoldAssetDelta is the vs-hold breakdown for one underlying asset.
type HoldAssetDelta struct {
	Symbol          string          `json:"symbol"`
	PriceAtCreation decimal.Decimal `json:"priceAtCreation"`
	PriceNow        decimal.Decimal `json:"priceNow"`
	PriceDeltaPct   decimal.Decimal `json:"priceDeltaPct"`
	AnnualizedDelta decimal.Decimal `json:"annualizedDelta"`
	ProratedDelta   decimal.Decimal `json:"proratedDelta"`
}

// VSHold compares vault performance against holding the underlying assets.
// CurrentWindowProrated is a linear proration of the annualized figure
// across elapsed days, an approximation rather than a realized return.
type VSHold struct {
	LifetimeAnnualized    decimal.Decimal  `json:"lifetimeAnnualized"`
	CurrentWindowProrated decimal.Decimal  `json:"currentWindowProrated"`
	PerAsset              []HoldAssetDelta `json:"perAsset,omitempty"`
}

// EnrichedVault is the output of the metrics pipeline: the raw record plus
// every derived quantity the tables sort and display.
type EnrichedVault struct {
	VaultRecord

	ResolvedAssets []ResolvedAsset `json:"resolvedAssets"`
	// AssetsProportions are integer percentages, index-aligned with Assets.
	// Rounding may leave the sum within ±1 per asset of 100; an equal split
	// means the valuation was zero and proportions are unknown.
	AssetsProportions []int             `json:"assetsProportions"`
	AssetsUSD         []decimal.Decimal `json:"assetsUsd"`
	TotalAssetsUSD    decimal.Decimal   `json:"totalAssetsUsd"`

	Earning EarningData `json:"earningData"`
	// PoolSwapFeesAPR is nil when the strategy earns no swap fees.
	PoolSwapFeesAPR *WindowValues   `json:"poolSwapFeesAPR,omitempty"`
	FarmAPR         WindowValues    `json:"farmAPR"`
	DailySimpleAPR  decimal.Decimal `json:"dailySimpleApr"`

	ImpermanentLossRisk int                  `json:"impermanentLossRisk"`
	StrategyLabel       string               `json:"strategyLabel,omitempty"`
	Protocols           []ProtocolLabel      `json:"protocols,omitempty"`
	Capabilities        StrategyCapabilities `json:"capabilities"`

	// Rebalances is populated if and only if rebalance samples were present.
	Rebalances *RebalanceCounts `json:"rebalances,omitempty"`

	VSHold         VSHold `json:"vsHold"`
	IsVSHoldActive bool   `json:"isVsHoldActive"`
}

// RunSnapshot is one completed enrichment pass over a chain's vaults.
type RunSnapshot struct {
	RunID     string          `json:"runId"`
	ChainID   string          `json:"chainId"`
	Timestamp time.Time       `json:"ts"`
	Vaults    []EnrichedVault `json:"vaults"`
}

// RunSnapshotRecord pairs a snapshot with its storage index for replay.
type RunSnapshotRecord struct {
	Index    uint64      `json:"index"`
	Snapshot RunSnapshot `json:"snapshot"`
}
