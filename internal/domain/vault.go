package domain

// VaultAsset is one underlying token position of a vault.
// RawAmount is an integer string in the token's smallest unit.
type VaultAsset struct {
	Address   string `json:"address"`
	RawAmount string `json:"rawAmount"`
}

// RebalanceSample is one recorded on-chain ALM rebalance event.
// Value fields are 8-decimal fixed-point integer strings.
type RebalanceSample struct {
	Value0    string `json:"value0"`
	Value1    string `json:"value1"`
	Value2    string `json:"value2"`
	Timestamp int64  `json:"timestamp"`
}

// APRWindowSamples holds raw APR percentages for the three reporting windows.
// An empty string means the data source did not report the window.
type APRWindowSamples struct {
	Latest string `json:"latest,omitempty"`
	Daily  string `json:"daily,omitempty"`
	Weekly string `json:"weekly,omitempty"`
}

// APRSamples is the full grid of raw APR inputs for one vault:
// four components, three windows each.
type APRSamples struct {
	TotalWithFees    APRWindowSamples `json:"totalWithFees"`
	TotalWithoutFees APRWindowSamples `json:"totalWithoutFees"`
	PoolSwapFees     APRWindowSamples `json:"poolSwapFees"`
	Farm             APRWindowSamples `json:"farm"`
}

// VaultRecord is an immutable snapshot of one vault at query time,
// normalized from the aggregation API or direct chain reads.
type VaultRecord struct {
	Address         string       `json:"address"`
	Name            string       `json:"name"`
	Symbol          string       `json:"symbol"`
	ChainID         string       `json:"chainId"`
	CreatedAt       int64        `json:"createdAt"`
	SharePrice      string       `json:"sharePrice"`
	TVL             string       `json:"tvl"`
	Assets          []VaultAsset `json:"assets"`
	APR             APRSamples   `json:"apr"`
	RiskSymbol      string       `json:"riskSymbol,omitempty"`
	StrategyShortID string       `json:"strategyShortId"`
	// StrategySpecific is free-text strategy detail shown in tables.
	StrategySpecific string `json:"strategySpecific,omitempty"`
	// ALMFeePercent is the ALM performance fee as a percentage string.
	ALMFeePercent string `json:"almFeePercent,omitempty"`
	// ALMRebalances is nil for non-ALM strategies.
	ALMRebalances []RebalanceSample `json:"almRebalances,omitempty"`
	// AssetsPricesOnCreation are 18-decimal fixed-point integer strings,
	// index-aligned with Assets.
	AssetsPricesOnCreation []string `json:"assetsPricesOnCreation,omitempty"`
	// AssetsPricesLast are plain decimal strings, index-aligned with Assets.
	// Missing entries fall back to the current price table.
	AssetsPricesLast []string `json:"assetsPricesLast,omitempty"`
	// VSHoldAnnualized is the API-precomputed lifetime vs-hold APR, empty if absent.
	VSHoldAnnualized string `json:"vsHoldAnnualized,omitempty"`
	// VSHoldAssetsAnnualized are per-asset lifetime vs-hold rates, index-aligned with Assets.
	VSHoldAssetsAnnualized []string `json:"vsHoldAssetsAnnualized,omitempty"`
}
