package domain

// StrategyCapabilities are the flags the yield calculator branches on.
// Derived once per strategy short id, not per vault.
type StrategyCapabilities struct {
	// HasSwapFees is false for strategies with no pool swap-fee income
	// (pure money-market strategies); their swap-fee APR is reported
	// as "not applicable".
	HasSwapFees bool `json:"hasSwapFees"`
	// IsALM marks automated liquidity management strategies whose
	// fee APRs come from on-chain rebalance data.
	IsALM bool `json:"isAlm"`
}

// StrategyMeta is the static reference record for one strategy family.
type StrategyMeta struct {
	ShortID     string `json:"shortId"`
	DisplayName string `json:"displayName"`
	// DefaultILTier is the impermanent-loss tier used when the vault's
	// risk symbol does not override it.
	DefaultILTier int  `json:"defaultIlTier"`
	HasSwapFees   bool `json:"hasSwapFees"`
	IsALM         bool `json:"isAlm"`
	// StripAddresses enables removal of truncated 0x..-style address
	// fragments from the strategy free-text before display.
	StripAddresses bool `json:"stripAddresses,omitempty"`
	// ScanProtocols enables extraction of protocol labels from the
	// strategy free-text.
	ScanProtocols bool `json:"scanProtocols,omitempty"`
}

// StrategyTable maps strategy short ids to reference metadata.
type StrategyTable map[string]StrategyMeta

// Lookup returns the metadata for the short id. Unknown strategies get
// permissive defaults so a missing table entry never blocks enrichment.
func (t StrategyTable) Lookup(shortID string) (StrategyMeta, bool) {
	if t != nil {
		if meta, ok := t[shortID]; ok {
			return meta, true
		}
	}
	return StrategyMeta{ShortID: shortID, HasSwapFees: true}, false
}

// DefaultStrategyTable returns the built-in strategy reference table.
// Deployments can replace it wholesale via configuration.
func DefaultStrategyTable() StrategyTable {
	return StrategyTable{
		"CF": {
			ShortID:       "CF",
			DisplayName:   "Compound Farm",
			DefaultILTier: 0,
			HasSwapFees:   false,
		},
		"DQMF": {
			ShortID:        "DQMF",
			DisplayName:    "DefiEdge QuickSwap Merkl Farm",
			DefaultILTier:  3,
			HasSwapFees:    true,
			StripAddresses: true,
		},
		"GQMF": {
			ShortID:       "GQMF",
			DisplayName:   "Gamma QuickSwap Merkl Farm",
			DefaultILTier: 3,
			HasSwapFees:   true,
		},
		"IQMF": {
			ShortID:       "IQMF",
			DisplayName:   "Ichi QuickSwap Merkl Farm",
			DefaultILTier: 4,
			HasSwapFees:   true,
			IsALM:         true,
		},
		"IRMF": {
			ShortID:       "IRMF",
			DisplayName:   "Ichi Retro Merkl Farm",
			DefaultILTier: 4,
			HasSwapFees:   true,
			IsALM:         true,
		},
		"QSMF": {
			ShortID:       "QSMF",
			DisplayName:   "QuickSwap Static Merkl Farm",
			DefaultILTier: 7,
			HasSwapFees:   true,
		},
		"Y": {
			ShortID:       "Y",
			DisplayName:   "Yearn",
			DefaultILTier: 1,
			HasSwapFees:   true,
			ScanProtocols: true,
		},
	}
}
