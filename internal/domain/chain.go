package domain

// ChainConfig describes one supported network. Used by the display layer
// only (explorer links, native currency labels), never by the metric core.
type ChainConfig struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NativeCurrency string `json:"nativeCurrency"`
	ExplorerURL    string `json:"explorerUrl"`
}

// ChainTable maps chain ids to network configuration.
type ChainTable map[string]ChainConfig

// DefaultChainTable returns the built-in network reference table.
func DefaultChainTable() ChainTable {
	return ChainTable{
		"137": {
			ID:             "137",
			Name:           "Polygon",
			NativeCurrency: "POL",
			ExplorerURL:    "https://polygonscan.com",
		},
		"8453": {
			ID:             "8453",
			Name:           "Base",
			NativeCurrency: "ETH",
			ExplorerURL:    "https://basescan.org",
		},
		"146": {
			ID:             "146",
			Name:           "Sonic",
			NativeCurrency: "S",
			ExplorerURL:    "https://sonicscan.org",
		},
	}
}
