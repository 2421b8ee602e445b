package domain

import "strings"

// TokenMeta is descriptive token metadata from the reference token list.
type TokenMeta struct {
	Address  string `json:"address"`
	ChainID  string `json:"chainId"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
	Color    string `json:"color,omitempty"`
}

// TokenTable maps lowercase token addresses to metadata.
type TokenTable map[string]TokenMeta

// Lookup returns token metadata by address (case-insensitive).
func (t TokenTable) Lookup(address string) (TokenMeta, bool) {
	if t == nil {
		return TokenMeta{}, false
	}
	meta, ok := t[strings.ToLower(address)]
	return meta, ok
}

// Add inserts token metadata, normalizing the address key.
func (t TokenTable) Add(meta TokenMeta) {
	meta.Address = strings.ToLower(meta.Address)
	t[meta.Address] = meta
}
