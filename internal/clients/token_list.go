package clients

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vaultlens/vaultlens/internal/domain"
)

type tokenListEntry struct {
	Address  string `json:"address"`
	ChainID  int64  `json:"chainId"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
	LogoURI  string `json:"logoURI"`
	Color    string `json:"color,omitempty"`
}

type tokenListFile struct {
	Tokens []tokenListEntry `json:"tokens"`
}

// LoadTokenList reads a token list JSON file (tokens array with address,
// chainId, symbol, name, decimals, logoURI) into a token table.
func LoadTokenList(path string) (domain.TokenTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read token list")
	}

	var file tokenListFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "parse token list")
	}

	table := make(domain.TokenTable)
	for _, t := range file.Tokens {
		table.Add(domain.TokenMeta{
			Address:  t.Address,
			ChainID:  strconv.FormatInt(t.ChainID, 10),
			Symbol:   t.Symbol,
			Name:     t.Name,
			Decimals: t.Decimals,
			LogoURI:  t.LogoURI,
			Color:    t.Color,
		})
	}
	return table, nil
}
