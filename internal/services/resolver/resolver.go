// Package resolver maps raw vault asset positions to display metadata,
// USD valuations and proportional allocation.
package resolver

import (
	"github.com/shopspring/decimal"

	"github.com/vaultlens/vaultlens/internal/domain"
)

const defaultTokenDecimals = 18

var hundred = decimal.NewFromInt(100)

// Result is the resolved view of a vault's underlying assets.
type Result struct {
	Assets []domain.ResolvedAsset
	// ValuesUSD is index-aligned with Assets; a missing price yields zero.
	ValuesUSD []decimal.Decimal
	TotalUSD  decimal.Decimal
	// Proportions are rounded integer percentages. When the total USD
	// value is zero every asset gets an equal share, signaling that the
	// allocation is unknown rather than worthless.
	Proportions []int
}

// Resolve computes USD holdings and allocation for the vault's assets.
// A single unpriced or unknown token degrades only its own fields.
func Resolve(assets []domain.VaultAsset, tokens domain.TokenTable, prices domain.PriceTable) Result {
	res := Result{
		Assets:      make([]domain.ResolvedAsset, len(assets)),
		ValuesUSD:   make([]decimal.Decimal, len(assets)),
		Proportions: make([]int, len(assets)),
		TotalUSD:    decimal.Zero,
	}

	for i, asset := range assets {
		resolved := domain.ResolvedAsset{Address: asset.Address}
		decimals := int32(defaultTokenDecimals)

		if meta, ok := tokens.Lookup(asset.Address); ok {
			resolved.Symbol = meta.Symbol
			resolved.Name = meta.Name
			resolved.LogoURI = meta.LogoURI
			resolved.Color = meta.Color
			if meta.Decimals > 0 {
				decimals = meta.Decimals
			}
		}
		res.Assets[i] = resolved

		quantity := domain.FromFixedPoint(asset.RawAmount, decimals)
		price, _ := prices.Price(asset.Address)
		value := quantity.Mul(price)

		res.ValuesUSD[i] = value
		res.TotalUSD = res.TotalUSD.Add(value)
	}

	if res.TotalUSD.IsPositive() {
		for i, value := range res.ValuesUSD {
			res.Proportions[i] = int(value.Div(res.TotalUSD).Mul(hundred).Round(0).IntPart())
		}
		return res
	}

	if len(assets) > 0 {
		equal := int(hundred.DivRound(decimal.NewFromInt(int64(len(assets))), 0).IntPart())
		for i := range res.Proportions {
			res.Proportions[i] = equal
		}
	}

	return res
}
