// Package benchmark computes vs-hold metrics: how the vault's share price
// performed against simply holding the underlying assets.
package benchmark

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaultlens/vaultlens/internal/domain"
)

const (
	secondsPerDay = int64(86400)

	// minBenchmarkAgeDays gates the lifetime figure: under three days of
	// history the benchmark is disabled instead of extrapolated.
	minBenchmarkAgeDays = 3

	// minActiveAgeDays: vs-hold is shown only for vaults older than this.
	minActiveAgeDays = 2

	creationPriceDecimals = 18
)

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// Input carries the raw material for one vs-hold comparison. Resolved
// assets supply display symbols for the per-asset breakdown.
type Input struct {
	SharePrice             string
	CreatedAt              int64
	Now                    time.Time
	Assets                 []domain.ResolvedAsset
	AssetsPricesOnCreation []string
	AssetsPricesLast       []string
	Prices                 domain.PriceTable
	VSHoldAnnualized       string
	VSHoldAssetsAnnualized []string
}

// Output is the vs-hold metric set plus the activity gate.
type Output struct {
	VSHold domain.VSHold
	Active bool
}

// Compare derives the vs-hold metrics. The comparator never invents
// benchmark data: absent per-asset rates yield an empty breakdown.
func Compare(in Input) Output {
	ageDays := ageInDays(in.CreatedAt, in.Now)

	sharePrice := domain.LenientDecimal(in.SharePrice)
	active := ageDays > minActiveAgeDays && !sharePrice.IsZero()

	lifetime := decimal.Zero
	if ageDays >= minBenchmarkAgeDays {
		if v, ok := domain.ParseSample(in.VSHoldAnnualized); ok {
			lifetime = domain.RoundPercent(v)
		}
	}

	age := decimal.NewFromInt(ageDays)
	prorated := domain.RoundPercent(lifetime.Div(daysPerYear).Mul(age))

	out := Output{
		VSHold: domain.VSHold{
			LifetimeAnnualized:    lifetime,
			CurrentWindowProrated: prorated,
		},
		Active: active,
	}

	if len(in.VSHoldAssetsAnnualized) == 0 {
		return out
	}

	out.VSHold.PerAsset = make([]domain.HoldAssetDelta, 0, len(in.Assets))
	for i, asset := range in.Assets {
		priceNow := assetPriceNow(in, i, asset.Address)
		priceAtCreation := decimal.Zero
		if i < len(in.AssetsPricesOnCreation) {
			priceAtCreation = domain.FromFixedPoint(in.AssetsPricesOnCreation[i], creationPriceDecimals)
		}

		deltaPct := decimal.Zero
		if !priceAtCreation.IsZero() {
			deltaPct = priceNow.Sub(priceAtCreation).Div(priceAtCreation).Mul(hundred)
		}

		annualized := decimal.Zero
		if i < len(in.VSHoldAssetsAnnualized) {
			annualized = domain.LenientDecimal(in.VSHoldAssetsAnnualized[i])
		}
		proratedDelta := annualized.Div(daysPerYear).Mul(age)

		out.VSHold.PerAsset = append(out.VSHold.PerAsset, domain.HoldAssetDelta{
			Symbol:          asset.Symbol,
			PriceAtCreation: domain.RoundPercent(priceAtCreation),
			PriceNow:        domain.RoundPercent(priceNow),
			PriceDeltaPct:   domain.RoundPercent(deltaPct),
			AnnualizedDelta: domain.RoundPercent(annualized),
			ProratedDelta:   domain.RoundPercent(proratedDelta),
		})
	}

	return out
}

// ageInDays counts whole elapsed days since creation, floored.
func ageInDays(createdAt int64, now time.Time) int64 {
	elapsed := now.Unix() - createdAt
	if elapsed < 0 {
		return 0
	}
	return elapsed / secondsPerDay
}

// assetPriceNow prefers the record's last-known per-asset price and falls
// back to the shared price table.
func assetPriceNow(in Input, index int, address string) decimal.Decimal {
	if index < len(in.AssetsPricesLast) {
		if v, ok := domain.ParseSample(in.AssetsPricesLast[index]); ok {
			return v
		}
	}
	price, _ := in.Prices.Price(address)
	return price
}
