// Package pricer supplies fallback USD prices from exchange spot tickers
// for assets the aggregation API did not price. The metric core never
// calls it; the collector uses it to patch the price table before a pass.
package pricer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vaultlens/vaultlens/internal/domain"
)

// quoteCurrency is the stablecoin leg used for spot lookups.
const quoteCurrency = "USDT"

// Pricer returns the USD price of a token symbol.
type Pricer interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// FillMissing patches price table gaps for the given assets using the
// fallback pricer. Lookup failures leave the gap in place: a missing
// price degrades one metric, a blocked batch degrades all of them.
func FillMissing(ctx context.Context, p Pricer, prices domain.PriceTable, tokens domain.TokenTable,
	assets []domain.VaultAsset, logger *zap.Logger) {

	if p == nil || prices == nil {
		return
	}

	for _, asset := range assets {
		address := strings.ToLower(asset.Address)
		if _, ok := prices.Price(address); ok {
			continue
		}
		meta, ok := tokens.Lookup(address)
		if !ok || meta.Symbol == "" {
			continue
		}

		price, err := p.GetPrice(ctx, meta.Symbol)
		if err != nil {
			logger.Warn("fallback price lookup failed",
				zap.String("asset", address),
				zap.String("symbol", meta.Symbol),
				zap.Error(err))
			continue
		}

		prices[address] = domain.PriceInfo{Price: price}
	}
}
