package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceInfo is the USD price of one asset.
type PriceInfo struct {
	Price decimal.Decimal `json:"price"`
}

// PriceTable maps lowercase asset addresses to current USD prices.
// It is a read-only snapshot valid for one enrichment pass; missing
// entries degrade the affected metrics instead of failing the pass.
type PriceTable map[string]PriceInfo

// Price returns the USD price for the address (case-insensitive).
// Missing entries return zero.
func (t PriceTable) Price(address string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	info, ok := t[strings.ToLower(address)]
	if !ok {
		return decimal.Zero, false
	}
	return info.Price, true
}
