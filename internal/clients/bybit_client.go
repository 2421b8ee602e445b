package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewBybitClient creates an unauthenticated Bybit client for public
// market data endpoints.
func NewBybitClient() *bybit.Client {
	return bybit.NewClient()
}
