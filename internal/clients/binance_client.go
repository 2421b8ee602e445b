package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates an unauthenticated Binance client. Only public
// market data endpoints are used, so no API keys are needed.
func NewBinanceClient() *binance.Client {
	return binance.NewClient("", "")
}
