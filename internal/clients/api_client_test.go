package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPayload = `{
  "assetPrices": {
    "137": {
      "0xUSDC": {"price": "1.0001"},
      "0xWETH": {"price": 2500.5},
      "0xBAD":  {"price": "garbage"}
    }
  },
  "vaults": {
    "137": {
      "0xVault1": {
        "address": "0xVault1",
        "name": "Test Vault",
        "symbol": "TV",
        "created": 1700000000,
        "sharePrice": "1.05",
        "tvl": 123456.78,
        "assets": ["0xUSDC", "0xWETH"],
        "assetsAmounts": ["1000000000", "2000000000000000000000"],
        "apr": {
          "incomeLatest": "10.5",
          "income24h": 9.8,
          "incomeWeek": "11.2",
          "vsHoldLifetime": "20",
          "vsHoldAssetsLifetime": ["5", 7]
        },
        "risk": {"symbol": "REKT"},
        "strategyShortId": "IQMF",
        "strategySpecific": "Narrow",
        "underlying": "0xPool",
        "almFee": {"income": "10"},
        "almRebalanceRawData": [["500000000", "100000000", "700000000", "1700000100"]],
        "assetsPricesOnCreation": ["1000000000000000000", "2000000000000000000000"],
        "assetsPricesLast": ["1.0", "2500"]
      },
      "0xBroken": {
        "name": "No Address"
      }
    }
  },
  "underlyings": {
    "137": {
      "0xpool": {
        "apr": {"daily": "2.5", "monthly": "3.5"}
      }
    }
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL, zap.NewNop()), server
}

func TestFetchSnapshot(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testPayload))
	})

	snap, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)

	t.Run("prices normalized and lowercased", func(t *testing.T) {
		prices := snap.Prices["137"]
		require.NotNil(t, prices)

		usdc, ok := prices.Price("0xUSDC")
		assert.True(t, ok)
		assert.Equal(t, "1.0001", usdc.String())

		weth, ok := prices.Price("0xweth")
		assert.True(t, ok)
		assert.Equal(t, "2500.5", weth.String())

		// unparseable price skipped, not zeroed
		_, ok = prices.Price("0xbad")
		assert.False(t, ok)
	})

	t.Run("vault record normalized", func(t *testing.T) {
		records := snap.Vaults["137"]
		require.Len(t, records, 1, "broken vault entry must be skipped")

		rec := records[0]
		assert.Equal(t, "0xvault1", rec.Address)
		assert.Equal(t, "Test Vault", rec.Name)
		assert.Equal(t, "137", rec.ChainID)
		assert.Equal(t, int64(1700000000), rec.CreatedAt)
		assert.Equal(t, "1.05", rec.SharePrice)
		assert.Equal(t, "123456.78", rec.TVL)
		assert.Equal(t, "REKT", rec.RiskSymbol)
		assert.Equal(t, "IQMF", rec.StrategyShortID)
		assert.Equal(t, "10", rec.ALMFeePercent)

		require.Len(t, rec.Assets, 2)
		assert.Equal(t, "0xusdc", rec.Assets[0].Address)
		assert.Equal(t, "1000000000", rec.Assets[0].RawAmount)
	})

	t.Run("apr windows mapped", func(t *testing.T) {
		apr := snap.Vaults["137"][0].APR

		assert.Equal(t, "10.5", apr.TotalWithoutFees.Latest)
		assert.Equal(t, "9.8", apr.TotalWithFees.Daily)
		assert.Equal(t, "11.2", apr.TotalWithFees.Weekly)
		assert.Equal(t, "9.8", apr.Farm.Daily)

		// pool swap fee windows come from the underlying pool entry,
		// monthly standing in for the missing weekly figure
		assert.Equal(t, "2.5", apr.PoolSwapFees.Daily)
		assert.Equal(t, "3.5", apr.PoolSwapFees.Weekly)
	})

	t.Run("rebalance rows parsed", func(t *testing.T) {
		rec := snap.Vaults["137"][0]
		require.Len(t, rec.ALMRebalances, 1)
		assert.Equal(t, "500000000", rec.ALMRebalances[0].Value0)
		assert.Equal(t, int64(1700000100), rec.ALMRebalances[0].Timestamp)
	})

	t.Run("benchmark fields carried", func(t *testing.T) {
		rec := snap.Vaults["137"][0]
		assert.Equal(t, "20", rec.VSHoldAnnualized)
		assert.Equal(t, []string{"5", "7"}, rec.VSHoldAssetsAnnualized)
		assert.Equal(t, []string{"1.0", "2500"}, rec.AssetsPricesLast)
	})
}

func TestFetchSnapshotServerError(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchSnapshot(context.Background())
	assert.Error(t, err)
	assert.Greater(t, calls, 1, "5xx responses should be retried")
}

func TestFetchSnapshotClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchSnapshot(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchSnapshotMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := client.FetchSnapshot(context.Background())
	assert.Error(t, err)
}
