package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vaultlens/vaultlens/internal/domain"
	"github.com/vaultlens/vaultlens/pkg/retrier"
)

const apiRequestTimeout = 30 * time.Second

// Snapshot is one normalized pull from the aggregation API: vault records
// and the price table, both keyed by chain id.
type Snapshot struct {
	Prices map[string]domain.PriceTable
	Vaults map[string][]domain.VaultRecord
}

// APIClient fetches the aggregation API seed endpoint and normalizes its
// payload into domain records. Transient failures retry with backoff.
type APIClient struct {
	seed   string
	http   *http.Client
	retr   *retrier.Retrier
	logger *zap.Logger
}

// NewAPIClient creates a client for the given seed URL.
func NewAPIClient(seed string, logger *zap.Logger) *APIClient {
	return &APIClient{
		seed:   seed,
		http:   &http.Client{Timeout: apiRequestTimeout},
		retr:   retrier.New(retrier.WithMaxRetries(3)),
		logger: logger,
	}
}

// flexString tolerates the API sending numeric fields as either JSON
// numbers or strings. Unparseable values decode to the empty string and
// coerce to zero downstream.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = ""
		return nil
	}
	*f = flexString(n.String())
	return nil
}

type apiVaultAPR struct {
	IncomeLatest         flexString   `json:"incomeLatest"`
	Income24H            flexString   `json:"income24h"`
	IncomeWeek           flexString   `json:"incomeWeek"`
	VSHoldLifetime       flexString   `json:"vsHoldLifetime"`
	VSHoldAssetsLifetime []flexString `json:"vsHoldAssetsLifetime"`
}

type apiVault struct {
	Address                string         `json:"address"`
	Name                   string         `json:"name"`
	Symbol                 string         `json:"symbol"`
	Created                int64          `json:"created"`
	SharePrice             flexString     `json:"sharePrice"`
	TVL                    flexString     `json:"tvl"`
	Assets                 []string       `json:"assets"`
	AssetsAmounts          []flexString   `json:"assetsAmounts"`
	APR                    apiVaultAPR    `json:"apr"`
	Risk                   *apiVaultRisk  `json:"risk"`
	StrategyShortID        string         `json:"strategyShortId"`
	StrategySpecific       string         `json:"strategySpecific"`
	Underlying             string         `json:"underlying"`
	ALMFee                 *apiALMFee     `json:"almFee"`
	ALMRebalanceRawData    [][]flexString `json:"almRebalanceRawData"`
	AssetsPricesOnCreation []flexString   `json:"assetsPricesOnCreation"`
	AssetsPricesLast       []flexString   `json:"assetsPricesLast"`
}

type apiVaultRisk struct {
	Symbol string `json:"symbol"`
}

type apiALMFee struct {
	Income flexString `json:"income"`
}

type apiUnderlyingAPR struct {
	APR struct {
		Daily   flexString `json:"daily"`
		Weekly  flexString `json:"weekly"`
		Monthly flexString `json:"monthly"`
	} `json:"apr"`
}

type apiPayload struct {
	AssetPrices map[string]map[string]struct {
		Price flexString `json:"price"`
	} `json:"assetPrices"`
	Vaults      map[string]map[string]apiVault         `json:"vaults"`
	Underlyings map[string]map[string]apiUnderlyingAPR `json:"underlyings"`
}

// FetchSnapshot pulls and normalizes one full API snapshot. A malformed
// vault entry is skipped with a warning; it never fails the batch.
func (c *APIClient) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	payload, err := retrier.DoWithData(c.retr, ctx, func(ctx context.Context) (*apiPayload, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch API snapshot from %s", c.seed)
	}

	snap := &Snapshot{
		Prices: make(map[string]domain.PriceTable, len(payload.AssetPrices)),
		Vaults: make(map[string][]domain.VaultRecord, len(payload.Vaults)),
	}

	for chainID, prices := range payload.AssetPrices {
		table := make(domain.PriceTable, len(prices))
		for address, info := range prices {
			price, err := decimal.NewFromString(string(info.Price))
			if err != nil {
				c.logger.Warn("skipping unparseable asset price",
					zap.String("chain", chainID),
					zap.String("asset", address))
				continue
			}
			table[strings.ToLower(address)] = domain.PriceInfo{Price: price}
		}
		snap.Prices[chainID] = table
	}

	for chainID, vaults := range payload.Vaults {
		records := make([]domain.VaultRecord, 0, len(vaults))
		for _, v := range vaults {
			rec, err := c.normalizeVault(chainID, v, payload.Underlyings[chainID])
			if err != nil {
				c.logger.Warn("skipping malformed vault entry",
					zap.String("chain", chainID),
					zap.String("vault", v.Address),
					zap.Error(err))
				continue
			}
			records = append(records, rec)
		}
		snap.Vaults[chainID] = records
	}

	return snap, nil
}

func (c *APIClient) fetch(ctx context.Context) (*apiPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.seed, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build API request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call aggregation API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("aggregation API returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retrier.Permanent(err)
		}
		return nil, err
	}

	var payload apiPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode API payload")
	}
	return &payload, nil
}

func (c *APIClient) normalizeVault(chainID string, v apiVault, underlyings map[string]apiUnderlyingAPR) (domain.VaultRecord, error) {
	if v.Address == "" {
		return domain.VaultRecord{}, errors.New("vault address is empty")
	}

	assets := make([]domain.VaultAsset, len(v.Assets))
	for i, address := range v.Assets {
		amount := ""
		if i < len(v.AssetsAmounts) {
			amount = string(v.AssetsAmounts[i])
		}
		assets[i] = domain.VaultAsset{
			Address:   strings.ToLower(address),
			RawAmount: amount,
		}
	}

	apr := domain.APRSamples{
		TotalWithFees: domain.APRWindowSamples{
			Daily:  string(v.APR.Income24H),
			Weekly: string(v.APR.IncomeWeek),
		},
		TotalWithoutFees: domain.APRWindowSamples{
			Latest: string(v.APR.IncomeLatest),
			Daily:  string(v.APR.Income24H),
			Weekly: string(v.APR.IncomeWeek),
		},
		Farm: domain.APRWindowSamples{
			Daily:  string(v.APR.Income24H),
			Weekly: string(v.APR.IncomeWeek),
		},
	}

	if pool, ok := underlyings[strings.ToLower(v.Underlying)]; ok {
		apr.PoolSwapFees.Daily = string(pool.APR.Daily)
		// the source reports monthly when weekly is missing
		apr.PoolSwapFees.Weekly = string(pool.APR.Weekly)
		if apr.PoolSwapFees.Weekly == "" {
			apr.PoolSwapFees.Weekly = string(pool.APR.Monthly)
		}
	}

	rec := domain.VaultRecord{
		Address:          strings.ToLower(v.Address),
		Name:             v.Name,
		Symbol:           v.Symbol,
		ChainID:          chainID,
		CreatedAt:        v.Created,
		SharePrice:       string(v.SharePrice),
		TVL:              string(v.TVL),
		Assets:           assets,
		APR:              apr,
		StrategyShortID:  v.StrategyShortID,
		StrategySpecific: v.StrategySpecific,
		VSHoldAnnualized: string(v.APR.VSHoldLifetime),
	}

	if v.Risk != nil {
		rec.RiskSymbol = v.Risk.Symbol
	}
	if v.ALMFee != nil {
		rec.ALMFeePercent = string(v.ALMFee.Income)
	}

	for _, raw := range v.ALMRebalanceRawData {
		if len(raw) < 4 {
			continue
		}
		ts, _ := decimal.NewFromString(string(raw[3]))
		rec.ALMRebalances = append(rec.ALMRebalances, domain.RebalanceSample{
			Value0:    string(raw[0]),
			Value1:    string(raw[1]),
			Value2:    string(raw[2]),
			Timestamp: ts.IntPart(),
		})
	}

	rec.AssetsPricesOnCreation = flexStrings(v.AssetsPricesOnCreation)
	rec.AssetsPricesLast = flexStrings(v.AssetsPricesLast)
	rec.VSHoldAssetsAnnualized = flexStrings(v.APR.VSHoldAssetsLifetime)

	return rec, nil
}

func flexStrings(in []flexString) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
