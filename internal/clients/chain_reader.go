package clients

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vaultlens/vaultlens/internal/domain"
)

const sharePriceDecimals = 18

// vaultReaderABI covers the two read-only vault views the collector
// refreshes between API polls.
const vaultReaderABI = `[
	{"type":"function","name":"price","stateMutability":"view","inputs":[],"outputs":[{"name":"price_","type":"uint256"},{"name":"trusted_","type":"bool"}]},
	{"type":"function","name":"assetsAmounts","stateMutability":"view","inputs":[],"outputs":[{"name":"assets_","type":"address[]"},{"name":"amounts_","type":"uint256[]"}]}
]`

// ChainReader refreshes vault state (share price, asset amounts) with
// direct contract reads, keeping table figures fresher than the API poll.
type ChainReader struct {
	client *ethclient.Client
	abi    abi.ABI
	logger *zap.Logger
}

// NewChainReader dials the RPC endpoint and prepares the vault ABI.
func NewChainReader(rpcURL string, logger *zap.Logger) (*ChainReader, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrapf(err, "dial RPC endpoint %s", rpcURL)
	}

	parsed, err := abi.JSON(strings.NewReader(vaultReaderABI))
	if err != nil {
		return nil, errors.Wrap(err, "parse vault ABI")
	}

	return &ChainReader{client: client, abi: parsed, logger: logger}, nil
}

// Refresh overwrites the record's share price and raw asset amounts with
// live chain values. On error the record keeps its API-reported figures;
// the caller decides whether stale data is acceptable.
func (r *ChainReader) Refresh(ctx context.Context, rec *domain.VaultRecord) error {
	vault := common.HexToAddress(rec.Address)

	sharePrice, err := r.readSharePrice(ctx, vault)
	if err != nil {
		return errors.Wrapf(err, "read share price of %s", rec.Address)
	}
	rec.SharePrice = sharePrice.String()

	assets, amounts, err := r.readAssetsAmounts(ctx, vault)
	if err != nil {
		return errors.Wrapf(err, "read asset amounts of %s", rec.Address)
	}

	for i, address := range assets {
		if i >= len(rec.Assets) {
			break
		}
		lowered := strings.ToLower(address.Hex())
		if rec.Assets[i].Address != lowered {
			r.logger.Warn("on-chain asset order differs from API record",
				zap.String("vault", rec.Address),
				zap.String("asset", lowered))
			continue
		}
		rec.Assets[i].RawAmount = amounts[i].String()
	}

	return nil
}

func (r *ChainReader) readSharePrice(ctx context.Context, vault common.Address) (decimal.Decimal, error) {
	data, err := r.abi.Pack("price")
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &vault, Data: data}, nil)
	if err != nil {
		return decimal.Zero, err
	}

	values, err := r.abi.Unpack("price", raw)
	if err != nil {
		return decimal.Zero, err
	}
	price, ok := values[0].(*big.Int)
	if !ok {
		return decimal.Zero, errors.New("unexpected price return type")
	}

	return decimal.NewFromBigInt(price, -sharePriceDecimals), nil
}

func (r *ChainReader) readAssetsAmounts(ctx context.Context, vault common.Address) ([]common.Address, []*big.Int, error) {
	data, err := r.abi.Pack("assetsAmounts")
	if err != nil {
		return nil, nil, err
	}

	raw, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &vault, Data: data}, nil)
	if err != nil {
		return nil, nil, err
	}

	values, err := r.abi.Unpack("assetsAmounts", raw)
	if err != nil {
		return nil, nil, err
	}

	assets, ok := values[0].([]common.Address)
	if !ok {
		return nil, nil, errors.New("unexpected assets return type")
	}
	amounts, ok := values[1].([]*big.Int)
	if !ok {
		return nil, nil, errors.New("unexpected amounts return type")
	}

	return assets, amounts, nil
}

// Close releases the underlying RPC connection.
func (r *ChainReader) Close() {
	r.client.Close()
}
