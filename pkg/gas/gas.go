package gas

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"

	"wallet-swap/pkg/amount"
	"wallet-swap/pkg/token"
)

// OperationKind selects the fallback gas limit when no live quote is present.
type OperationKind int

const (
	TransferNative OperationKind = iota
	TransferToken
	Swap
)

func (k OperationKind) String() string {
	switch k {
	case TransferNative:
		return "transfer-native"
	case TransferToken:
		return "transfer-token"
	default:
		return "swap"
	}
}

// Source tells callers whether the estimate came from live chain data or the
// fixed fallbacks.
type Source int

const (
	Fallback Source = iota
	Live
)

func (s Source) String() string {
	if s == Live {
		return "live"
	}
	return "fallback"
}

// Fallback constants, used whenever the caller has no live quote. Limits match
// the usual cost of each operation on EVM chains; the price is a deliberately
// conservative 20 gwei.
const (
	FallbackLimitTransferNative = uint64(21000)
	FallbackLimitTransferToken  = uint64(65000)
	FallbackLimitSwap           = uint64(150000)
	FallbackGasPriceGwei        = int64(20)
)

// LiveQuote carries externally fetched gas data.
type LiveQuote struct {
	GasLimit    uint64
	GasPriceWei *big.Int
}

// Estimate is the cost of one operation. CostWei is exact; CostNative is its
// decimal rendering; CostUSD is display-only.
type Estimate struct {
	GasLimit    uint64
	GasPriceWei *big.Int
	CostWei     *big.Int
	CostNative  string
	CostUSD     float64
	Source      Source
}

// NativeUSDPrice is the USD price of the chain's gas coin; 0 means unknown.
// Supplied per call so estimates are never cached across price updates.
type NativeUSDPrice float64

// EstimateCost produces a gas estimate for an operation on a token's chain.
// A supplied live quote wins; otherwise the fixed fallbacks apply. Malformed
// live data (zero limit or missing price) also falls back. Never fails.
func EstimateCost(t token.Token, kind OperationKind, live *LiveQuote, nativeUSD NativeUSDPrice) Estimate {
	limit := fallbackLimit(kind)
	price := new(big.Int).Mul(big.NewInt(FallbackGasPriceGwei), big.NewInt(params.GWei))
	source := Fallback

	if live != nil && live.GasLimit > 0 && live.GasPriceWei != nil && live.GasPriceWei.Sign() > 0 {
		limit = live.GasLimit
		price = new(big.Int).Set(live.GasPriceWei)
		source = Live
	}

	costWei := new(big.Int).Mul(new(big.Int).SetUint64(limit), price)
	costNative := amount.FormatUnits(costWei, 18)

	costUSD := 0.0
	if nativeUSD > 0 {
		f, _ := new(big.Float).Quo(
			new(big.Float).SetInt(costWei),
			new(big.Float).SetInt(big.NewInt(params.Ether)),
		).Float64()
		costUSD = f * float64(nativeUSD)
	}

	return Estimate{
		GasLimit:    limit,
		GasPriceWei: price,
		CostWei:     costWei,
		CostNative:  costNative,
		CostUSD:     costUSD,
		Source:      source,
	}
}

func fallbackLimit(kind OperationKind) uint64 {
	switch kind {
	case TransferNative:
		return FallbackLimitTransferNative
	case TransferToken:
		return FallbackLimitTransferToken
	default:
		return FallbackLimitSwap
	}
}
