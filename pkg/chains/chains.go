package chains

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain identifies a supported EVM network.
type Chain string

const (
	Ethereum  Chain = "ethereum"
	BSC       Chain = "bsc"
	Polygon   Chain = "polygon"
	Arbitrum  Chain = "arbitrum"
	Base      Chain = "base"
	Avalanche Chain = "avalanche"
)

// NativeSentinel is the dead-address convention some token lists use for the
// native coin. The string sentinels "native"/"NATIVE" are handled alongside it.
const NativeSentinel = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// Info describes one chain's native and wrapped-native assets. All lookups go
// through this table instead of ad-hoc symbol/address comparisons at call sites.
type Info struct {
	Chain          Chain
	ChainID        uint64
	NativeSymbol   string
	NativeDecimals uint8
	WrappedSymbol  string
	WrappedAddress common.Address
}

var registry = map[Chain]Info{
	Ethereum: {
		Chain:          Ethereum,
		ChainID:        1,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		WrappedSymbol:  "WETH",
		WrappedAddress: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
	},
	BSC: {
		Chain:          BSC,
		ChainID:        56,
		NativeSymbol:   "BNB",
		NativeDecimals: 18,
		WrappedSymbol:  "WBNB",
		WrappedAddress: common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEF2aF88c6D79539bba2"),
	},
	Polygon: {
		Chain:          Polygon,
		ChainID:        137,
		NativeSymbol:   "POL",
		NativeDecimals: 18,
		WrappedSymbol:  "WPOL",
		WrappedAddress: common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"),
	},
	Arbitrum: {
		Chain:          Arbitrum,
		ChainID:        42161,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		WrappedSymbol:  "WETH",
		WrappedAddress: common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
	},
	Base: {
		Chain:          Base,
		ChainID:        8453,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		WrappedSymbol:  "WETH",
		WrappedAddress: common.HexToAddress("0x4200000000000000000000000000000000000006"),
	},
	Avalanche: {
		Chain:          Avalanche,
		ChainID:        43114,
		NativeSymbol:   "AVAX",
		NativeDecimals: 18,
		WrappedSymbol:  "WAVAX",
		WrappedAddress: common.HexToAddress("0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7"),
	},
}

// Lookup returns the registry entry for a chain.
func Lookup(c Chain) (Info, bool) {
	info, ok := registry[c]
	return info, ok
}

// Parse resolves a user-entered chain name.
func Parse(name string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := registry[c]; !ok {
		return "", fmt.Errorf("unsupported chain: %s", name)
	}
	return c, nil
}

// All returns the registry entries in a stable order.
func All() []Info {
	order := []Chain{Ethereum, BSC, Polygon, Arbitrum, Base, Avalanche}
	out := make([]Info, 0, len(order))
	for _, c := range order {
		out = append(out, registry[c])
	}
	return out
}

// IsNativeSentinel reports whether an address string denotes the native coin.
func IsNativeSentinel(addr string) bool {
	if strings.EqualFold(addr, "native") {
		return true
	}
	return strings.EqualFold(addr, NativeSentinel)
}
