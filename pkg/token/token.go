package token

import (
	"math/big"
	"strings"

	"wallet-swap/pkg/chains"
)

// Token describes a fungible asset on one chain. BalanceRaw is always the
// smallest-unit amount; amount math scales through Decimals with integers only.
type Token struct {
	Chain    chains.Chain
	Address  string // contract address, or a native sentinel
	Symbol   string
	Decimals uint8
	// BalanceRaw is in base units. Nil is treated as zero.
	BalanceRaw *big.Int
	// USDPrice per whole token; 0 means unknown.
	USDPrice float64
	IsNative bool
}

// Category is the result of classifying a token.
type Category int

const (
	Generic Category = iota
	Native
	WrappedNative
)

func (c Category) String() string {
	switch c {
	case Native:
		return "native"
	case WrappedNative:
		return "wrapped-native"
	default:
		return "generic"
	}
}

// Classify maps a token to exactly one category. It is total: unknown chains
// and malformed addresses fall through to Generic rather than failing.
func Classify(t Token) Category {
	info, ok := chains.Lookup(t.Chain)
	if !ok {
		if t.IsNative || chains.IsNativeSentinel(t.Address) {
			return Native
		}
		return Generic
	}

	if t.IsNative || chains.IsNativeSentinel(t.Address) {
		return Native
	}
	if strings.EqualFold(t.Symbol, info.NativeSymbol) && t.Address == "" {
		return Native
	}

	if strings.EqualFold(t.Address, info.WrappedAddress.Hex()) {
		return WrappedNative
	}
	if strings.EqualFold(t.Symbol, info.WrappedSymbol) {
		return WrappedNative
	}

	return Generic
}

// IsNativeCoin is a convenience wrapper over Classify.
func IsNativeCoin(t Token) bool {
	return Classify(t) == Native
}

// Balance returns the raw balance, treating nil as zero.
func (t Token) Balance() *big.Int {
	if t.BalanceRaw == nil {
		return new(big.Int)
	}
	return t.BalanceRaw
}
