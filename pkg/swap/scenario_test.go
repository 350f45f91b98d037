package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/token"
)

func nativeETH() token.Token {
	return token.Token{Chain: chains.Ethereum, Address: "native", Symbol: "ETH", Decimals: 18, IsNative: true}
}

func wrappedETH() token.Token {
	return token.Token{
		Chain:    chains.Ethereum,
		Address:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		Symbol:   "WETH",
		Decimals: 18,
	}
}

func usdc() token.Token {
	return token.Token{
		Chain:    chains.Ethereum,
		Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Symbol:   "USDC",
		Decimals: 6,
	}
}

func TestResolveScenario(t *testing.T) {
	tests := []struct {
		name string
		in   token.Token
		out  token.Token
		want Scenario
	}{
		{name: "native to wrapped is wrap", in: nativeETH(), out: wrappedETH(), want: Wrap},
		{name: "wrapped to native is unwrap", in: wrappedETH(), out: nativeETH(), want: Unwrap},
		{name: "generic to wrapped is swap", in: usdc(), out: wrappedETH(), want: GenericSwap},
		{name: "native to generic is swap", in: nativeETH(), out: usdc(), want: GenericSwap},
		{name: "generic to generic is swap", in: usdc(), out: usdc(), want: GenericSwap},
		// invalid pairs the caller must reject upstream; they still resolve
		{name: "native to native", in: nativeETH(), out: nativeETH(), want: GenericSwap},
		{name: "wrapped to wrapped", in: wrappedETH(), out: wrappedETH(), want: GenericSwap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScenario(tt.in, tt.out))
			// deterministic
			assert.Equal(t, ResolveScenario(tt.in, tt.out), ResolveScenario(tt.in, tt.out))
		})
	}
}
