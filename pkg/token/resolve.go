package token

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"wallet-swap/pkg/chains"
)

// Resolve builds a Token from user input. Native and wrapped-native symbols
// resolve from the chain registry; any other symbol needs a contract address
// and decimals from the caller.
func Resolve(chain chains.Chain, symbol, address string, decimals uint8) (Token, error) {
	info, ok := chains.Lookup(chain)
	if !ok {
		return Token{}, fmt.Errorf("unsupported chain: %s", chain)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if symbol == info.NativeSymbol && address == "" {
		return Token{
			Chain:    chain,
			Address:  "native",
			Symbol:   symbol,
			Decimals: info.NativeDecimals,
			IsNative: true,
		}, nil
	}

	if symbol == info.WrappedSymbol && address == "" {
		return Token{
			Chain:    chain,
			Address:  info.WrappedAddress.Hex(),
			Symbol:   symbol,
			Decimals: info.NativeDecimals,
		}, nil
	}

	if address == "" {
		return Token{}, fmt.Errorf("token %s needs a contract address on %s", symbol, chain)
	}
	if !common.IsHexAddress(address) {
		return Token{}, fmt.Errorf("invalid token address: %s", address)
	}
	if decimals == 0 {
		return Token{}, fmt.Errorf("token %s needs a decimals value", symbol)
	}

	return Token{
		Chain:    chain,
		Address:  common.HexToAddress(address).Hex(),
		Symbol:   symbol,
		Decimals: decimals,
	}, nil
}
