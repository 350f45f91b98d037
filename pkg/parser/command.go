// Package parser turns the CLI's free-form swap phrase into a structured
// request. The grammar is:
//
//	[swap] <amount> <token-term> to <token-term>
//
// where a token-term is a symbol, optionally annotated with the contract
// details a generic token needs: SYMBOL[@address[:decimals]]. Examples:
//
//	1 ETH to WETH
//	swap 0.5 WETH to ETH
//	100 USDC@0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48:6 to ETH
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenTerm is one side of the pair as the user wrote it. Address and
// Decimals are zero-valued unless the term carried an @annotation; the
// registry fills them in for native and wrapped tokens.
type TokenTerm struct {
	Symbol   string
	Address  string
	Decimals uint8
}

// Request is a parsed swap phrase. Amount stays a decimal string; scaling to
// base units happens against the resolved token's decimals, not here.
type Request struct {
	Amount string
	In     TokenTerm
	Out    TokenTerm
}

var (
	amountPattern = regexp.MustCompile(`^\d+(\.\d*)?$`)
	symbolPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// ParseSwapCommand parses one swap phrase into a Request.
func ParseSwapCommand(command string) (*Request, error) {
	fields := strings.Fields(command)
	if len(fields) > 0 && strings.EqualFold(fields[0], "swap") {
		fields = fields[1:]
	}
	if len(fields) != 4 || !strings.EqualFold(fields[2], "to") {
		return nil, fmt.Errorf("invalid swap command, expected '<amount> <token> to <token>' (e.g. '1 ETH to WETH')")
	}

	if !amountPattern.MatchString(fields[0]) {
		return nil, fmt.Errorf("invalid amount %q", fields[0])
	}

	in, err := parseTokenTerm(fields[1])
	if err != nil {
		return nil, err
	}
	out, err := parseTokenTerm(fields[3])
	if err != nil {
		return nil, err
	}

	return &Request{Amount: fields[0], In: in, Out: out}, nil
}

// parseTokenTerm splits SYMBOL[@address[:decimals]]. The symbol is
// upper-cased; the address keeps its checksum casing.
func parseTokenTerm(term string) (TokenTerm, error) {
	symbol, annotation, annotated := strings.Cut(term, "@")
	if !symbolPattern.MatchString(symbol) {
		return TokenTerm{}, fmt.Errorf("invalid token symbol %q", symbol)
	}

	t := TokenTerm{Symbol: strings.ToUpper(symbol)}
	if !annotated {
		return t, nil
	}

	addr, decimals, hasDecimals := strings.Cut(annotation, ":")
	if !common.IsHexAddress(addr) {
		return TokenTerm{}, fmt.Errorf("invalid token address %q", addr)
	}
	t.Address = addr

	if hasDecimals {
		d, err := strconv.ParseUint(decimals, 10, 8)
		if err != nil {
			return TokenTerm{}, fmt.Errorf("invalid token decimals %q", decimals)
		}
		t.Decimals = uint8(d)
	}
	return t, nil
}

// ValidateRequest rejects requests no scenario can serve before anything
// touches the network.
func ValidateRequest(req *Request) error {
	if req.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if req.In.Symbol == "" || req.Out.Symbol == "" {
		return fmt.Errorf("both tokens are required")
	}
	if req.In.Symbol == req.Out.Symbol {
		return fmt.Errorf("input and output tokens must differ")
	}
	return nil
}
