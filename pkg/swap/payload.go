package swap

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"wallet-swap/pkg/amount"
	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/token"
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive decimal")
	ErrMissingRoute  = errors.New("generic swap requires a route")
	ErrUnknownChain  = errors.New("token chain is not in the registry")
)

// Route is the externally supplied destination for a generic swap. The
// calldata already encodes recipient and amounts; for token input it assumes a
// prior approval of the spender.
type Route struct {
	To       common.Address
	Calldata []byte
}

// Intent is one swap request. It lives for a single pipeline run.
type Intent struct {
	TokenIn  token.Token
	TokenOut token.Token
	AmountIn string
	Scenario Scenario
	Route    *Route
	Owner    common.Address
}

// Payload is a ready-to-submit transaction intent.
type Payload struct {
	To      common.Address `json:"to"`
	Data    hexutil.Bytes  `json:"data"`
	Value   *hexutil.Big   `json:"value"`
	ChainID uint64         `json:"chainId"`
}

// Wrapped-native function selectors, derived from the canonical signatures the
// same way the chain derives them.
var (
	selectorDeposit  = selector("deposit()")
	selectorWithdraw = selector("withdraw(uint256)")
)

func selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// BuildPayload assembles destination, calldata, and value for an intent. All
// amount scaling is integer arithmetic on the token's decimals; floats never
// touch the output.
func BuildPayload(intent Intent) (Payload, error) {
	raw, err := amount.ParseUnits(intent.AmountIn, intent.TokenIn.Decimals)
	if err != nil || raw.Sign() <= 0 {
		return Payload{}, ErrInvalidAmount
	}
	// uint256 is the ceiling for both call values and withdraw's argument.
	if raw.BitLen() > 256 {
		return Payload{}, ErrInvalidAmount
	}

	info, ok := chains.Lookup(intent.TokenIn.Chain)
	if !ok {
		return Payload{}, ErrUnknownChain
	}

	switch intent.Scenario {
	case Wrap:
		// deposit() carries the amount as call value, no arguments.
		return Payload{
			To:      info.WrappedAddress,
			Data:    selectorDeposit[:],
			Value:   (*hexutil.Big)(raw),
			ChainID: info.ChainID,
		}, nil

	case Unwrap:
		// withdraw(uint256): selector plus one left-padded 32-byte word.
		data := make([]byte, 4+32)
		copy(data, selectorWithdraw[:])
		raw.FillBytes(data[4:])
		return Payload{
			To:      info.WrappedAddress,
			Data:    data,
			Value:   (*hexutil.Big)(new(big.Int)),
			ChainID: info.ChainID,
		}, nil

	default:
		if intent.Route == nil || len(intent.Route.Calldata) == 0 {
			return Payload{}, ErrMissingRoute
		}
		value := new(big.Int)
		if token.Classify(intent.TokenIn) == token.Native {
			value = raw
		}
		data := make([]byte, len(intent.Route.Calldata))
		copy(data, intent.Route.Calldata)
		return Payload{
			To:      intent.Route.To,
			Data:    data,
			Value:   (*hexutil.Big)(value),
			ChainID: info.ChainID,
		}, nil
	}
}
