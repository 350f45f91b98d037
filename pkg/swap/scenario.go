package swap

import (
	"wallet-swap/pkg/token"
)

// Scenario is the execution path for a token pair.
type Scenario int

const (
	GenericSwap Scenario = iota
	Wrap
	Unwrap
)

func (s Scenario) String() string {
	switch s {
	case Wrap:
		return "wrap"
	case Unwrap:
		return "unwrap"
	default:
		return "swap"
	}
}

// ResolveScenario classifies a (tokenIn, tokenOut) pair. Wrap and Unwrap are
// the direct native<->wrapped conversions; everything else routes through a
// generic swap. Native->Native and wrapped->wrapped pairs also resolve to
// GenericSwap and are rejected downstream for lacking a route.
func ResolveScenario(in, out token.Token) Scenario {
	ci, co := token.Classify(in), token.Classify(out)
	switch {
	case ci == token.Native && co == token.WrappedNative:
		return Wrap
	case ci == token.WrappedNative && co == token.Native:
		return Unwrap
	default:
		return GenericSwap
	}
}
