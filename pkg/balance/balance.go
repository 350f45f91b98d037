// Package balance answers two questions a wallet asks before every swap or
// send: how much of this token can be spent once gas is reserved, and does the
// balance cover a requested amount.
package balance

import (
	"math/big"

	"wallet-swap/pkg/amount"
	"wallet-swap/pkg/gas"
	"wallet-swap/pkg/token"
)

// DefaultGasBufferPct pads the reserved gas cost to absorb price movement
// between estimation and submission.
const DefaultGasBufferPct = 10

// DefaultReserveWei is the reserve applied to native tokens when no estimate
// is available at all: 0.001 of the native coin.
var DefaultReserveWei = big.NewInt(1_000_000_000_000_000)

// Options controls gas reservation in MaxSpendable.
type Options struct {
	// ReserveGas withholds an estimated gas cost from native-token balances.
	ReserveGas bool
	// GasBufferPct pads the reserve; 0 means DefaultGasBufferPct.
	GasBufferPct int
	// Estimate supplies the gas cost to reserve. Nil falls back to
	// DefaultReserveWei.
	Estimate *gas.Estimate
	// MinReserveWei is a floor on the reserve. Nil means no floor.
	MinReserveWei *big.Int
}

// MaxSpendable returns the largest amount, as a decimal string, that can be
// entered without risking an insufficient-gas failure. It never returns a
// negative value and never fails; on any internal inconsistency it returns "0".
func MaxSpendable(t token.Token, opts Options) string {
	bal := t.Balance()
	if bal.Sign() <= 0 {
		return "0"
	}

	if token.Classify(t) != token.Native || !opts.ReserveGas {
		return amount.FormatUnits(bal, t.Decimals)
	}

	reserve := reserveWei(opts)
	spendable := new(big.Int).Sub(bal, reserve)
	if spendable.Sign() < 0 {
		return "0"
	}
	return amount.FormatUnits(spendable, t.Decimals)
}

func reserveWei(opts Options) *big.Int {
	cost := DefaultReserveWei
	if opts.Estimate != nil && opts.Estimate.CostWei != nil && opts.Estimate.CostWei.Sign() > 0 {
		cost = opts.Estimate.CostWei
	}

	bufferPct := opts.GasBufferPct
	if bufferPct <= 0 {
		bufferPct = DefaultGasBufferPct
	}
	reserve := new(big.Int).Mul(cost, big.NewInt(100+int64(bufferPct)))
	reserve.Div(reserve, big.NewInt(100))

	if opts.MinReserveWei != nil && reserve.Cmp(opts.MinReserveWei) < 0 {
		reserve = new(big.Int).Set(opts.MinReserveWei)
	}
	return reserve
}

// Machine-stable reasons returned by Check. UI text is a separate concern.
const (
	ReasonOK              = "ok"
	ReasonInvalidAmount   = "invalid-amount"
	ReasonInsufficient    = "insufficient-balance"
	ReasonInsufficientGas = "insufficient-balance-for-gas"
)

// Result reports whether a balance covers a requested amount.
type Result struct {
	HasEnough bool
	// Shortfall is the exact decimal deficit, "0" when HasEnough.
	Shortfall string
	Reason    string
}

// Check validates a requested amount against the token's balance. For native
// tokens the gas reserve is added to the requirement unless gasAlreadyReserved
// is set, which is the caller's explicit assertion that the amount came from
// MaxSpendable. There is no numeric-proximity inference: the flag is the only
// way to signal a pre-reserved amount.
func Check(t token.Token, requested string, est *gas.Estimate, gasAlreadyReserved bool) Result {
	raw, err := amount.ParseUnits(requested, t.Decimals)
	if err != nil || raw.Sign() <= 0 {
		return Result{HasEnough: false, Shortfall: "0", Reason: ReasonInvalidAmount}
	}

	required := new(big.Int).Set(raw)
	reason := ReasonInsufficient

	if token.Classify(t) == token.Native && !gasAlreadyReserved {
		cost := DefaultReserveWei
		if est != nil && est.CostWei != nil && est.CostWei.Sign() > 0 {
			cost = est.CostWei
		}
		required.Add(required, cost)
		reason = ReasonInsufficientGas
	}

	bal := t.Balance()
	if bal.Cmp(required) >= 0 {
		return Result{HasEnough: true, Shortfall: "0", Reason: ReasonOK}
	}

	deficit := new(big.Int).Sub(required, bal)
	return Result{
		HasEnough: false,
		Shortfall: amount.FormatUnits(deficit, t.Decimals),
		Reason:    reason,
	}
}
