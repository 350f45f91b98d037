package swap

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-swap/pkg/amount"
	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/token"
)

// Capabilities are the external networking/signing operations the pipeline
// sequences. Implementations live outside this package; pkg/rpc provides an
// ethclient-backed one.
type Capabilities interface {
	// CheckAllowance returns the current allowance of spender over the
	// owner's tokens.
	CheckAllowance(ctx context.Context, tokenAddr, owner, spender common.Address, chainID uint64) (*big.Int, error)
	// RequestApproval asks for an allowance of at least amount. It may block
	// on upstream user confirmation.
	RequestApproval(ctx context.Context, tokenAddr, spender common.Address, amount *big.Int, chainID uint64) error
	// SubmitTransaction hands a payload to the execution layer. Once this
	// returns a hash the transaction is fire-and-forget: abandoning the
	// result does not recall it.
	SubmitTransaction(ctx context.Context, p Payload) (string, error)
}

// State tracks pipeline progress, mostly for logging and tests.
type State int

const (
	Idle State = iota
	CheckingAllowance
	RequestingApproval
	BuildingPayload
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case CheckingAllowance:
		return "checking-allowance"
	case RequestingApproval:
		return "requesting-approval"
	case BuildingPayload:
		return "building-payload"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// ExecutionResult is the single outcome of one pipeline run.
type ExecutionResult struct {
	Success bool
	TxHash  string
	Kind    ErrorKind
	Message string
	// Approved records whether an approval was submitted during this run, so
	// a retrying caller knows not to expect a second one.
	Approved bool
	// FinalState is where the run terminated.
	FinalState State
}

// Pipeline runs the allowance -> approval -> build -> submit sequence. It
// holds no per-run state, so independent swaps may run concurrently, but a
// single intent must not be run twice in flight: the pipeline does not
// deduplicate.
type Pipeline struct {
	caps       Capabilities
	classifier Classifier
	log        *zap.Logger
}

// NewPipeline wires a pipeline over the given capabilities. A nil logger
// disables logging.
func NewPipeline(caps Capabilities, classifier Classifier, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{caps: caps, classifier: classifier, log: log}
}

// Run executes one intent to completion. Each step awaits the previous one;
// there are no internal retries, that policy belongs to the caller. Partial
// progress is not rolled back (an on-chain approval cannot be), but the
// result reports it so a retry does not re-approve.
func (p *Pipeline) Run(ctx context.Context, intent Intent) ExecutionResult {
	log := p.log.With(
		zap.String("scenario", intent.Scenario.String()),
		zap.String("token_in", intent.TokenIn.Symbol),
		zap.String("token_out", intent.TokenOut.Symbol),
		zap.String("amount_in", intent.AmountIn),
	)

	approved := false

	if p.needsAllowance(intent) {
		raw, err := amount.ParseUnits(intent.AmountIn, intent.TokenIn.Decimals)
		if err != nil || raw.Sign() <= 0 {
			return p.fail(log, CheckingAllowance, KindInvalidIntent, ErrInvalidAmount, approved)
		}

		tokenAddr := common.HexToAddress(intent.TokenIn.Address)
		if intent.Route == nil {
			return p.fail(log, CheckingAllowance, KindInvalidIntent, ErrMissingRoute, approved)
		}
		spender := intent.Route.To

		log.Debug("checking allowance", zap.String("spender", spender.Hex()))
		allowance, err := p.caps.CheckAllowance(ctx, tokenAddr, intent.Owner, spender, chainID(intent))
		if err != nil {
			return p.fail(log, CheckingAllowance, KindAllowanceCheckFailed,
				errors.Wrap(err, "check allowance"), approved)
		}

		if allowance.Cmp(raw) < 0 {
			// Exact-amount approval: costs one approval per swap but leaves
			// no dangling allowance on the spender.
			log.Debug("requesting approval", zap.String("amount", raw.String()))
			if err := p.caps.RequestApproval(ctx, tokenAddr, spender, raw, chainID(intent)); err != nil {
				return p.fail(log, RequestingApproval, KindApprovalFailed,
					errors.Wrap(err, "request approval"), approved)
			}
			approved = true
		}
	}

	payload, err := BuildPayload(intent)
	if err != nil {
		return p.fail(log, BuildingPayload, KindInvalidIntent, err, approved)
	}

	log.Debug("submitting", zap.String("to", payload.To.Hex()))
	txHash, err := p.caps.SubmitTransaction(ctx, payload)
	if err != nil {
		kind, msg := p.classifier.Classify(err)
		log.Error("submission failed", zap.String("kind", string(kind)), zap.Error(err))
		return ExecutionResult{
			Kind:       kind,
			Message:    msg,
			Approved:   approved,
			FinalState: Failed,
		}
	}

	log.Info("swap submitted", zap.String("tx_hash", txHash))
	return ExecutionResult{
		Success:    true,
		TxHash:     txHash,
		Approved:   approved,
		FinalState: Succeeded,
	}
}

// needsAllowance is false for native input and for wrap/unwrap, which spend
// no ERC-20 allowance.
func (p *Pipeline) needsAllowance(intent Intent) bool {
	if intent.Scenario == Wrap || intent.Scenario == Unwrap {
		return false
	}
	return token.Classify(intent.TokenIn) != token.Native
}

func (p *Pipeline) fail(log *zap.Logger, at State, kind ErrorKind, err error, approved bool) ExecutionResult {
	_, msg := p.classifier.Classify(err)
	if kind == KindInvalidIntent {
		// Caller bugs keep their precise message; there is nothing to leak.
		msg = err.Error()
	}
	log.Error("pipeline failed",
		zap.String("state", at.String()),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return ExecutionResult{
		Kind:       kind,
		Message:    msg,
		Approved:   approved,
		FinalState: Failed,
	}
}

func chainID(intent Intent) uint64 {
	info, ok := chains.Lookup(intent.TokenIn.Chain)
	if !ok {
		return 0
	}
	return info.ChainID
}
