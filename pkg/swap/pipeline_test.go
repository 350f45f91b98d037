package swap

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCaps counts calls so tests can assert exactly which steps ran.
type stubCaps struct {
	allowance    *big.Int
	allowanceErr error
	approvalErr  error
	submitHash   string
	submitErr    error

	allowanceCalls int
	approvalCalls  int
	submitCalls    int

	approvedAmount  *big.Int
	approvedSpender common.Address
}

func (s *stubCaps) CheckAllowance(ctx context.Context, tokenAddr, owner, spender common.Address, chainID uint64) (*big.Int, error) {
	s.allowanceCalls++
	if s.allowanceErr != nil {
		return nil, s.allowanceErr
	}
	return s.allowance, nil
}

func (s *stubCaps) RequestApproval(ctx context.Context, tokenAddr, spender common.Address, amount *big.Int, chainID uint64) error {
	s.approvalCalls++
	s.approvedAmount = amount
	s.approvedSpender = spender
	return s.approvalErr
}

func (s *stubCaps) SubmitTransaction(ctx context.Context, p Payload) (string, error) {
	s.submitCalls++
	if s.submitErr != nil {
		return "", s.submitErr
	}
	return s.submitHash, nil
}

func genericIntent(route *Route) Intent {
	return Intent{
		TokenIn:  usdc(),
		TokenOut: nativeETH(),
		AmountIn: "100",
		Scenario: GenericSwap,
		Route:    route,
		Owner:    common.HexToAddress("0x1111111111111111111111111111111111111111"),
	}
}

func spenderRoute() *Route {
	return &Route{
		To:       common.HexToAddress("0xDef1C0ded9bec7F1a1670819833240f027b25EfF"),
		Calldata: []byte{0x01, 0x02, 0x03, 0x04},
	}
}

func TestPipelineSufficientAllowanceSkipsApproval(t *testing.T) {
	caps := &stubCaps{
		allowance:  big.NewInt(0).Mul(big.NewInt(200), big.NewInt(1_000_000)), // 200 USDC
		submitHash: "0xabc",
	}
	p := NewPipeline(caps, Classifier{}, nil)
	intent := genericIntent(spenderRoute())

	for i := 0; i < 2; i++ {
		result := p.Run(context.Background(), intent)
		require.True(t, result.Success)
		assert.Equal(t, "0xabc", result.TxHash)
		assert.False(t, result.Approved)
	}

	assert.Equal(t, 2, caps.allowanceCalls)
	assert.Equal(t, 0, caps.approvalCalls, "sufficient allowance must never trigger approval")
	assert.Equal(t, 2, caps.submitCalls)
}

func TestPipelineApprovesExactAmount(t *testing.T) {
	caps := &stubCaps{allowance: big.NewInt(0), submitHash: "0xabc"}
	p := NewPipeline(caps, Classifier{}, nil)

	result := p.Run(context.Background(), genericIntent(spenderRoute()))
	require.True(t, result.Success)
	assert.True(t, result.Approved)

	assert.Equal(t, 1, caps.approvalCalls)
	// 100 USDC at 6 decimals
	assert.Equal(t, "100000000", caps.approvedAmount.String())
	assert.Equal(t, spenderRoute().To, caps.approvedSpender)
}

func TestPipelineNativeInputSkipsAllowance(t *testing.T) {
	caps := &stubCaps{submitHash: "0xabc"}
	p := NewPipeline(caps, Classifier{}, nil)

	intent := Intent{
		TokenIn:  nativeETH(),
		TokenOut: usdc(),
		AmountIn: "1",
		Scenario: GenericSwap,
		Route:    spenderRoute(),
	}
	result := p.Run(context.Background(), intent)
	require.True(t, result.Success)

	assert.Equal(t, 0, caps.allowanceCalls)
	assert.Equal(t, 0, caps.approvalCalls)
}

func TestPipelineWrapUnwrapSkipAllowance(t *testing.T) {
	for _, scenario := range []Scenario{Wrap, Unwrap} {
		caps := &stubCaps{submitHash: "0xabc"}
		p := NewPipeline(caps, Classifier{}, nil)

		tokenIn := nativeETH()
		tokenOut := wrappedETH()
		if scenario == Unwrap {
			tokenIn, tokenOut = tokenOut, tokenIn
		}

		result := p.Run(context.Background(), Intent{
			TokenIn:  tokenIn,
			TokenOut: tokenOut,
			AmountIn: "1",
			Scenario: scenario,
		})
		require.True(t, result.Success, scenario.String())
		assert.Equal(t, 0, caps.allowanceCalls, scenario.String())
	}
}

func TestPipelineAllowanceCheckFailure(t *testing.T) {
	caps := &stubCaps{allowanceErr: errors.New("connection refused")}
	p := NewPipeline(caps, Classifier{}, nil)

	result := p.Run(context.Background(), genericIntent(spenderRoute()))
	assert.False(t, result.Success)
	assert.Equal(t, KindAllowanceCheckFailed, result.Kind)
	assert.Equal(t, Failed, result.FinalState)
	assert.Equal(t, 0, caps.submitCalls, "terminal failure must not reach submission")
}

func TestPipelineApprovalFailure(t *testing.T) {
	caps := &stubCaps{allowance: big.NewInt(0), approvalErr: errors.New("User denied transaction signature")}
	p := NewPipeline(caps, Classifier{}, nil)

	result := p.Run(context.Background(), genericIntent(spenderRoute()))
	assert.False(t, result.Success)
	assert.Equal(t, KindApprovalFailed, result.Kind)
	assert.False(t, result.Approved)
	assert.Equal(t, 0, caps.submitCalls)
}

func TestPipelineInvalidIntent(t *testing.T) {
	caps := &stubCaps{submitHash: "0xabc"}
	p := NewPipeline(caps, Classifier{}, nil)

	// generic swap with a token input but no route fails before any I/O
	result := p.Run(context.Background(), genericIntent(nil))
	assert.False(t, result.Success)
	assert.Equal(t, KindInvalidIntent, result.Kind)
	assert.Equal(t, 0, caps.allowanceCalls)
	assert.Equal(t, 0, caps.submitCalls)

	// bad amount on a wrap fails at payload build
	result = p.Run(context.Background(), Intent{
		TokenIn:  nativeETH(),
		TokenOut: wrappedETH(),
		AmountIn: "0",
		Scenario: Wrap,
	})
	assert.Equal(t, KindInvalidIntent, result.Kind)
}

func TestPipelineSubmissionFailureClassified(t *testing.T) {
	tests := []struct {
		raw  string
		want ErrorKind
	}{
		{raw: "User denied transaction signature", want: KindUserRejected},
		{raw: "insufficient funds for gas * price + value", want: KindInsufficientFunds},
		{raw: "replacement transaction underpriced, gas too low", want: KindGasFailure},
		{raw: "nonce too low", want: KindNonceError},
		{raw: "weird internal failure", want: KindUnknown},
	}

	for _, tt := range tests {
		caps := &stubCaps{allowance: big.NewInt(1 << 62), submitErr: errors.New(tt.raw)}
		p := NewPipeline(caps, Classifier{}, nil)

		result := p.Run(context.Background(), genericIntent(spenderRoute()))
		assert.False(t, result.Success)
		assert.Equal(t, tt.want, result.Kind, tt.raw)
		assert.NotEqual(t, tt.raw, result.Message, "raw submit error must not surface")
	}
}

// Approval happened, submission failed: the result must say so, so a retry
// can re-check allowance instead of blindly approving again.
func TestPipelineReportsApprovalOnFailedSubmit(t *testing.T) {
	caps := &stubCaps{allowance: big.NewInt(0), submitErr: errors.New("boom")}
	p := NewPipeline(caps, Classifier{}, nil)

	result := p.Run(context.Background(), genericIntent(spenderRoute()))
	assert.False(t, result.Success)
	assert.True(t, result.Approved)
}
