package swap

import (
	"strings"
)

// ErrorKind is the stable failure taxonomy surfaced to callers.
type ErrorKind string

const (
	KindNone                 ErrorKind = ""
	KindInvalidIntent        ErrorKind = "invalid_intent"
	KindAllowanceCheckFailed ErrorKind = "allowance_check_failed"
	KindApprovalFailed       ErrorKind = "approval_failed"
	KindNetworkError         ErrorKind = "network_error"
	KindUserRejected         ErrorKind = "user_rejected"
	KindInsufficientFunds    ErrorKind = "insufficient_funds"
	KindGasFailure           ErrorKind = "gas_failure"
	KindNonceError           ErrorKind = "nonce_error"
	KindUnknown              ErrorKind = "unknown"
)

// Retryable reports whether a retry with backoff can plausibly succeed.
// InvalidIntent is a caller bug, UserRejected is a decision, and
// InsufficientFunds holds until the balance changes.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindAllowanceCheckFailed, KindApprovalFailed, KindNetworkError,
		KindGasFailure, KindNonceError:
		return true
	default:
		return false
	}
}

// Phrases wallets and RPC nodes use when the user declines to sign.
var rejectionPhrases = []string{
	"user denied",
	"user rejected",
	"rejected by user",
	"request rejected",
	"transaction was rejected",
	"action_rejected",
}

// Classifier maps raw failures to the taxonomy plus a message safe to show.
// With Debug set the raw text passes through instead, for development builds;
// in either mode the raw error belongs in the log, not the UI.
type Classifier struct {
	Debug bool
}

func (c Classifier) Classify(err error) (ErrorKind, string) {
	if err == nil {
		return KindNone, ""
	}
	raw := err.Error()
	msg := strings.ToLower(raw)

	kind := KindUnknown
	safe := "the transaction could not be completed"

	switch {
	case containsAny(msg, rejectionPhrases):
		kind = KindUserRejected
		safe = "the request was declined in the wallet"
	case strings.Contains(msg, "insufficient funds"):
		kind = KindInsufficientFunds
		safe = "the balance does not cover this transaction"
	case strings.Contains(msg, "nonce"):
		kind = KindNonceError
		safe = "the account state was out of date, try again"
	case strings.Contains(msg, "gas"):
		kind = KindGasFailure
		safe = "the network gas conditions changed, try again"
	}

	if c.Debug {
		return kind, raw
	}
	return kind, safe
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
