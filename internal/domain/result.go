package domain

import (
	"github.com/shopspring/decimal"
)

// TransferResult is one of the two non-absent outcomes of a transfer run:
// the payload returned by the remote service on success, or a structured
// insufficient-funds report. A nil *TransferResult is the absence outcome:
// the transfer did not happen and the cause was already logged.
type TransferResult struct {
	// Payload is the parsed response from the transfer endpoint. For a
	// non-JSON response it holds a single "text" key with the raw body.
	Payload map[string]any

	// Insufficient is set instead of Payload when the source account
	// balance does not cover the requested amount.
	Insufficient *InsufficientFunds
}

// InsufficientFunds reports a balance check failure. It is a business
// outcome, not an error: both accounts validated and the service answered,
// the source account just cannot cover the amount.
type InsufficientFunds struct {
	Status           string          `json:"status"`
	Message          string          `json:"message"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	RequestedAmount  decimal.Decimal `json:"requestedAmount"`
}

// Succeeded reports whether the transfer was accepted by the service.
func (r *TransferResult) Succeeded() bool {
	return r != nil && r.Insufficient == nil
}

// SuccessResult wraps a transfer endpoint payload.
func SuccessResult(payload map[string]any) *TransferResult {
	return &TransferResult{Payload: payload}
}

// InsufficientFundsResult builds the structured balance-failure outcome.
func InsufficientFundsResult(available, requested decimal.Decimal) *TransferResult {
	return &TransferResult{
		Insufficient: &InsufficientFunds{
			Status:           "FAILED",
			Message:          "Insufficient funds",
			AvailableBalance: available,
			RequestedAmount:  requested,
		},
	}
}
