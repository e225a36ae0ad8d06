package domain

import (
	"github.com/shopspring/decimal"
)

// TransferRequest describes one requested money movement between two
// accounts on the remote service. Values are set once at construction
// and never mutated.
type TransferRequest struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
}

// Validate validates the transfer request.
func (t *TransferRequest) Validate() error {
	if err := ValidateAccountID(t.FromAccount); err != nil {
		return err
	}

	if err := ValidateAccountID(t.ToAccount); err != nil {
		return err
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
