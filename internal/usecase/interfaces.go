package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
)

// AccountGateway is the remote account service surface the orchestrator
// depends on. ValidateAccount returns nil only when the service confirms
// the account; every other condition, a rejected lookup or a transport
// failure alike, comes back as an error.
type AccountGateway interface {
	ValidateAccount(ctx context.Context, accountID string) error
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	SubmitTransfer(ctx context.Context, transfer domain.TransferRequest) (map[string]any, error)
}
