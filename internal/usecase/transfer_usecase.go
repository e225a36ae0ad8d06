package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/metrics"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/requestid"
)

// Steps a run can abort on, used as the metrics label.
const (
	stepInput          = "input"
	stepValidateSource = "validate_source"
	stepValidateDest   = "validate_destination"
	stepBalance        = "balance"
	stepSubmit         = "submit"
)

// TransferUseCase sequences a transfer against the remote account
// service: validate source, validate destination, fetch the source
// balance, compare it to the requested amount, then submit.
//
// The balance check and the submission are two independent round trips
// with no reservation on the remote side. A concurrent transfer from the
// same source can still overdraw the account between the two calls; that
// race belongs to the service's protocol and cannot be closed from here.
type TransferUseCase struct {
	gateway AccountGateway
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. metrics may be nil.
func NewTransferUseCase(gateway AccountGateway, logger zerolog.Logger, m *metrics.Metrics) *TransferUseCase {
	return &TransferUseCase{
		gateway: gateway,
		logger:  logger,
		metrics: m,
	}
}

// TransferInput represents one requested transfer.
type TransferInput struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
}

// Transfer runs the orchestration sequence and returns one of three
// shapes: the service's success payload, a structured insufficient-funds
// result, or nil when the transfer did not happen. Every failure is
// logged here and converted to the nil result; nothing escapes as an
// error. Each step short-circuits the run, so the transfer endpoint is
// never reached when a validation or the balance check fails.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) *domain.TransferResult {
	start := time.Now()

	if requestid.FromContext(ctx) == "" {
		ctx = requestid.NewContext(ctx, requestid.New())
	}

	log := uc.logger.With().
		Str("request_id", requestid.FromContext(ctx)).
		Str("from", input.FromAccount).
		Str("to", input.ToAccount).
		Str("amount", input.Amount.String()).
		Logger()

	if uc.metrics != nil {
		uc.metrics.TransfersAttempted.Inc()
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
		defer func() {
			uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		}()
	}

	request := domain.TransferRequest{
		FromAccount: input.FromAccount,
		ToAccount:   input.ToAccount,
		Amount:      input.Amount,
	}

	if err := request.Validate(); err != nil {
		log.Warn().Err(err).Msg("rejecting transfer input")
		uc.failed(stepInput)
		return nil
	}

	log.Debug().Msg("validating source account")
	if err := uc.gateway.ValidateAccount(ctx, input.FromAccount); err != nil {
		log.Warn().Err(err).Msg("source account is invalid")
		uc.failed(stepValidateSource)
		return nil
	}

	log.Debug().Msg("validating destination account")
	if err := uc.gateway.ValidateAccount(ctx, input.ToAccount); err != nil {
		log.Warn().Err(err).Msg("destination account is invalid")
		uc.failed(stepValidateDest)
		return nil
	}

	log.Debug().Msg("fetching source balance")
	balance, err := uc.gateway.AccountBalance(ctx, input.FromAccount)
	if err != nil {
		log.Error().Err(err).Msg("could not retrieve source balance")
		uc.failed(stepBalance)
		return nil
	}

	if input.Amount.GreaterThan(balance) {
		log.Warn().
			Str("available", balance.String()).
			Msg("insufficient funds")
		if uc.metrics != nil {
			uc.metrics.TransfersInsufficient.Inc()
		}
		return domain.InsufficientFundsResult(balance, input.Amount)
	}

	log.Debug().Msg("submitting transfer")
	payload, err := uc.gateway.SubmitTransfer(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("transfer submission failed")
		uc.failed(stepSubmit)
		return nil
	}

	log.Info().Interface("result", payload).Msg("transfer successful")
	if uc.metrics != nil {
		uc.metrics.TransfersSucceeded.Inc()
	}

	return domain.SuccessResult(payload)
}

func (uc *TransferUseCase) failed(step string) {
	if uc.metrics != nil {
		uc.metrics.TransfersFailed.WithLabelValues(step).Inc()
	}
}
