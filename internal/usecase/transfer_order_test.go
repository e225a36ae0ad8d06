package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/usecase"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/usecase/mocks"
)

// The protocol is strictly sequential: source validation, destination
// validation, balance fetch, submission. gomock.InOrder pins that order.
func TestTransfer_StepOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockAccountGateway(ctrl)

	gomock.InOrder(
		gateway.EXPECT().ValidateAccount(gomock.Any(), "ACC1000").Return(nil),
		gateway.EXPECT().ValidateAccount(gomock.Any(), "ACC1001").Return(nil),
		gateway.EXPECT().AccountBalance(gomock.Any(), "ACC1000").Return(decimal.NewFromFloat(1000.0), nil),
		gateway.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).Return(map[string]any{"status": "SUCCESS"}, nil),
	)

	uc := usecase.NewTransferUseCase(gateway, zerolog.Nop(), nil)

	result := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccount: "ACC1000",
		ToAccount:   "ACC1001",
		Amount:      decimal.NewFromFloat(100.0),
	})

	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
}

// Balance is always read from the source account, never the destination.
func TestTransfer_BalanceReadFromSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockAccountGateway(ctrl)
	gateway.EXPECT().ValidateAccount(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	gateway.EXPECT().AccountBalance(gomock.Any(), "ACC1000").Return(decimal.NewFromFloat(50.0), nil)

	uc := usecase.NewTransferUseCase(gateway, zerolog.Nop(), nil)

	result := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccount: "ACC1000",
		ToAccount:   "ACC1001",
		Amount:      decimal.NewFromFloat(100.0),
	})

	if result == nil || result.Insufficient == nil {
		t.Fatalf("expected insufficient funds result, got %+v", result)
	}
}
