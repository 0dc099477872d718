package transaction

import (
	"context"
	"sync"
	"testing"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat/fiattest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateDeposit(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)
	require.NotNil(t, res.Handle)
	assert.Equal(t, res.Transaction.Reference, res.Handle.Reference)
	assert.Equal(t, string(StatusPending), res.Transaction.Status)
	assert.Equal(t, string(TypeCredit), res.Transaction.Type)
	assert.Equal(t, DescriptionTopup, res.Transaction.Description)
	assert.True(t, h.balance(t).Balance.IsZero())
}

func TestInitiateDepositValidation(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	_, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(99), Provider: "paystack"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(500), Provider: "flutterwave"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.RequireFromString("100.337"), Provider: "paystack"})
	require.ErrorIs(t, err, ErrAmountPrecision)
}

func TestInitiateDepositProviderFailureKeepsRecord(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	h.gateway.DepositErr = fiattest.Unavailable("PAYSTACK")

	res, err := h.svc.InitiateDeposit(context.Background(), h.user.ID, DepositRequest{Amount: decimal.NewFromInt(500), Provider: "paystack"})
	require.Error(t, err)
	require.NotNil(t, res)

	stored, err := h.store.GetTransactionByReference(context.Background(), res.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, string(StatusPending), stored.Status)
}

func TestVerifyDepositCreditsOnce(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)
	ref := res.Transaction.Reference
	h.gateway.Pay(ref, "ADA@example.com", "5000")

	first, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", ref)
	require.NoError(t, err)
	assert.Equal(t, VerifySuccessful, first.Status)
	assert.Equal(t, string(StatusSuccessful), first.Transaction.Status)
	assert.True(t, first.Transaction.DateCompleted.Valid)

	second, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", ref)
	require.NoError(t, err)
	assert.Equal(t, VerifyAlreadyVerified, second.Status)

	b := h.balance(t)
	requireAmount(t, "5000", b.Balance)
	requireAmount(t, "5000", b.LedgerBalance)
	assert.Len(t, h.store.LedgerEntries(), 1)
	assert.Len(t, h.store.OutboxMessages(), 1)
}

func TestVerifyDepositWithoutLocalRecord(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()
	h.gateway.Pay("FX-1234-1700000000000", h.user.Email, "2500")

	res, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", "FX-1234-1700000000000")
	require.NoError(t, err)
	assert.Equal(t, VerifySuccessful, res.Status)
	assert.Equal(t, h.wallet.ID, res.Transaction.WalletID)
	requireAmount(t, "2500", h.balance(t).Balance)
}

func TestVerifyDepositPending(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)
	h.gateway.SetTransaction(&fiat.Transaction{
		Reference:     res.Transaction.Reference,
		Amount:        decimal.NewFromInt(5000),
		CustomerEmail: h.user.Email,
		Status:        fiat.StatusPending,
		RawStatus:     "ongoing",
	})

	verified, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", res.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, VerifyPending, verified.Status)
	assert.True(t, h.balance(t).Balance.IsZero())
}

func TestVerifyDepositRejections(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(h *harness) string
		wantErr error
	}{
		{
			name:    "unknown at provider",
			prepare: func(h *harness) string { return "FX-0000-1" },
			wantErr: ErrNotFound,
		},
		{
			name: "paid by someone else",
			prepare: func(h *harness) string {
				h.gateway.Pay("FX-1111-1", "mallory@example.com", "5000")
				return "FX-1111-1"
			},
			wantErr: ErrOwnershipMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, fees.DefaultPolicy())
			ref := tc.prepare(h)

			_, err := h.svc.VerifyDeposit(context.Background(), h.user.ID, "paystack", ref)
			require.ErrorIs(t, err, tc.wantErr)
			assert.True(t, h.balance(t).Balance.IsZero())
		})
	}
}

func TestVerifyAndWebhookRaceCreditsOnce(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)
	ref := res.Transaction.Reference
	h.gateway.Pay(ref, h.user.Email, "5000")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", ref)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := h.svc.ConfirmDeposit(ctx, ref, decimal.NewFromInt(5000))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	requireAmount(t, "5000", h.balance(t).Balance)
	assert.Len(t, h.store.LedgerEntries(), 1)
}

func TestConfirmDeposit(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	applied, err := h.svc.ConfirmDeposit(ctx, "FX-9999-1", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.False(t, applied)

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)

	applied, err = h.svc.ConfirmDeposit(ctx, res.Transaction.Reference, decimal.NewFromInt(4900))
	require.NoError(t, err)
	assert.True(t, applied)
	requireAmount(t, "4900", h.balance(t).Balance)

	applied, err = h.svc.ConfirmDeposit(ctx, res.Transaction.Reference, decimal.NewFromInt(4900))
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestConfirmDepositRollsBackOnLedgerFailure(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "paystack"})
	require.NoError(t, err)

	h.store.FailOn("CreateLedgerEntry", assert.AnError)
	_, err = h.svc.ConfirmDeposit(ctx, res.Transaction.Reference, decimal.NewFromInt(5000))
	require.ErrorIs(t, err, assert.AnError)
	h.store.FailOn("CreateLedgerEntry", nil)

	stored, err := h.store.GetTransactionByReference(ctx, res.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, string(StatusPending), stored.Status)
	assert.True(t, h.balance(t).Balance.IsZero())
}

func TestCancelDeposit(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(500), Provider: "paystack"})
	require.NoError(t, err)

	other := h.store.AddUser("eve@example.com")
	_, err = h.svc.CancelDeposit(ctx, other.ID, res.Transaction.Reference)
	require.ErrorIs(t, err, ErrOwnershipMismatch)

	cancelled, err := h.svc.CancelDeposit(ctx, h.user.ID, res.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, string(StatusFailed), cancelled.Status)

	_, err = h.svc.CancelDeposit(ctx, h.user.ID, res.Transaction.Reference)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = h.svc.CancelDeposit(ctx, h.user.ID, "FX-0000-0")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentForCancelledDepositIsFlagged(t *testing.T) {
	h := newHarness(t, fees.DefaultPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(500), Provider: "paystack"})
	require.NoError(t, err)
	ref := res.Transaction.Reference
	_, err = h.svc.CancelDeposit(ctx, h.user.ID, ref)
	require.NoError(t, err)
	h.gateway.Pay(ref, h.user.Email, "500")

	h.logs.Reset()
	verified, err := h.svc.VerifyDeposit(ctx, h.user.ID, "paystack", ref)
	require.NoError(t, err)
	assert.Equal(t, VerifyPending, verified.Status)
	assert.Equal(t, string(StatusFailed), verified.Transaction.Status)
	entry := h.errorLog(t)
	require.NotNil(t, entry)
	assert.Equal(t, ref, entry.Data["reference"])

	h.logs.Reset()
	applied, err := h.svc.ConfirmDeposit(ctx, ref, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.False(t, applied)
	entry = h.errorLog(t)
	require.NotNil(t, entry)
	assert.Equal(t, "500", entry.Data["paid"])

	assert.True(t, h.balance(t).Balance.IsZero())
	stored, err := h.store.GetTransactionByReference(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, string(StatusFailed), stored.Status)
}
