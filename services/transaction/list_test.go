package transaction

import (
	"context"
	"testing"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTransactionsPaginates(t *testing.T) {
	h := newHarness(t, testPolicy())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(int64(100 + i)), Provider: "paystack"})
		require.NoError(t, err)
	}

	page, total, err := h.svc.ListTransactions(ctx, TransactionFilter{UserID: &h.user.ID, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	requireAmount(t, "102", page[0].Amount)

	other := uuid.New()
	page, total, err = h.svc.ListTransactions(ctx, TransactionFilter{UserID: &other})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
}

func TestListWithdrawalRequests(t *testing.T) {
	h := newHarness(t, testPolicy())
	ctx := context.Background()
	h.fund(t, 5000)

	first, err := h.svc.InitiateWithdrawal(ctx, h.user.ID, withdrawalInput(500))
	require.NoError(t, err)
	_, err = h.svc.InitiateWithdrawal(ctx, h.user.ID, withdrawalInput(600))
	require.NoError(t, err)
	_, err = h.svc.RejectWithdrawal(ctx, first.Request.ID, uuid.New())
	require.NoError(t, err)

	pending, total, err := h.svc.ListWithdrawalRequests(ctx, WithdrawalFilter{Status: string(WithdrawalPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	requireAmount(t, "600", pending[0].Amount)
}

func TestGetTransactionHidesOtherUsers(t *testing.T) {
	h := newHarness(t, testPolicy())
	ctx := context.Background()

	res, err := h.svc.InitiateDeposit(ctx, h.user.ID, DepositRequest{Amount: decimal.NewFromInt(500), Provider: "paystack"})
	require.NoError(t, err)

	got, err := h.svc.GetTransaction(ctx, h.user.ID, res.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, res.Transaction.ID, got.ID)

	_, err = h.svc.GetTransaction(ctx, uuid.New(), res.Transaction.Reference)
	require.ErrorIs(t, err, ErrNotFound)
}

type mapBankCache map[string][]fiat.Bank

func (m mapBankCache) GetBanks(ctx context.Context, provider string) ([]fiat.Bank, bool) {
	banks, ok := m[provider]
	return banks, ok
}

func (m mapBankCache) SetBanks(ctx context.Context, provider string, banks []fiat.Bank) error {
	m[provider] = banks
	return nil
}

func TestListBanksUsesCache(t *testing.T) {
	h := newHarness(t, testPolicy())
	ctx := context.Background()
	h.gateway.Banks = []fiat.Bank{{Name: "GTBank", Code: "058"}}
	cache := mapBankCache{}
	h.svc.WithBankCache(cache)

	for i := 0; i < 3; i++ {
		banks, err := h.svc.ListBanks(ctx, "paystack")
		require.NoError(t, err)
		assert.Equal(t, h.gateway.Banks, banks)
	}
	assert.Equal(t, 1, h.gateway.BankCalls)
	assert.Contains(t, cache, "PAYSTACK")
}

func TestAdminAdjust(t *testing.T) {
	h := newHarness(t, testPolicy())
	ctx := context.Background()
	admin := uuid.New()

	credit, err := h.svc.AdminAdjust(ctx, AdminAdjustment{WalletID: h.wallet.ID, Currency: "USD", Amount: decimal.NewFromInt(20), Credit: true, AdminID: admin})
	require.NoError(t, err)
	assert.Equal(t, DescriptionAdminTopup, credit.Description)
	assert.Equal(t, string(StatusSuccessful), credit.Status)

	_, err = h.svc.AdminAdjust(ctx, AdminAdjustment{WalletID: h.wallet.ID, Currency: "USD", Amount: decimal.NewFromInt(25), AdminID: admin})
	require.Error(t, err)

	debit, err := h.svc.AdminAdjust(ctx, AdminAdjustment{WalletID: h.wallet.ID, Currency: "USD", Amount: decimal.NewFromInt(5), AdminID: admin})
	require.NoError(t, err)
	assert.Equal(t, DescriptionAdminDeduction, debit.Description)

	balances, err := h.ledger.Balances(ctx, h.wallet.ID)
	require.NoError(t, err)
	for _, b := range balances {
		if b.Currency == "USD" {
			requireAmount(t, "15", b.Balance)
		}
	}

	_, err = h.svc.AdminAdjust(ctx, AdminAdjustment{WalletID: uuid.New(), Currency: "NGN", Amount: decimal.NewFromInt(5), Credit: true})
	require.ErrorIs(t, err, ErrWalletNotFound)

	_, err = h.svc.AdminAdjust(ctx, AdminAdjustment{WalletID: h.wallet.ID, Currency: "NGN", Amount: decimal.RequireFromString("0.005"), Credit: true, AdminID: admin})
	require.ErrorIs(t, err, ErrAmountPrecision)
}
