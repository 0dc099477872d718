package currency

import (
	"context"
	"testing"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/db/dbtest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/rates"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateSource struct {
	mock.Mock
}

func (m *mockRateSource) GetPairRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, target)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type fixture struct {
	svc    *CurrencyService
	store  *dbtest.MemoryStore
	ledger *ledger.LedgerService
	rates  *mockRateSource
	user   db.User
	wallet db.Wallet
}

func newFixture(t *testing.T, ngn int64) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewLogger()

	store := dbtest.NewMemoryStore()
	user := store.AddUser("ada@example.com")
	wallet, err := store.CreateWallet(ctx, db.CreateWalletParams{UserID: user.ID, Status: "active"})
	require.NoError(t, err)
	_, err = store.CreateWalletBalance(ctx, db.CreateWalletBalanceParams{WalletID: wallet.ID, Currency: "NGN"})
	require.NoError(t, err)

	l := ledger.NewLedgerService(store, logger)
	if ngn > 0 {
		_, err = l.Adjust(ctx, ledger.Adjustment{
			WalletID:    wallet.ID,
			Currency:    "NGN",
			Delta:       decimal.NewFromInt(ngn),
			LedgerDelta: decimal.NewFromInt(ngn),
			Reason:      ledger.ReasonDeposit,
		})
		require.NoError(t, err)
	}

	src := &mockRateSource{}
	return &fixture{
		svc:    NewCurrencyService(store, l, src, logger),
		store:  store,
		ledger: l,
		rates:  src,
		user:   user,
		wallet: wallet,
	}
}

func (f *fixture) balance(t *testing.T, currency string) db.WalletBalance {
	t.Helper()
	b, err := f.store.GetWalletBalance(context.Background(), db.GetWalletBalanceParams{WalletID: f.wallet.ID, Currency: currency})
	require.NoError(t, err)
	return b
}

func TestConvertNairaToDollars(t *testing.T) {
	f := newFixture(t, 5000)
	f.rates.On("GetPairRate", mock.Anything, "NGN", "USD").Return(decimal.RequireFromString("0.00065"), nil).Once()

	conv, err := f.svc.Convert(context.Background(), f.user.ID, ConvertRequest{Base: "ngn", Target: "usd", Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.65").Equal(conv.TargetAmount))
	assert.NotEqual(t, conv.Debit.Reference, conv.Credit.Reference)
	assert.Equal(t, "DEBIT", conv.Debit.Type)
	assert.Equal(t, "CREDIT", conv.Credit.Type)
	assert.Equal(t, "SUCCESSFUL", conv.Debit.Status)
	assert.Equal(t, "SUCCESSFUL", conv.Credit.Status)
	assert.False(t, conv.Debit.Provider.Valid)

	ngn := f.balance(t, "NGN")
	assert.True(t, decimal.NewFromInt(4000).Equal(ngn.Balance))
	assert.True(t, decimal.NewFromInt(4000).Equal(ngn.LedgerBalance))
	usd := f.balance(t, "USD")
	assert.True(t, decimal.RequireFromString("0.65").Equal(usd.Balance))
	assert.True(t, decimal.RequireFromString("0.65").Equal(usd.LedgerBalance))

	assert.Len(t, f.store.OutboxMessages(), 1)
	f.rates.AssertExpectations(t)
}

func TestConvertChecksBaseAmount(t *testing.T) {
	f := newFixture(t, 500)
	f.rates.On("GetPairRate", mock.Anything, "NGN", "USD").Return(decimal.RequireFromString("0.00065"), nil)

	_, err := f.svc.Convert(context.Background(), f.user.ID, ConvertRequest{Base: "NGN", Target: "USD", Amount: decimal.NewFromInt(1000)})
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	assert.True(t, decimal.NewFromInt(500).Equal(f.balance(t, "NGN").Balance))
	_, err = f.store.GetWalletBalance(context.Background(), db.GetWalletBalanceParams{WalletID: f.wallet.ID, Currency: "USD"})
	assert.Error(t, err, "target balance must not survive a rolled back conversion")

	txs, err := f.store.ListTransactions(context.Background(), db.ListTransactionsParams{PageLimit: 10})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestConvertRequiresExistingBaseBalance(t *testing.T) {
	f := newFixture(t, 0)
	f.rates.On("GetPairRate", mock.Anything, "USD", "NGN").Return(decimal.NewFromInt(1500), nil)

	_, err := f.svc.Convert(context.Background(), f.user.ID, ConvertRequest{Base: "USD", Target: "NGN", Amount: decimal.NewFromInt(100)})
	require.ErrorIs(t, err, ledger.ErrBalanceNotFound)
}

func TestConvertRejectsBadRequests(t *testing.T) {
	testCases := []struct {
		name    string
		req     ConvertRequest
		wantErr error
	}{
		{"unsupported currency", ConvertRequest{Base: "NGN", Target: "GBP", Amount: decimal.NewFromInt(1000)}, ErrUnsupportedCurrency},
		{"same currency", ConvertRequest{Base: "NGN", Target: "NGN", Amount: decimal.NewFromInt(1000)}, ErrSameCurrency},
		{"below minimum", ConvertRequest{Base: "NGN", Target: "USD", Amount: decimal.NewFromInt(99)}, ErrAmountTooSmall},
		{"finer than kobo", ConvertRequest{Base: "NGN", Target: "USD", Amount: decimal.RequireFromString("100.337")}, ErrAmountPrecision},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 5000)
			_, err := f.svc.Convert(context.Background(), f.user.ID, tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			f.rates.AssertNotCalled(t, "GetPairRate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestConvertUnknownUser(t *testing.T) {
	f := newFixture(t, 5000)
	f.rates.On("GetPairRate", mock.Anything, "NGN", "USD").Return(decimal.RequireFromString("0.00065"), nil)

	_, err := f.svc.Convert(context.Background(), uuid.New(), ConvertRequest{Base: "NGN", Target: "USD", Amount: decimal.NewFromInt(1000)})
	require.ErrorIs(t, err, ErrWalletNotFound)
}

func TestGetPairRateCaches(t *testing.T) {
	f := newFixture(t, 0)
	f.rates.On("GetPairRate", mock.Anything, "USD", "NGN").Return(decimal.NewFromInt(1550), nil).Once()

	for i := 0; i < 3; i++ {
		rate, err := f.svc.GetPairRate(context.Background(), "USD", "NGN")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1550).Equal(rate))
	}
	f.rates.AssertNumberOfCalls(t, "GetPairRate", 1)
}

func TestGetPairRateMissing(t *testing.T) {
	f := newFixture(t, 0)
	f.rates.On("GetPairRate", mock.Anything, "USD", "NGN").Return(decimal.Zero, rates.ErrPairNotFound)

	_, err := f.svc.GetPairRate(context.Background(), "USD", "NGN")
	require.ErrorIs(t, err, ErrNoExchangeRate)
	require.ErrorIs(t, err, rates.ErrPairNotFound)

	var cerr *CurrencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "could not retrieve exchange rate, please try again: USD to NGN", cerr.ErrorOut())
}
