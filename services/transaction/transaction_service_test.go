package transaction

import (
	"context"
	"testing"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/db/dbtest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat/fiattest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type harness struct {
	svc     *TransactionService
	store   *dbtest.MemoryStore
	ledger  *ledger.LedgerService
	gateway *fiattest.Gateway
	user    db.User
	wallet  db.Wallet
	logs    *logrustest.Hook
}

func testPolicy() fees.WithdrawalPolicy {
	return fees.WithdrawalPolicy{
		MinAmount:           decimal.NewFromInt(100),
		MaxAmount:           decimal.NewFromInt(1000000),
		MaxAutoWithdrawable: decimal.Zero,
		FeeType:             fees.FeeTypeFixed,
		FeeValue:            decimal.NewFromInt(12),
	}
}

func newHarness(t *testing.T, policy fees.WithdrawalPolicy) *harness {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewLogger()

	store := dbtest.NewMemoryStore()
	user := store.AddUser("ada@example.com")
	wallet, err := store.CreateWallet(ctx, db.CreateWalletParams{UserID: user.ID, Status: WalletActive})
	require.NoError(t, err)
	_, err = store.CreateWalletBalance(ctx, db.CreateWalletBalanceParams{WalletID: wallet.ID, Currency: BaseCurrency})
	require.NoError(t, err)

	gateway := fiattest.New(providers.Paystack)
	gateway.AddAccount("058", "0123456789", "ADA OBI")
	ps := providers.NewProviderService()
	ps.AddProvider(gateway)

	l := ledger.NewLedgerService(store, logger)
	return &harness{
		svc:     NewTransactionService(store, l, ps, policy, logger),
		store:   store,
		ledger:  l,
		gateway: gateway,
		user:    user,
		wallet:  wallet,
		logs:    logrustest.NewLocal(logger.Logger),
	}
}

func (h *harness) fund(t *testing.T, amount int64) {
	t.Helper()
	_, err := h.ledger.Adjust(context.Background(), ledger.Adjustment{
		WalletID:    h.wallet.ID,
		Currency:    BaseCurrency,
		Delta:       decimal.NewFromInt(amount),
		LedgerDelta: decimal.NewFromInt(amount),
		Reason:      ledger.ReasonDeposit,
	})
	require.NoError(t, err)
}

func (h *harness) balance(t *testing.T) db.WalletBalance {
	t.Helper()
	b, err := h.store.GetWalletBalance(context.Background(), db.GetWalletBalanceParams{WalletID: h.wallet.ID, Currency: BaseCurrency})
	require.NoError(t, err)
	return b
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

// errorLog returns the first Error level entry logged by the service.
func (h *harness) errorLog(t *testing.T) *logrus.Entry {
	t.Helper()
	for _, e := range h.logs.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			return e
		}
	}
	return nil
}
