package webhook

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/db/dbtest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat/fiattest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	paystackSecret = "sk_test_paystack"
	monnifySecret  = "monnify_secret"
)

var testSecrets = Secrets{providers.Paystack: paystackSecret, providers.Monnify: monnifySecret}

type mockStateMachine struct {
	mock.Mock
}

func (m *mockStateMachine) ConfirmDeposit(ctx context.Context, reference string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, reference, amount)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateMachine) SettleWithdrawal(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateMachine) FailWithdrawal(ctx context.Context, reference string, reversed bool) (bool, error) {
	args := m.Called(ctx, reference, reversed)
	return args.Bool(0), args.Error(1)
}

func paystackBody(event, reference string, kobo int64) []byte {
	body, _ := json.Marshal(map[string]any{
		"event": event,
		"data":  map[string]any{"reference": reference, "amount": kobo, "status": "success"},
	})
	return body
}

func TestReconcilerDispatch(t *testing.T) {
	testCases := []struct {
		event  string
		expect func(m *mockStateMachine)
	}{
		{"charge.success", func(m *mockStateMachine) {
			m.On("ConfirmDeposit", mock.Anything, "FX-1", decimal.New(500000, -2)).Return(true, nil).Once()
		}},
		{"transfer.success", func(m *mockStateMachine) {
			m.On("SettleWithdrawal", mock.Anything, "FX-1").Return(true, nil).Once()
		}},
		{"transfer.failed", func(m *mockStateMachine) {
			m.On("FailWithdrawal", mock.Anything, "FX-1", false).Return(true, nil).Once()
		}},
		{"transfer.reversed", func(m *mockStateMachine) {
			m.On("FailWithdrawal", mock.Anything, "FX-1", true).Return(true, nil).Once()
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.event, func(t *testing.T) {
			store := dbtest.NewMemoryStore()
			machine := &mockStateMachine{}
			tc.expect(machine)
			r := NewReconciler(store, machine, testSecrets, logging.NewLogger())

			body := paystackBody(tc.event, "FX-1", 500000)
			res, err := r.Handle(context.Background(), "paystack", body, Sign(paystackSecret, body))
			require.NoError(t, err)
			assert.True(t, res.Applied)
			machine.AssertExpectations(t)

			events := store.WebhookEvents()
			require.Len(t, events, 1)
			assert.Equal(t, tc.event, events[0].EventType)
			assert.Equal(t, "FX-1", events[0].Reference)
			assert.JSONEq(t, string(body), string(events[0].Payload))
		})
	}
}

func TestReconcilerRejectsBeforeDispatch(t *testing.T) {
	body := paystackBody("transfer.success", "FX-1", 100)

	testCases := []struct {
		name      string
		provider  string
		body      []byte
		signature string
		wantErr   error
	}{
		{"bad signature", "paystack", body, Sign("other", body), ErrSignature},
		{"signed with the other provider's secret", "monnify", body, Sign(paystackSecret, body), ErrSignature},
		{"unknown provider", "flutterwave", body, Sign(paystackSecret, body), ErrUnknownProvider},
		{"unknown event", "paystack", paystackBody("charge.dispute", "FX-1", 1), Sign(paystackSecret, paystackBody("charge.dispute", "FX-1", 1)), ErrInvalidEvent},
		{"malformed", "paystack", []byte(`{`), Sign(paystackSecret, []byte(`{`)), ErrMalformedPayload},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := dbtest.NewMemoryStore()
			machine := &mockStateMachine{}
			r := NewReconciler(store, machine, testSecrets, logging.NewLogger())

			_, err := r.Handle(context.Background(), tc.provider, tc.body, tc.signature)
			require.ErrorIs(t, err, tc.wantErr)
			machine.AssertNotCalled(t, "SettleWithdrawal", mock.Anything, mock.Anything)
			assert.Empty(t, store.WebhookEvents())
		})
	}
}

func TestReconcilerNoOpIsNotAnError(t *testing.T) {
	store := dbtest.NewMemoryStore()
	machine := &mockStateMachine{}
	machine.On("SettleWithdrawal", mock.Anything, "FX-404").Return(false, nil).Once()
	r := NewReconciler(store, machine, testSecrets, logging.NewLogger())

	body := []byte(`{"eventType":"SUCCESSFUL_DISBURSEMENT","eventData":{"reference":"FX-404","amount":500,"status":"SUCCESS"}}`)
	res, err := r.Handle(context.Background(), "MONNIFY", body, Sign(monnifySecret, body))
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Len(t, store.WebhookEvents(), 1)
	machine.AssertExpectations(t)
}

// integration with the real state machine on the in-memory store

type ledgerFixture struct {
	store      *dbtest.MemoryStore
	svc        *transaction.TransactionService
	reconciler *Reconciler
	gateway    *fiattest.Gateway
	user       db.User
	wallet     db.Wallet
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewLogger()

	store := dbtest.NewMemoryStore()
	user := store.AddUser("ada@example.com")
	wallet, err := store.CreateWallet(ctx, db.CreateWalletParams{UserID: user.ID, Status: transaction.WalletActive})
	require.NoError(t, err)
	_, err = store.CreateWalletBalance(ctx, db.CreateWalletBalanceParams{WalletID: wallet.ID, Currency: transaction.BaseCurrency})
	require.NoError(t, err)

	gateway := fiattest.New(providers.Monnify)
	gateway.AddAccount("058", "0123456789", "ADA OBI")
	ps := providers.NewProviderService()
	ps.AddProvider(gateway)

	policy := fees.DefaultPolicy()
	policy.MinAmount = decimal.NewFromInt(100)
	policy.MaxAutoWithdrawable = decimal.Zero
	policy.FeeValue = decimal.NewFromInt(12)

	l := ledger.NewLedgerService(store, logger)
	svc := transaction.NewTransactionService(store, l, ps, policy, logger)
	return &ledgerFixture{
		store:      store,
		svc:        svc,
		reconciler: NewReconciler(store, svc, testSecrets, logger),
		gateway:    gateway,
		user:       user,
		wallet:     wallet,
	}
}

func (f *ledgerFixture) balance(t *testing.T) db.WalletBalance {
	t.Helper()
	b, err := f.store.GetWalletBalance(context.Background(), db.GetWalletBalanceParams{WalletID: f.wallet.ID, Currency: transaction.BaseCurrency})
	require.NoError(t, err)
	return b
}

func (f *ledgerFixture) deliver(t *testing.T, body string) *Result {
	t.Helper()
	res, err := f.reconciler.Handle(context.Background(), providers.Monnify, []byte(body), Sign(monnifySecret, []byte(body)))
	require.NoError(t, err)
	return res
}

func TestConcurrentDuplicateDepositWebhooksApplyOnce(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	dep, err := f.svc.InitiateDeposit(ctx, f.user.ID, transaction.DepositRequest{Amount: decimal.NewFromInt(5000), Provider: "monnify"})
	require.NoError(t, err)
	body := []byte(`{"eventType":"SUCCESSFUL_TRANSACTION","eventData":{"paymentReference":"` + dep.Transaction.Reference + `","amountPaid":5000,"paymentStatus":"PAID"}}`)

	var wg sync.WaitGroup
	applied := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.reconciler.Handle(ctx, providers.Monnify, body, Sign(monnifySecret, body))
			if assert.NoError(t, err) {
				applied <- res.Applied
			}
		}()
	}
	wg.Wait()
	close(applied)

	count := 0
	for a := range applied {
		if a {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, decimal.NewFromInt(5000).Equal(f.balance(t).Balance))
	assert.Len(t, f.store.WebhookEvents(), 10)
}

func TestWithdrawalWebhookLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, err := f.svc.AdminAdjust(ctx, transaction.AdminAdjustment{
		WalletID: f.wallet.ID, Currency: transaction.BaseCurrency, Amount: decimal.NewFromInt(1000), Credit: true, AdminID: uuid.New(),
	})
	require.NoError(t, err)

	w, err := f.svc.InitiateWithdrawal(ctx, f.user.ID, transaction.WithdrawalInput{
		Amount: decimal.NewFromInt(500), BankCode: "058", AccountNumber: "0123456789", Provider: "monnify",
	})
	require.NoError(t, err)
	_, err = f.svc.ApproveWithdrawal(ctx, w.Request.ID, uuid.New())
	require.NoError(t, err)

	failed := `{"eventType":"FAILED_DISBURSEMENT","eventData":{"reference":"` + w.Transaction.Reference + `","amount":500,"status":"FAILED"}}`
	assert.True(t, f.deliver(t, failed).Applied)
	assert.False(t, f.deliver(t, failed).Applied)

	success := `{"eventType":"SUCCESSFUL_DISBURSEMENT","eventData":{"reference":"` + w.Transaction.Reference + `","amount":500,"status":"SUCCESS"}}`
	assert.False(t, f.deliver(t, success).Applied)

	b := f.balance(t)
	assert.True(t, decimal.NewFromInt(1000).Equal(b.Balance))
	assert.True(t, decimal.NewFromInt(1000).Equal(b.LedgerBalance))

	tx, err := f.store.GetTransactionByReference(ctx, w.Transaction.Reference)
	require.NoError(t, err)
	assert.Equal(t, string(transaction.StatusFailed), tx.Status)
	assert.True(t, tx.WasRefunded)
	assert.False(t, tx.WasReverted)
}

func TestDepositWebhookForWithdrawalReferenceIsIgnored(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, err := f.svc.AdminAdjust(ctx, transaction.AdminAdjustment{
		WalletID: f.wallet.ID, Currency: transaction.BaseCurrency, Amount: decimal.NewFromInt(1000), Credit: true, AdminID: uuid.New(),
	})
	require.NoError(t, err)
	w, err := f.svc.InitiateWithdrawal(ctx, f.user.ID, transaction.WithdrawalInput{
		Amount: decimal.NewFromInt(500), BankCode: "058", AccountNumber: "0123456789", Provider: "monnify",
	})
	require.NoError(t, err)

	deposit := `{"eventType":"SUCCESSFUL_TRANSACTION","eventData":{"paymentReference":"` + w.Transaction.Reference + `","amountPaid":500}}`
	assert.False(t, f.deliver(t, deposit).Applied)
	assert.True(t, decimal.NewFromInt(488).Equal(f.balance(t).Balance))
}
