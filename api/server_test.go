package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/db/dbtest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat/fiattest"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	user_service "github.com/SwiftFiat/SwiftFiat-Ledger/services/user"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/wallet"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const paystackWebhookSecret = "sk_test_webhook"

type fixedRates map[string]decimal.Decimal

func (f fixedRates) GetPairRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	rate, ok := f[base+target]
	if !ok {
		return decimal.Zero, currency.ErrNoExchangeRate
	}
	return rate, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	server     *Server
	store      *dbtest.MemoryStore
	gateway    *fiattest.Gateway
	user       db.User
	walletID   uuid.UUID
	tokens     *utils.JWTToken
	userToken  string
	adminToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := logging.NewLogger()

	config := &utils.Config{SigningKey: "test-signing-key", DefaultFiatProvider: providers.Paystack}
	store := dbtest.NewMemoryStore()
	user := store.AddUser("ada@example.com")
	admin := store.AddUser("admin@example.com")

	gateway := fiattest.New(providers.Paystack)
	gateway.AddAccount("058", "0123456789", "ADA OBI")
	ps := providers.NewProviderService()
	ps.AddProvider(gateway)

	l := ledger.NewLedgerService(store, logger)
	policy := fees.WithdrawalPolicy{
		MinAmount:           decimal.NewFromInt(100),
		MaxAmount:           decimal.NewFromInt(1000000),
		MaxAutoWithdrawable: decimal.Zero,
		FeeType:             fees.FeeTypeFixed,
		FeeValue:            decimal.NewFromInt(12),
	}
	transactions := transaction.NewTransactionService(store, l, ps, policy, logger)
	wallets := wallet.NewWalletService(store, logger)
	rates := fixedRates{"NGNUSD": decimal.RequireFromString("0.00065")}

	w, err := wallets.CreateWallet(ctx, user.ID)
	require.NoError(t, err)

	server := NewServer(config, Services{
		Users:        user_service.NewUserService(store, logger),
		Wallets:      wallets,
		Transactions: transactions,
		Currency:     currency.NewCurrencyService(store, l, rates, logger),
		Webhooks:     webhook.NewReconciler(store, transactions, webhook.Secrets{providers.Paystack: paystackWebhookSecret}, logger),
	}, logger)

	token := utils.NewJWTToken(config)
	userToken, err := token.CreateToken(utils.TokenObject{UserID: user.ID.String(), Email: user.Email, Role: utils.RoleUser}, time.Hour)
	require.NoError(t, err)
	adminToken, err := token.CreateToken(utils.TokenObject{UserID: admin.ID.String(), Email: admin.Email, Role: utils.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	return &testServer{
		server:     server,
		store:      store,
		gateway:    gateway,
		user:       user,
		walletID:   w.ID,
		tokens:     token,
		userToken:  userToken,
		adminToken: adminToken,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

// credit funds the test user's NGN balance through the admin endpoint.
func (ts *testServer) credit(t *testing.T, amount string) {
	t.Helper()
	rec, env := ts.do(t, http.MethodPost, "/api/v1/wallets/"+ts.walletID.String()+"/adjust",
		map[string]string{"currency": "NGN", "amount": amount, "type": "credit"}, ts.adminToken)
	require.Equalf(t, http.StatusOK, rec.Code, "adjust failed: %s", env.Message)
}

func (ts *testServer) ngnBalance(t *testing.T) wallet.BalanceModel {
	t.Helper()
	rec, env := ts.do(t, http.MethodGet, "/api/v1/wallets", nil, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var model wallet.WalletModel
	require.NoError(t, json.Unmarshal(env.Data, &model))
	for _, b := range model.Balances {
		if b.Currency == "NGN" {
			return b
		}
	}
	t.Fatal("no NGN balance")
	return wallet.BalanceModel{}
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
