package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	apimodels "github.com/SwiftFiat/SwiftFiat-Ledger/api/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec, env := ts.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)

	testCases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Token " + ts.userToken},
		{"garbage", "Bearer not-a-jwt"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := newRecorder(ts, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminRoutesRejectUsers(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/transactions", nil, ts.userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wallets/"+ts.walletID.String()+"/adjust",
		map[string]string{"currency": "NGN", "amount": "100", "type": "credit"}, ts.userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWalletEndpoints(t *testing.T) {
	ts := newTestServer(t)

	requireAmount(t, "0", ts.ngnBalance(t).Balance)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/wallets", nil, ts.userToken)
	assert.Equal(t, http.StatusConflict, rec.Code)

	stranger, err := ts.tokens.CreateToken(utils.TokenObject{UserID: uuid.NewString(), Email: "ghost@example.com", Role: utils.RoleUser}, time.Hour)
	require.NoError(t, err)
	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wallets", nil, stranger)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts.credit(t, "2500")
	b := ts.ngnBalance(t)
	requireAmount(t, "2500", b.Balance)
	requireAmount(t, "2500", b.LedgerBalance)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wallets/"+ts.walletID.String()+"/adjust",
		map[string]string{"currency": "NGN", "amount": "5000", "type": "debit"}, ts.adminToken)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wallets/not-a-uuid/adjust",
		map[string]string{"currency": "NGN", "amount": "5", "type": "credit"}, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wallets/"+ts.walletID.String()+"/adjust",
		map[string]string{"currency": "EUR", "amount": "5", "type": "credit"}, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFrozenWalletCannotWithdraw(t *testing.T) {
	ts := newTestServer(t)
	ts.credit(t, "1000")

	rec, _ := ts.do(t, http.MethodPut, "/api/v1/wallets/"+ts.walletID.String()+"/status",
		map[string]string{"status": "frozen"}, ts.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/withdrawal/initiate", map[string]string{
		"amount": "500", "bank_code": "058", "account_number": "0123456789",
	}, ts.userToken)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = ts.do(t, http.MethodPut, "/api/v1/wallets/"+ts.walletID.String()+"/status",
		map[string]string{"status": "closed"}, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDepositFlow(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/transactions/deposit/initiate",
		map[string]string{"amount": "50"}, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/deposit/initiate",
		map[string]string{"amount": "5000", "provider": "stripe"}, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/transactions/deposit/initiate",
		map[string]string{"amount": "5000", "provider": "paystack"}, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var deposit apimodels.DepositResponse
	require.NoError(t, json.Unmarshal(env.Data, &deposit))
	reference := deposit.Transaction.Reference
	require.NotEmpty(t, reference)
	assert.Equal(t, "access-"+reference, deposit.AccessCode)
	assert.Equal(t, string(transaction.StatusPending), deposit.Transaction.Status)

	ts.gateway.Pay(reference, "ada@example.com", "5000")
	verifyPath := fmt.Sprintf("/api/v1/transactions/deposit/verify/paystack/%s", reference)

	rec, env = ts.do(t, http.MethodPost, verifyPath, nil, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var verified apimodels.VerifyResponse
	require.NoError(t, json.Unmarshal(env.Data, &verified))
	assert.Equal(t, transaction.VerifySuccessful, verified.Status)

	rec, env = ts.do(t, http.MethodPost, verifyPath, nil, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &verified))
	assert.Equal(t, transaction.VerifyAlreadyVerified, verified.Status)

	requireAmount(t, "5000", ts.ngnBalance(t).Balance)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/transactions/user/"+reference, nil, ts.userToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/deposit/cancel/"+reference, nil, ts.userToken)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWithdrawalFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.credit(t, "1000")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/transactions/account/validate", map[string]string{
		"bank_code": "058", "account_number": "0123456789",
	}, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var account apimodels.AccountResponse
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, "ADA OBI", account.AccountName)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/account/validate", map[string]string{
		"bank_code": "058", "account_number": "12",
	}, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/transactions/withdrawal/initiate", map[string]string{
		"amount": "500", "bank_code": "058", "account_number": "0123456789",
	}, ts.userToken)
	require.Equalf(t, http.StatusOK, rec.Code, "initiate failed: %s", env.Message)

	var withdrawal apimodels.WithdrawalResponse
	require.NoError(t, json.Unmarshal(env.Data, &withdrawal))
	assert.Equal(t, string(transaction.WithdrawalPending), withdrawal.Request.Status)

	b := ts.ngnBalance(t)
	requireAmount(t, "488", b.Balance)
	requireAmount(t, "1000", b.LedgerBalance)

	rec, env = ts.do(t, http.MethodGet, "/api/v1/transactions/withdrawal-requests?status=pending", nil, ts.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []apimodels.WithdrawalRequestResponse `json:"items"`
		Total int64                                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)

	approvePath := fmt.Sprintf("/api/v1/transactions/withdrawal-requests/%s/approve", withdrawal.Request.ID)
	rec, _ = ts.do(t, http.MethodPut, approvePath, nil, ts.userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = ts.do(t, http.MethodPut, approvePath, nil, ts.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &withdrawal))
	assert.Equal(t, string(transaction.WithdrawalProcessing), withdrawal.Request.Status)
	assert.Equal(t, 1, ts.gateway.DisbursementCount())

	rec, _ = ts.do(t, http.MethodPut, approvePath, nil, ts.adminToken)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, ts.gateway.DisbursementCount())

	body := paystackBody("transfer.success", withdrawal.Transaction.Reference, 50000)
	rec, _ = ts.webhook(t, body, webhook.Sign(paystackWebhookSecret, body))
	require.Equal(t, http.StatusOK, rec.Code)

	b = ts.ngnBalance(t)
	requireAmount(t, "488", b.Balance)
	requireAmount(t, "488", b.LedgerBalance)
}

func TestRejectWithdrawalRefunds(t *testing.T) {
	ts := newTestServer(t)
	ts.credit(t, "1000")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/transactions/withdrawal/initiate", map[string]string{
		"amount": "500", "bank_code": "058", "account_number": "0123456789",
	}, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var withdrawal apimodels.WithdrawalResponse
	require.NoError(t, json.Unmarshal(env.Data, &withdrawal))

	rec, _ = ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/transactions/withdrawal-requests/%s/reject", withdrawal.Request.ID), nil, ts.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	requireAmount(t, "1000", ts.ngnBalance(t).Balance)

	rec, _ = ts.do(t, http.MethodPut, "/api/v1/transactions/withdrawal-requests/nope/reject", nil, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTransactions(t *testing.T) {
	ts := newTestServer(t)
	ts.credit(t, "100")
	ts.credit(t, "200")

	rec, env := ts.do(t, http.MethodGet, "/api/v1/transactions/user?page_size=1", nil, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items    []apimodels.TransactionResponse `json:"items"`
		Total    int64                           `json:"total"`
		PageSize int32                           `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.PageSize)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/transactions/user?start_date=yesterday", nil, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = ts.do(t, http.MethodGet, "/api/v1/transactions?user_id="+ts.user.ID.String(), nil, ts.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 2, page.Total)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/transactions/user/FX-unknown", nil, ts.userToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBanksDefaultsProvider(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/transactions/banks", nil, ts.userToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/transactions/banks?provider=monnify", nil, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertAndRates(t *testing.T) {
	ts := newTestServer(t)
	ts.credit(t, "1000")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/transactions/fx/rates",
		map[string]string{"base": "ngn", "target": "usd"}, ts.userToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var rate apimodels.RateResponse
	require.NoError(t, json.Unmarshal(env.Data, &rate))
	requireAmount(t, "0.00065", rate.Rate)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/fx/rates",
		map[string]string{"base": "NGN", "target": "EUR"}, ts.userToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/transactions/convert",
		map[string]string{"base": "NGN", "target": "USD", "amount": "1000"}, ts.userToken)
	require.Equalf(t, http.StatusOK, rec.Code, "convert failed: %s", env.Message)
	var conversion apimodels.ConversionResponse
	require.NoError(t, json.Unmarshal(env.Data, &conversion))
	requireAmount(t, "0.65", conversion.TargetAmount)

	requireAmount(t, "0", ts.ngnBalance(t).Balance)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/transactions/convert",
		map[string]string{"base": "NGN", "target": "USD", "amount": "1000"}, ts.userToken)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}
