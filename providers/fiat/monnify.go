package fiat

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const loginTimeout = 30 * time.Second

type MonnifyConfig struct {
	APIKey              string `mapstructure:"MONNIFY_API_KEY"`
	SecretKey           string `mapstructure:"MONNIFY_SECRET_KEY"`
	BaseURL             string `mapstructure:"MONNIFY_BASE_URL"`
	ContractCode        string `mapstructure:"MONNIFY_CONTRACT_CODE"`
	WalletAccountNumber string `mapstructure:"MONNIFY_WALLET_ACCOUNT_NUMBER"`
}

// MonnifyProvider authenticates with a short-lived bearer token that it owns.
// Concurrent callers that find the token missing or rejected share a single
// login.
type MonnifyProvider struct {
	providers.BaseProvider
	config *MonnifyConfig

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	refresh   singleflight.Group
}

func NewMonnifyProvider(logger *logging.Logger) *MonnifyProvider {
	var c MonnifyConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://sandbox.monnify.com"
	}

	return NewMonnifyProviderWithConfig(c, logger)
}

func NewMonnifyProviderWithConfig(c MonnifyConfig, logger *logging.Logger) *MonnifyProvider {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &MonnifyProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Monnify,
			BaseURL: c.BaseURL,
			APIKey:  c.APIKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: &c,
	}
}

// SecretKey is also the webhook signing key.
func (p *MonnifyProvider) SecretKey() string {
	return p.config.SecretKey
}

func (p *MonnifyProvider) GetTransaction(ctx context.Context, reference string) (*Transaction, error) {
	params := url.Values{}
	params.Add("paymentReference", reference)

	var response MonnifyResponse[monnifyTransaction]
	found, err := p.call(ctx, http.MethodGet, "api/v2/merchant/transactions/query", params, nil, &response)
	if err != nil || !found {
		return nil, err
	}

	data := response.ResponseBody
	return &Transaction{
		Reference:     data.PaymentReference,
		Amount:        data.AmountPaid,
		Currency:      data.Currency,
		CustomerEmail: data.Customer.Email,
		Status:        monnifyPaymentStatus(data.PaymentStatus),
		RawStatus:     data.PaymentStatus,
	}, nil
}

func (p *MonnifyProvider) GetBanks(ctx context.Context) ([]Bank, error) {
	var response MonnifyResponse[[]monnifyBank]
	if _, err := p.call(ctx, http.MethodGet, "api/v1/banks", nil, nil, &response); err != nil {
		return nil, err
	}

	banks := make([]Bank, 0, len(response.ResponseBody))
	for _, b := range response.ResponseBody {
		banks = append(banks, Bank{Name: b.Name, Code: b.Code})
	}
	return banks, nil
}

func (p *MonnifyProvider) VerifyAccount(ctx context.Context, bankCode, accountNumber string) (*AccountInfo, error) {
	params := url.Values{}
	params.Add("accountNumber", accountNumber)
	params.Add("bankCode", bankCode)

	var response MonnifyResponse[monnifyAccount]
	found, err := p.call(ctx, http.MethodGet, "api/v1/disbursements/account/validate", params, nil, &response)
	if err != nil || !found {
		return nil, err
	}
	if response.ResponseBody.AccountName == "" {
		return nil, nil
	}

	return &AccountInfo{
		AccountName:   response.ResponseBody.AccountName,
		AccountNumber: response.ResponseBody.AccountNumber,
		BankCode:      bankCode,
	}, nil
}

func (p *MonnifyProvider) SingleDisbursement(ctx context.Context, req DisbursementRequest) (*DisbursementResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}
	request := MonnifyDisbursementRequest{
		Amount:                   json.Number(req.Amount.String()),
		Reference:                req.Reference,
		Narration:                req.Narration,
		DestinationBankCode:      req.BankCode,
		DestinationAccountNumber: req.AccountNumber,
		Currency:                 currency,
		SourceAccountNumber:      p.config.WalletAccountNumber,
		Async:                    true,
	}

	var response MonnifyResponse[monnifyDisbursement]
	if _, err := p.call(ctx, http.MethodPost, "api/v2/disbursements/single", nil, request, &response); err != nil {
		return nil, err
	}

	return &DisbursementResult{
		Reference: req.Reference,
		Status:    monnifyDisbursementStatus(response.ResponseBody.Status),
		RawStatus: response.ResponseBody.Status,
	}, nil
}

func (p *MonnifyProvider) GetDisbursement(ctx context.Context, reference string) (*DisbursementResult, error) {
	params := url.Values{}
	params.Add("reference", reference)

	var response MonnifyResponse[monnifyDisbursement]
	found, err := p.call(ctx, http.MethodGet, "api/v2/disbursements/single/summary", params, nil, &response)
	if err != nil || !found {
		return nil, err
	}

	return &DisbursementResult{
		Reference: reference,
		Status:    monnifyDisbursementStatus(response.ResponseBody.Status),
		RawStatus: response.ResponseBody.Status,
	}, nil
}

func (p *MonnifyProvider) InitializeDeposit(ctx context.Context, req DepositRequest) (*DepositHandle, error) {
	name := req.CustomerName
	if name == "" {
		name = req.Email
	}
	request := MonnifyInitRequest{
		Amount:             json.Number(req.Amount.String()),
		CustomerName:       name,
		CustomerEmail:      req.Email,
		PaymentReference:   req.Reference,
		PaymentDescription: "Wallet funding",
		CurrencyCode:       req.Currency,
		ContractCode:       p.config.ContractCode,
	}

	var response MonnifyResponse[monnifyInit]
	if _, err := p.call(ctx, http.MethodPost, "api/v1/merchant/transactions/init-transaction", nil, request, &response); err != nil {
		return nil, err
	}

	return &DepositHandle{
		Reference:   req.Reference,
		AccessCode:  response.ResponseBody.TransactionReference,
		CheckoutURL: response.ResponseBody.CheckoutURL,
	}, nil
}

// accessToken returns the cached token, logging in when it is missing or
// about to expire.
func (p *MonnifyProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.RLock()
	token, expiresAt := p.token, p.expiresAt
	p.mu.RUnlock()

	if token != "" && (expiresAt.IsZero() || time.Now().Before(expiresAt)) {
		return token, nil
	}
	return p.refreshToken(ctx, token)
}

// refreshToken replaces stale with a new token. Callers that arrive while a
// login is in flight wait for it instead of starting another. The login is
// detached from the caller that started it; each caller still stops waiting
// when its own ctx is done.
func (p *MonnifyProvider) refreshToken(ctx context.Context, stale string) (string, error) {
	ch := p.refresh.DoChan("token", func() (interface{}, error) {
		loginCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loginTimeout)
		defer cancel()

		p.mu.RLock()
		current, expiresAt := p.token, p.expiresAt
		p.mu.RUnlock()
		if current != "" && current != stale && (expiresAt.IsZero() || time.Now().Before(expiresAt)) {
			return current, nil
		}

		login, err := p.login(loginCtx)
		if err != nil {
			return "", err
		}

		p.mu.Lock()
		p.token = login.AccessToken
		p.expiresAt = time.Time{}
		if login.ExpiresIn > 60 {
			p.expiresAt = time.Now().Add(time.Duration(login.ExpiresIn-60) * time.Second)
		}
		p.mu.Unlock()
		return login.AccessToken, nil
	})

	select {
	case <-ctx.Done():
		return "", unavailable(p.Name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (p *MonnifyProvider) login(ctx context.Context) (*monnifyLogin, error) {
	endpoint, err := p.Endpoint("api/v1/auth/login", nil)
	if err != nil {
		return nil, err
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(p.config.APIKey + ":" + p.config.SecretKey))
	resp, err := p.MakeRequest(ctx, http.MethodPost, endpoint, nil, map[string]string{
		"Authorization": "Basic " + credentials,
	})
	if err != nil {
		return nil, unavailable(p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(p.Name, resp)
	}

	var response MonnifyResponse[monnifyLogin]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, unavailable(p.Name, fmt.Errorf("error decoding login response: %w", err))
	}
	if !response.RequestSuccessful || response.ResponseBody.AccessToken == "" {
		return nil, rejected(p.Name, response.ResponseMessage)
	}

	p.Logger.WithField("provider", p.Name).Info("monnify access token refreshed")
	return &response.ResponseBody, nil
}

// send issues an authenticated request, refreshing the token and retrying
// once if Monnify answers 401.
func (p *MonnifyProvider) send(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.MakeRequest(ctx, method, endpoint, body, map[string]string{"Authorization": "Bearer " + token})
	if err != nil {
		return nil, unavailable(p.Name, err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	token, err = p.refreshToken(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err = p.MakeRequest(ctx, method, endpoint, body, map[string]string{"Authorization": "Bearer " + token})
	if err != nil {
		return nil, unavailable(p.Name, err)
	}
	return resp, nil
}

// call decodes a Monnify envelope into out. found is false when a GET
// answers 404.
func (p *MonnifyProvider) call(ctx context.Context, method, path string, params url.Values, body interface{}, out interface{}) (bool, error) {
	endpoint, err := p.Endpoint(path, params)
	if err != nil {
		return false, err
	}

	resp, err := p.send(ctx, method, endpoint, body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		p.Logger.WithFields(logrus.Fields{
			"provider": p.Name,
			"status":   resp.StatusCode,
			"url":      resp.Request.URL.Path,
		}).Error("unexpected provider response")
		return false, responseError(p.Name, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, unavailable(p.Name, err)
	}

	var envelope MonnifyResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false, unavailable(p.Name, fmt.Errorf("error decoding response body: %w", err))
	}
	if !envelope.RequestSuccessful {
		return false, rejected(p.Name, envelope.ResponseMessage)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, unavailable(p.Name, fmt.Errorf("error decoding response body: %w", err))
	}
	return true, nil
}

var _ Gateway = (*MonnifyProvider)(nil)
var _ Gateway = (*PaystackProvider)(nil)

// IsTransient reports whether err came from a provider being unreachable
// rather than from it refusing the request.
func IsTransient(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}
