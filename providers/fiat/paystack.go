package fiat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/sirupsen/logrus"
)

type PaystackProvider struct {
	providers.BaseProvider
	config *PaystackConfig
}

type PaystackConfig struct {
	SecretKey string `mapstructure:"PAYSTACK_SECRET_KEY"`
	BaseURL   string `mapstructure:"PAYSTACK_BASE_URL"`
}

func NewPaystackProvider(logger *logging.Logger) *PaystackProvider {
	var c PaystackConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.paystack.co"
	}

	return NewPaystackProviderWithConfig(c, logger)
}

func NewPaystackProviderWithConfig(c PaystackConfig, logger *logging.Logger) *PaystackProvider {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &PaystackProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Paystack,
			BaseURL: c.BaseURL,
			APIKey:  c.SecretKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: &c,
	}
}

// SecretKey is also the webhook signing key.
func (p *PaystackProvider) SecretKey() string {
	return p.config.SecretKey
}

func (p *PaystackProvider) GetTransaction(ctx context.Context, reference string) (*Transaction, error) {
	endpoint, err := p.Endpoint("transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	var response Response[paystackTransaction]
	found, err := p.call(ctx, http.MethodGet, endpoint, nil, &response, http.StatusOK)
	if err != nil || !found {
		return nil, err
	}

	data := response.Data
	return &Transaction{
		Reference:     data.Reference,
		Amount:        fromMinor(data.Amount),
		Currency:      data.Currency,
		CustomerEmail: data.Customer.Email,
		Status:        paystackTransactionStatus(data.Status),
		RawStatus:     data.Status,
	}, nil
}

func (p *PaystackProvider) GetBanks(ctx context.Context) ([]Bank, error) {
	params := url.Values{}
	params.Add("country", "nigeria")
	endpoint, err := p.Endpoint("bank", params)
	if err != nil {
		return nil, err
	}

	var response Response[[]paystackBank]
	if _, err := p.call(ctx, http.MethodGet, endpoint, nil, &response, http.StatusOK); err != nil {
		return nil, err
	}

	banks := make([]Bank, 0, len(response.Data))
	for _, b := range response.Data {
		banks = append(banks, Bank{Name: b.Name, Code: b.Code})
	}
	return banks, nil
}

func (p *PaystackProvider) VerifyAccount(ctx context.Context, bankCode, accountNumber string) (*AccountInfo, error) {
	params := url.Values{}
	params.Add("account_number", accountNumber)
	params.Add("bank_code", bankCode)
	endpoint, err := p.Endpoint("bank/resolve", params)
	if err != nil {
		return nil, err
	}

	var response Response[paystackAccount]
	found, err := p.call(ctx, http.MethodGet, endpoint, nil, &response, http.StatusOK)
	if err != nil || !found {
		return nil, err
	}

	return &AccountInfo{
		AccountName:   response.Data.AccountName,
		AccountNumber: response.Data.AccountNumber,
		BankCode:      bankCode,
	}, nil
}

func (p *PaystackProvider) CreateTransferRecipient(ctx context.Context, accountNumber, bankCode, name string) (*Recipient, error) {
	endpoint, err := p.Endpoint("transferrecipient", nil)
	if err != nil {
		return nil, err
	}

	// Constants are NUBAN and NGN (Naira)
	request := CreateTransferRecipientRequest{
		Type:          "nuban",
		Name:          name,
		AccountNumber: accountNumber,
		BankCode:      bankCode,
		Currency:      "NGN",
	}

	var response Response[Recipient]
	if _, err := p.call(ctx, http.MethodPost, endpoint, request, &response, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

// SingleDisbursement registers the destination as a transfer recipient and
// then starts a transfer from the Paystack balance.
func (p *PaystackProvider) SingleDisbursement(ctx context.Context, req DisbursementRequest) (*DisbursementResult, error) {
	recipient, err := p.CreateTransferRecipient(ctx, req.AccountNumber, req.BankCode, req.AccountName)
	if err != nil {
		return nil, err
	}

	endpoint, err := p.Endpoint("transfer", nil)
	if err != nil {
		return nil, err
	}

	reason := req.Narration
	if reason == "" {
		reason = fmt.Sprintf("SwiftFiat %v Transfer", req.AccountName)
	}

	// Constant is Source
	request := TransferRequest{
		Source:    "balance",
		Recipient: recipient.RecipientCode,
		Amount:    toMinor(req.Amount),
		Reason:    reason,
		Reference: req.Reference,
		Currency:  req.Currency,
	}

	var response Response[TransferResponse]
	if _, err := p.call(ctx, http.MethodPost, endpoint, request, &response, http.StatusOK); err != nil {
		return nil, err
	}

	return &DisbursementResult{
		Reference: req.Reference,
		Status:    paystackTransferStatus(response.Data.Status),
		RawStatus: response.Data.Status,
	}, nil
}

func (p *PaystackProvider) GetDisbursement(ctx context.Context, reference string) (*DisbursementResult, error) {
	endpoint, err := p.Endpoint("transfer/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	var response Response[TransferResponse]
	found, err := p.call(ctx, http.MethodGet, endpoint, nil, &response, http.StatusOK)
	if err != nil || !found {
		return nil, err
	}

	return &DisbursementResult{
		Reference: reference,
		Status:    paystackTransferStatus(response.Data.Status),
		RawStatus: response.Data.Status,
	}, nil
}

func (p *PaystackProvider) InitializeDeposit(ctx context.Context, req DepositRequest) (*DepositHandle, error) {
	endpoint, err := p.Endpoint("transaction/initialize", nil)
	if err != nil {
		return nil, err
	}

	request := InitializeTransactionRequest{
		Email:     req.Email,
		Amount:    toMinor(req.Amount),
		Reference: req.Reference,
		Currency:  req.Currency,
	}

	var response Response[InitializeTransactionResponse]
	if _, err := p.call(ctx, http.MethodPost, endpoint, request, &response, http.StatusOK); err != nil {
		return nil, err
	}

	return &DepositHandle{
		Reference:   req.Reference,
		AccessCode:  response.Data.AccessCode,
		CheckoutURL: response.Data.AuthorizationURL,
	}, nil
}

// call performs the request and decodes the envelope into out. It reports
// found=false for the statuses Paystack uses when a reference or account is
// unknown.
func (p *PaystackProvider) call(ctx context.Context, method, endpoint string, body interface{}, out interface{}, ok ...int) (bool, error) {
	resp, err := p.MakeRequest(ctx, method, endpoint, body, nil)
	if err != nil {
		return false, unavailable(p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		if method == http.MethodGet {
			return false, nil
		}
	}

	if !statusIn(resp.StatusCode, ok) {
		err := responseError(p.Name, resp)
		p.Logger.WithFields(logrus.Fields{
			"provider": p.Name,
			"status":   resp.StatusCode,
			"url":      resp.Request.URL.Path,
		}).Error("unexpected provider response")
		return false, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, unavailable(p.Name, err)
	}

	var envelope Response[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false, unavailable(p.Name, fmt.Errorf("error decoding response body: %w", err))
	}
	if !envelope.Status {
		return false, rejected(p.Name, envelope.Message)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, unavailable(p.Name, fmt.Errorf("error decoding response body: %w", err))
	}
	return true, nil
}

func statusIn(code int, accepted []int) bool {
	for _, c := range accepted {
		if code == c {
			return true
		}
	}
	return false
}
