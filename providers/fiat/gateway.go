package fiat

import (
	"context"
	"fmt"
	"strings"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/shopspring/decimal"
)

// Status is the provider-neutral classification of a payment or transfer.
type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Transaction is a deposit as reported by a provider. Amount is in major
// currency units.
type Transaction struct {
	Reference     string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	Status        Status
	RawStatus     string
}

func (t *Transaction) Paid() bool {
	return t.Status == StatusSucceeded
}

type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type AccountInfo struct {
	AccountName   string
	AccountNumber string
	BankCode      string
}

type DisbursementRequest struct {
	Reference     string
	Amount        decimal.Decimal
	Currency      string
	Narration     string
	BankCode      string
	AccountNumber string
	AccountName   string
}

type DisbursementResult struct {
	Reference string
	Status    Status
	RawStatus string
}

// Accepted reports whether the provider took the transfer on; the final
// outcome arrives by webhook.
func (r *DisbursementResult) Accepted() bool {
	return r.Status != StatusFailed
}

type DepositRequest struct {
	Reference    string
	Amount       decimal.Decimal
	Currency     string
	Email        string
	CustomerName string
}

// DepositHandle is what a client needs to complete payment on the provider side.
type DepositHandle struct {
	Reference   string `json:"reference"`
	AccessCode  string `json:"accessCode,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Gateway is the capability surface shared by every fiat provider.
// GetTransaction, GetDisbursement and VerifyAccount return a nil result, not
// an error, when the provider does not know the reference or account.
type Gateway interface {
	providers.Provider
	GetTransaction(ctx context.Context, reference string) (*Transaction, error)
	GetBanks(ctx context.Context) ([]Bank, error)
	VerifyAccount(ctx context.Context, bankCode, accountNumber string) (*AccountInfo, error)
	SingleDisbursement(ctx context.Context, req DisbursementRequest) (*DisbursementResult, error)
	GetDisbursement(ctx context.Context, reference string) (*DisbursementResult, error)
	InitializeDeposit(ctx context.Context, req DepositRequest) (*DepositHandle, error)
}

// Resolve looks name up in ps and checks it is a fiat gateway.
func Resolve(ps *providers.ProviderService, name string) (Gateway, error) {
	name = strings.ToUpper(name)
	p, ok := ps.GetProvider(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	g, ok := p.(Gateway)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a fiat gateway", ErrUnknownProvider, name)
	}
	return g, nil
}

func toMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func fromMinor(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
