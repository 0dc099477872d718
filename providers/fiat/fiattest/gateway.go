// Package fiattest provides a scriptable fiat.Gateway for service tests.
package fiattest

import (
	"context"
	"net/http"
	"sync"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
)

// Gateway answers from its fields. Zero values give an empty but successful
// provider.
type Gateway struct {
	providers.BaseProvider

	mu            sync.Mutex
	Transactions  map[string]*fiat.Transaction
	Accounts      map[string]*fiat.AccountInfo
	Banks         []fiat.Bank
	LookupErr     error
	BanksErr      error
	DepositErr    error
	Disburse      func(req fiat.DisbursementRequest) (*fiat.DisbursementResult, error)
	Disbursements []fiat.DisbursementRequest
	// Transfers is what GetDisbursement reports. Accepted disbursements are
	// added to it.
	Transfers         map[string]*fiat.DisbursementResult
	TransferLookupErr error
	BankCalls     int
}

var _ fiat.Gateway = (*Gateway)(nil)

func New(name string) *Gateway {
	return &Gateway{
		BaseProvider: providers.BaseProvider{Name: name, Client: http.DefaultClient},
		Transactions: map[string]*fiat.Transaction{},
		Accounts:     map[string]*fiat.AccountInfo{},
		Transfers:    map[string]*fiat.DisbursementResult{},
	}
}

// Pay records reference as paid by email.
func (g *Gateway) Pay(reference, email, amount string) {
	g.SetTransaction(&fiat.Transaction{
		Reference:     reference,
		Amount:        mustDecimal(amount),
		Currency:      "NGN",
		CustomerEmail: email,
		Status:        fiat.StatusSucceeded,
		RawStatus:     "success",
	})
}

func (g *Gateway) SetTransaction(tx *fiat.Transaction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Transactions[tx.Reference] = tx
}

// AddAccount makes bankCode/accountNumber resolve to name.
func (g *Gateway) AddAccount(bankCode, accountNumber, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Accounts[bankCode+"/"+accountNumber] = &fiat.AccountInfo{
		AccountName:   name,
		AccountNumber: accountNumber,
		BankCode:      bankCode,
	}
}

func (g *Gateway) DisbursementCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Disbursements)
}

func (g *Gateway) GetTransaction(ctx context.Context, reference string) (*fiat.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.LookupErr != nil {
		return nil, g.LookupErr
	}
	tx, ok := g.Transactions[reference]
	if !ok {
		return nil, nil
	}
	c := *tx
	return &c, nil
}

func (g *Gateway) GetBanks(ctx context.Context) ([]fiat.Bank, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.BankCalls++
	if g.BanksErr != nil {
		return nil, g.BanksErr
	}
	return append([]fiat.Bank(nil), g.Banks...), nil
}

func (g *Gateway) VerifyAccount(ctx context.Context, bankCode, accountNumber string) (*fiat.AccountInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	info, ok := g.Accounts[bankCode+"/"+accountNumber]
	if !ok {
		return nil, nil
	}
	c := *info
	return &c, nil
}

func (g *Gateway) SingleDisbursement(ctx context.Context, req fiat.DisbursementRequest) (*fiat.DisbursementResult, error) {
	g.mu.Lock()
	g.Disbursements = append(g.Disbursements, req)
	disburse := g.Disburse
	g.mu.Unlock()

	var (
		res = &fiat.DisbursementResult{Reference: req.Reference, Status: fiat.StatusPending, RawStatus: "pending"}
		err error
	)
	if disburse != nil {
		res, err = disburse(req)
	}
	if err == nil && res != nil && res.Accepted() {
		g.SetTransfer(res)
	}
	return res, err
}

// SetTransfer makes GetDisbursement report res for its reference.
func (g *Gateway) SetTransfer(res *fiat.DisbursementResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := *res
	g.Transfers[res.Reference] = &c
}

func (g *Gateway) GetDisbursement(ctx context.Context, reference string) (*fiat.DisbursementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.TransferLookupErr != nil {
		return nil, g.TransferLookupErr
	}
	res, ok := g.Transfers[reference]
	if !ok {
		return nil, nil
	}
	c := *res
	return &c, nil
}

func (g *Gateway) InitializeDeposit(ctx context.Context, req fiat.DepositRequest) (*fiat.DepositHandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.DepositErr != nil {
		return nil, g.DepositErr
	}
	return &fiat.DepositHandle{Reference: req.Reference, AccessCode: "access-" + req.Reference}, nil
}
