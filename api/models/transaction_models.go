package models

import (
	"encoding/json"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Currency      string          `json:"currency"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Provider      string          `json:"provider,omitempty"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	Meta          json.RawMessage `json:"meta,omitempty"`
	WasRefunded   bool            `json:"was_refunded"`
	WasReverted   bool            `json:"was_reverted"`
	DateInitiated time.Time       `json:"date_initiated"`
	DateCompleted *time.Time      `json:"date_completed,omitempty"`
	DateRefunded  *time.Time      `json:"date_refunded,omitempty"`
	DateReverted  *time.Time      `json:"date_reverted,omitempty"`
}

func ToTransactionResponse(tx *db.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:            tx.ID,
		UserID:        tx.UserID,
		WalletID:      tx.WalletID,
		Amount:        tx.Amount,
		Fee:           tx.Fee,
		Currency:      tx.Currency,
		Type:          tx.Type,
		Status:        tx.Status,
		Provider:      tx.Provider.String,
		Reference:     tx.Reference,
		Description:   tx.Description,
		WasRefunded:   tx.WasRefunded,
		WasReverted:   tx.WasReverted,
		DateInitiated: tx.DateInitiated,
	}
	if tx.Meta.Valid {
		resp.Meta = tx.Meta.RawMessage
	}
	if tx.DateCompleted.Valid {
		resp.DateCompleted = &tx.DateCompleted.Time
	}
	if tx.DateRefunded.Valid {
		resp.DateRefunded = &tx.DateRefunded.Time
	}
	if tx.DateReverted.Valid {
		resp.DateReverted = &tx.DateReverted.Time
	}
	return resp
}

func ToTransactionCollection(txs []db.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, *ToTransactionResponse(&txs[i]))
	}
	return out
}

type WithdrawalRequestResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	ProcessedBy     *uuid.UUID      `json:"processed_by,omitempty"`
	DateProcessed   *time.Time      `json:"date_processed,omitempty"`
	IsAutoWithdrawn bool            `json:"is_auto_withdrawn"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToWithdrawalRequestResponse(wr *db.WithdrawalRequest) *WithdrawalRequestResponse {
	resp := &WithdrawalRequestResponse{
		ID:              wr.ID,
		UserID:          wr.UserID,
		TransactionID:   wr.TransactionID,
		WalletID:        wr.WalletID,
		Amount:          wr.Amount,
		Status:          wr.Status,
		IsAutoWithdrawn: wr.IsAutoWithdrawn,
		CreatedAt:       wr.CreatedAt,
	}
	if wr.ProcessedBy.Valid {
		resp.ProcessedBy = &wr.ProcessedBy.UUID
	}
	if wr.DateProcessed.Valid {
		resp.DateProcessed = &wr.DateProcessed.Time
	}
	return resp
}

func ToWithdrawalRequestCollection(wrs []db.WithdrawalRequest) []WithdrawalRequestResponse {
	out := make([]WithdrawalRequestResponse, 0, len(wrs))
	for i := range wrs {
		out = append(out, *ToWithdrawalRequestResponse(&wrs[i]))
	}
	return out
}

type WithdrawalResponse struct {
	Transaction *TransactionResponse       `json:"transaction"`
	Request     *WithdrawalRequestResponse `json:"request"`
}

type DepositResponse struct {
	Transaction      *TransactionResponse `json:"transaction"`
	AuthorizationURL string               `json:"authorization_url"`
	AccessCode       string               `json:"access_code,omitempty"`
}

type VerifyResponse struct {
	Status      string               `json:"status"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

type ConversionResponse struct {
	Rate         decimal.Decimal      `json:"rate"`
	TargetAmount decimal.Decimal      `json:"target_amount"`
	Debit        *TransactionResponse `json:"debit"`
	Credit       *TransactionResponse `json:"credit"`
}

type RateResponse struct {
	Base   string          `json:"base"`
	Target string          `json:"target"`
	Rate   decimal.Decimal `json:"rate"`
}

type AccountResponse struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

func ToAccountResponse(info *fiat.AccountInfo) *AccountResponse {
	return &AccountResponse{
		AccountName:   info.AccountName,
		AccountNumber: info.AccountNumber,
		BankCode:      info.BankCode,
	}
}

// Page wraps a list response with its total row count.
type Page struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}
