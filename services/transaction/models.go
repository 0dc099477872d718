package transaction

import (
	"encoding/json"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSuccessful Status = "SUCCESSFUL"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
)

type Type string

const (
	TypeCredit Type = "CREDIT"
	TypeDebit  Type = "DEBIT"
)

const (
	DescriptionTopup          = "Wallet topup"
	DescriptionWithdrawal     = "Withdrawal"
	DescriptionExchange       = "FX Exchange"
	DescriptionAdminTopup     = "Admin wallet topup"
	DescriptionAdminDeduction = "Admin wallet deduction"
)

const (
	BaseCurrency = "NGN"
	WalletActive = "active"
	WalletFrozen = "frozen"
)

var MinDepositAmount = decimal.NewFromInt(100)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalApproved   WithdrawalStatus = "APPROVED"
	WithdrawalDeclined   WithdrawalStatus = "DECLINED"
)

// Results of VerifyDeposit.
const (
	VerifySuccessful      = "successful"
	VerifyAlreadyVerified = "already verified"
	VerifyPending         = "pending"
)

type DepositRequest struct {
	Amount   decimal.Decimal
	Provider string
}

type DepositResult struct {
	Transaction db.Transaction
	Handle      *fiat.DepositHandle
}

type VerifyResult struct {
	Status      string
	Transaction *db.Transaction
}

type WithdrawalInput struct {
	Amount        decimal.Decimal
	BankCode      string
	AccountNumber string
	Provider      string
}

type WithdrawalResult struct {
	Transaction db.Transaction
	Request     db.WithdrawalRequest
}

// WithdrawalMeta is stored on the DEBIT transaction and used to build the
// disbursement.
type WithdrawalMeta struct {
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

func decodeWithdrawalMeta(tx db.Transaction) (WithdrawalMeta, error) {
	var meta WithdrawalMeta
	if !tx.Meta.Valid {
		return meta, NewTransactionError(ErrInvalidAccount, tx.Reference)
	}
	err := json.Unmarshal(tx.Meta.RawMessage, &meta)
	return meta, err
}

type TransactionFilter struct {
	UserID    *uuid.UUID
	WalletID  *uuid.UUID
	Status    string
	Type      string
	Currency  string
	Reference string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int32
	PageSize  int32
}

type WithdrawalFilter struct {
	UserID   *uuid.UUID
	Status   string
	Page     int32
	PageSize int32
}

type AdminAdjustment struct {
	WalletID uuid.UUID
	Currency string
	Amount   decimal.Decimal
	Credit   bool
	AdminID  uuid.UUID
}
