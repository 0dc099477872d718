package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Reasons recorded on ledger entries.
const (
	ReasonDeposit          = "deposit"
	ReasonWithdrawal       = "withdrawal_reserve"
	ReasonSettlement       = "withdrawal_settle"
	ReasonRefund           = "withdrawal_refund"
	ReasonConversionDebit  = "conversion_debit"
	ReasonConversionCredit = "conversion_credit"
	ReasonAdminAdjustment  = "admin_adjustment"
)

// MinorUnitScale is the precision money enters the ledger at.
const MinorUnitScale = 2

// IsMinorUnitAmount reports whether amount has no digits past the minor unit.
func IsMinorUnitAmount(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MinorUnitScale))
}

// Adjustment moves a wallet balance line. Delta applies to the spendable
// balance and LedgerDelta to the ledger balance; either may be zero.
type Adjustment struct {
	WalletID      uuid.UUID
	Currency      string
	Delta         decimal.Decimal
	LedgerDelta   decimal.Decimal
	TransactionID uuid.NullUUID
	Reason        string
}

type LedgerService struct {
	store  db.Store
	logger *logging.Logger
}

func NewLedgerService(store db.Store, logger *logging.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		logger: logger,
	}
}

// GetOrCreateBalance returns the balance line for currency, creating it at
// zero on first use. A concurrent creator makes the insert return no row, in
// which case the winner's row is fetched.
func (l *LedgerService) GetOrCreateBalance(ctx context.Context, q db.Querier, walletID uuid.UUID, currency string) (db.WalletBalance, error) {
	balance, err := q.GetWalletBalance(ctx, db.GetWalletBalanceParams{WalletID: walletID, Currency: currency})
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return db.WalletBalance{}, err
	}

	balance, err = q.CreateWalletBalance(ctx, db.CreateWalletBalanceParams{WalletID: walletID, Currency: currency})
	if err == nil {
		l.logger.WithFields(logrus.Fields{"wallet_id": walletID, "currency": currency}).Info("created wallet balance")
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return db.WalletBalance{}, fmt.Errorf("create wallet balance: %w", err)
	}

	return q.GetWalletBalance(ctx, db.GetWalletBalanceParams{WalletID: walletID, Currency: currency})
}

// AdjustBalance applies adj to the locked balance line and appends the
// movement to the ledger. It must run on the Querier of the caller's ExecTx so
// the change commits or rolls back with the related transaction record.
func (l *LedgerService) AdjustBalance(ctx context.Context, q db.Querier, adj Adjustment) (db.WalletBalance, error) {
	balance, err := q.GetWalletBalanceForUpdate(ctx, db.GetWalletBalanceForUpdateParams{
		WalletID: adj.WalletID,
		Currency: adj.Currency,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return db.WalletBalance{}, NewLedgerError(ErrBalanceNotFound, adj.WalletID.String(), adj.Currency)
	} else if err != nil {
		return db.WalletBalance{}, err
	}

	newBalance := balance.Balance.Add(adj.Delta)
	if newBalance.IsNegative() {
		return db.WalletBalance{}, NewLedgerError(ErrInsufficientBalance, adj.WalletID.String(), adj.Currency)
	}
	newLedgerBalance := balance.LedgerBalance.Add(adj.LedgerDelta)

	updated, err := q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
		ID:            balance.ID,
		Balance:       newBalance,
		LedgerBalance: newLedgerBalance,
	})
	if err != nil {
		if db.ErrorCode(err) == db.CheckViolation {
			return db.WalletBalance{}, NewLedgerError(ErrInsufficientBalance, adj.WalletID.String(), adj.Currency, err)
		}
		return db.WalletBalance{}, fmt.Errorf("update wallet balance: %w", err)
	}

	_, err = q.CreateLedgerEntry(ctx, db.CreateLedgerEntryParams{
		WalletID:           adj.WalletID,
		Currency:           adj.Currency,
		TransactionID:      adj.TransactionID,
		BalanceDelta:       adj.Delta,
		LedgerDelta:        adj.LedgerDelta,
		BalanceAfter:       updated.Balance,
		LedgerBalanceAfter: updated.LedgerBalance,
		Reason:             adj.Reason,
	})
	if err != nil {
		return db.WalletBalance{}, fmt.Errorf("create ledger entry: %w", err)
	}

	return updated, nil
}

// Adjust runs AdjustBalance in its own database transaction.
func (l *LedgerService) Adjust(ctx context.Context, adj Adjustment) (db.WalletBalance, error) {
	var updated db.WalletBalance
	err := l.store.ExecTx(ctx, func(q db.Querier) error {
		var err error
		updated, err = l.AdjustBalance(ctx, q, adj)
		return err
	})
	return updated, err
}

func (l *LedgerService) Balances(ctx context.Context, walletID uuid.UUID) ([]db.WalletBalance, error) {
	return l.store.ListWalletBalances(ctx, walletID)
}

func (l *LedgerService) Entries(ctx context.Context, walletID uuid.UUID, currency string, limit, offset int32) ([]db.LedgerEntry, error) {
	return l.store.ListLedgerEntries(ctx, db.ListLedgerEntriesParams{
		WalletID: walletID,
		Currency: currency,
		Limit:    limit,
		Offset:   offset,
	})
}
