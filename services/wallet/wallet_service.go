package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	"github.com/google/uuid"
)

type WalletService struct {
	store  db.Store
	logger *logging.Logger
}

func NewWalletService(store db.Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

func (w *WalletService) GetWallet(ctx context.Context, walletID uuid.UUID) (*WalletModel, error) {
	w.logger.Info(fmt.Sprintf("fetching wallet %v", walletID))
	dbWallet, err := w.store.GetWallet(ctx, walletID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletError(ErrWalletNotFound, walletID.String())
	} else if err != nil {
		return nil, err
	}
	return w.withBalances(ctx, dbWallet)
}

func (w *WalletService) GetWalletByUser(ctx context.Context, userID uuid.UUID) (*WalletModel, error) {
	dbWallet, err := w.store.GetWalletByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletError(ErrWalletNotFound, "")
	} else if err != nil {
		return nil, err
	}
	return w.withBalances(ctx, dbWallet)
}

// CreateWallet opens the user's only wallet together with its base currency
// balance.
func (w *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID) (*WalletModel, error) {
	var (
		created db.Wallet
		base    db.WalletBalance
	)
	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		var err error
		created, err = q.CreateWallet(ctx, db.CreateWalletParams{
			UserID: userID,
			Status: transaction.WalletActive,
		})
		if db.IsDuplicateEntry(err) {
			return NewWalletError(ErrWalletAlreadyExists, "", err)
		} else if err != nil {
			return NewWalletError(ErrWalletNotPossible, "", err)
		}

		base, err = q.CreateWalletBalance(ctx, db.CreateWalletBalanceParams{
			WalletID: created.ID,
			Currency: transaction.BaseCurrency,
		})
		if err != nil {
			return NewWalletError(ErrWalletNotPossible, created.ID.String(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info(fmt.Sprintf("created wallet %v for user %v", created.ID, userID))
	return ToWalletModel(created, []db.WalletBalance{base}), nil
}

// SetStatus freezes or unfreezes a wallet.
func (w *WalletService) SetStatus(ctx context.Context, walletID uuid.UUID, status string) (*WalletModel, error) {
	if status != transaction.WalletActive && status != transaction.WalletFrozen {
		return nil, NewWalletError(ErrInvalidStatus, walletID.String())
	}

	updated, err := w.store.UpdateWalletStatus(ctx, db.UpdateWalletStatusParams{ID: walletID, Status: status})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletError(ErrWalletNotFound, walletID.String())
	} else if err != nil {
		return nil, err
	}

	w.logger.Info(fmt.Sprintf("wallet %v is now %v", walletID, status))
	return w.withBalances(ctx, updated)
}

func (w *WalletService) withBalances(ctx context.Context, wallet db.Wallet) (*WalletModel, error) {
	balances, err := w.store.ListWalletBalances(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	return ToWalletModel(wallet, balances), nil
}
