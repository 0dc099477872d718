package transaction

import (
	"context"
	"database/sql"
	"errors"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/google/uuid"
)

// TransactionService owns the lifecycle of deposits and withdrawals. It is
// the only writer of transaction and withdrawal request status.
type TransactionService struct {
	store     db.Store
	ledger    *ledger.LedgerService
	providers *providers.ProviderService
	policy    fees.WithdrawalPolicy
	banks     BankCache
	logger    *logging.Logger
}

func NewTransactionService(store db.Store, ledger *ledger.LedgerService, providers *providers.ProviderService, policy fees.WithdrawalPolicy, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:     store,
		ledger:    ledger,
		providers: providers,
		policy:    policy,
		logger:    logger,
	}
}

// WithBankCache puts cache in front of the providers' bank lists.
func (s *TransactionService) WithBankCache(cache BankCache) *TransactionService {
	s.banks = cache
	return s
}

func (s *TransactionService) Policy() fees.WithdrawalPolicy {
	return s.policy
}

func (s *TransactionService) gateway(name string) (fiat.Gateway, error) {
	g, err := fiat.Resolve(s.providers, name)
	if err != nil {
		return nil, NewTransactionError(ErrValidation, "", err)
	}
	return g, nil
}

func (s *TransactionService) walletForUser(ctx context.Context, q db.Querier, userID uuid.UUID) (db.Wallet, error) {
	wallet, err := q.GetWalletByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Wallet{}, NewTransactionError(ErrWalletNotFound, "")
	}
	return wallet, err
}

func (s *TransactionService) getUser(ctx context.Context, q db.Querier, userID uuid.UUID) (db.User, error) {
	user, err := q.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return db.User{}, NewTransactionError(ErrUserNotFound, "")
	}
	return user, err
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
