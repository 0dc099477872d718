package transaction

import (
	"context"
	"database/sql"
	"errors"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage applies the default and maximum page size.
func NormalizePage(page, size int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func pageBounds(page, size int32) (limit, offset int32) {
	page, size = NormalizePage(page, size)
	return size, (page - 1) * size
}

func optionalUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// ListTransactions returns one page of transactions matching f, newest first,
// and the total number of matches.
func (s *TransactionService) ListTransactions(ctx context.Context, f TransactionFilter) ([]db.Transaction, int64, error) {
	limit, offset := pageBounds(f.Page, f.PageSize)

	params := db.ListTransactionsParams{
		UserID:     optionalUUID(f.UserID),
		WalletID:   optionalUUID(f.WalletID),
		Status:     nullString(f.Status),
		Type:       nullString(f.Type),
		Currency:   nullString(f.Currency),
		Reference:  nullString(f.Reference),
		PageLimit:  limit,
		PageOffset: offset,
	}
	if f.StartDate != nil && !f.StartDate.IsZero() {
		params.StartDate = sql.NullTime{Time: *f.StartDate, Valid: true}
	}
	if f.EndDate != nil && !f.EndDate.IsZero() {
		params.EndDate = sql.NullTime{Time: *f.EndDate, Valid: true}
	}

	items, err := s.store.ListTransactions(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountTransactions(ctx, db.CountTransactionsParams{
		UserID:    params.UserID,
		WalletID:  params.WalletID,
		Status:    params.Status,
		Type:      params.Type,
		Currency:  params.Currency,
		Reference: params.Reference,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListWithdrawalRequests returns one page of withdrawal requests, newest first.
func (s *TransactionService) ListWithdrawalRequests(ctx context.Context, f WithdrawalFilter) ([]db.WithdrawalRequest, int64, error) {
	limit, offset := pageBounds(f.Page, f.PageSize)

	items, err := s.store.ListWithdrawalRequests(ctx, db.ListWithdrawalRequestsParams{
		UserID:     optionalUUID(f.UserID),
		Status:     nullString(f.Status),
		PageLimit:  limit,
		PageOffset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountWithdrawalRequests(ctx, db.CountWithdrawalRequestsParams{
		UserID: optionalUUID(f.UserID),
		Status: nullString(f.Status),
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetTransaction returns a user's transaction by reference.
func (s *TransactionService) GetTransaction(ctx context.Context, userID uuid.UUID, reference string) (*db.Transaction, error) {
	tx, err := s.store.GetTransactionByReference(ctx, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewTransactionError(ErrTransactionNotFound, reference)
	} else if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, NewTransactionError(ErrTransactionNotFound, reference)
	}
	return &tx, nil
}
