package dbtest

// Locked pass-throughs so MemoryStore satisfies db.Querier outside ExecTx.

import (
	"context"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/google/uuid"
)

func (m *MemoryStore) ClaimOutboxMessages(ctx context.Context, arg db.ClaimOutboxMessagesParams) (res []db.OutboxMessage, err error) {
	m.do(func(q *memQuerier) { res, err = q.ClaimOutboxMessages(ctx, arg) })
	return
}

func (m *MemoryStore) CompleteTransaction(ctx context.Context, arg db.CompleteTransactionParams) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.CompleteTransaction(ctx, arg) })
	return
}

func (m *MemoryStore) CountTransactions(ctx context.Context, arg db.CountTransactionsParams) (res int64, err error) {
	m.do(func(q *memQuerier) { res, err = q.CountTransactions(ctx, arg) })
	return
}

func (m *MemoryStore) CountWithdrawalRequests(ctx context.Context, arg db.CountWithdrawalRequestsParams) (res int64, err error) {
	m.do(func(q *memQuerier) { res, err = q.CountWithdrawalRequests(ctx, arg) })
	return
}

func (m *MemoryStore) CreateLedgerEntry(ctx context.Context, arg db.CreateLedgerEntryParams) (res db.LedgerEntry, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateLedgerEntry(ctx, arg) })
	return
}

func (m *MemoryStore) CreateOutboxMessage(ctx context.Context, arg db.CreateOutboxMessageParams) (res db.OutboxMessage, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateOutboxMessage(ctx, arg) })
	return
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateTransaction(ctx, arg) })
	return
}

func (m *MemoryStore) CreateWallet(ctx context.Context, arg db.CreateWalletParams) (res db.Wallet, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateWallet(ctx, arg) })
	return
}

func (m *MemoryStore) CreateWalletBalance(ctx context.Context, arg db.CreateWalletBalanceParams) (res db.WalletBalance, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateWalletBalance(ctx, arg) })
	return
}

func (m *MemoryStore) CreateWebhookEvent(ctx context.Context, arg db.CreateWebhookEventParams) (res db.WebhookEvent, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateWebhookEvent(ctx, arg) })
	return
}

func (m *MemoryStore) CreateWithdrawalRequest(ctx context.Context, arg db.CreateWithdrawalRequestParams) (res db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.CreateWithdrawalRequest(ctx, arg) })
	return
}

func (m *MemoryStore) GetTransaction(ctx context.Context, id uuid.UUID) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetTransaction(ctx, id) })
	return
}

func (m *MemoryStore) GetTransactionByReference(ctx context.Context, reference string) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetTransactionByReference(ctx, reference) })
	return
}

func (m *MemoryStore) GetTransactionByReferenceForUpdate(ctx context.Context, reference string) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetTransactionByReferenceForUpdate(ctx, reference) })
	return
}

func (m *MemoryStore) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetTransactionForUpdate(ctx, id) })
	return
}

func (m *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (res db.User, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetUser(ctx, id) })
	return
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (res db.User, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetUserByEmail(ctx, email) })
	return
}

func (m *MemoryStore) GetWallet(ctx context.Context, id uuid.UUID) (res db.Wallet, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWallet(ctx, id) })
	return
}

func (m *MemoryStore) GetWalletBalance(ctx context.Context, arg db.GetWalletBalanceParams) (res db.WalletBalance, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWalletBalance(ctx, arg) })
	return
}

func (m *MemoryStore) GetWalletBalanceForUpdate(ctx context.Context, arg db.GetWalletBalanceForUpdateParams) (res db.WalletBalance, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWalletBalanceForUpdate(ctx, arg) })
	return
}

func (m *MemoryStore) GetWalletByUserID(ctx context.Context, userID uuid.UUID) (res db.Wallet, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWalletByUserID(ctx, userID) })
	return
}

func (m *MemoryStore) GetWithdrawalRequest(ctx context.Context, id uuid.UUID) (res db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWithdrawalRequest(ctx, id) })
	return
}

func (m *MemoryStore) GetWithdrawalRequestByTransactionForUpdate(ctx context.Context, transactionID uuid.UUID) (res db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWithdrawalRequestByTransactionForUpdate(ctx, transactionID) })
	return
}

func (m *MemoryStore) GetWithdrawalRequestForUpdate(ctx context.Context, id uuid.UUID) (res db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.GetWithdrawalRequestForUpdate(ctx, id) })
	return
}

func (m *MemoryStore) ListLedgerEntries(ctx context.Context, arg db.ListLedgerEntriesParams) (res []db.LedgerEntry, err error) {
	m.do(func(q *memQuerier) { res, err = q.ListLedgerEntries(ctx, arg) })
	return
}

func (m *MemoryStore) ListTransactions(ctx context.Context, arg db.ListTransactionsParams) (res []db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.ListTransactions(ctx, arg) })
	return
}

func (m *MemoryStore) ListWalletBalances(ctx context.Context, walletID uuid.UUID) (res []db.WalletBalance, err error) {
	m.do(func(q *memQuerier) { res, err = q.ListWalletBalances(ctx, walletID) })
	return
}

func (m *MemoryStore) ListWithdrawalRequests(ctx context.Context, arg db.ListWithdrawalRequestsParams) (res []db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.ListWithdrawalRequests(ctx, arg) })
	return
}

func (m *MemoryStore) MarkOutboxMessageSent(ctx context.Context, id uuid.UUID) (err error) {
	m.do(func(q *memQuerier) { err = q.MarkOutboxMessageSent(ctx, id) })
	return
}

func (m *MemoryStore) RefundTransaction(ctx context.Context, arg db.RefundTransactionParams) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.RefundTransaction(ctx, arg) })
	return
}

func (m *MemoryStore) RescheduleOutboxMessage(ctx context.Context, arg db.RescheduleOutboxMessageParams) (err error) {
	m.do(func(q *memQuerier) { err = q.RescheduleOutboxMessage(ctx, arg) })
	return
}

func (m *MemoryStore) UpdateTransactionStatus(ctx context.Context, arg db.UpdateTransactionStatusParams) (res db.Transaction, err error) {
	m.do(func(q *memQuerier) { res, err = q.UpdateTransactionStatus(ctx, arg) })
	return
}

func (m *MemoryStore) UpdateWalletBalance(ctx context.Context, arg db.UpdateWalletBalanceParams) (res db.WalletBalance, err error) {
	m.do(func(q *memQuerier) { res, err = q.UpdateWalletBalance(ctx, arg) })
	return
}

func (m *MemoryStore) UpdateWalletStatus(ctx context.Context, arg db.UpdateWalletStatusParams) (res db.Wallet, err error) {
	m.do(func(q *memQuerier) { res, err = q.UpdateWalletStatus(ctx, arg) })
	return
}

func (m *MemoryStore) UpdateWithdrawalRequestStatus(ctx context.Context, arg db.UpdateWithdrawalRequestStatusParams) (res db.WithdrawalRequest, err error) {
	m.do(func(q *memQuerier) { res, err = q.UpdateWithdrawalRequestStatus(ctx, arg) })
	return
}
