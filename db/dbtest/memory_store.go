// Package dbtest provides an in-memory db.Store for service tests. Every
// ExecTx holds a single store-wide lock, which gives the same serialization a
// row lock gives in Postgres, and restores a snapshot when fq fails.
package dbtest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type memState struct {
	users       map[uuid.UUID]db.User
	wallets     map[uuid.UUID]db.Wallet
	balances    map[uuid.UUID]db.WalletBalance
	txs         map[uuid.UUID]db.Transaction
	withdrawals map[uuid.UUID]db.WithdrawalRequest
	outbox      map[uuid.UUID]db.OutboxMessage
	entries     []db.LedgerEntry
	webhooks    []db.WebhookEvent
	order       map[uuid.UUID]int64
	seq         int64
	failures    map[string]error
}

func newMemState() *memState {
	return &memState{
		users:       map[uuid.UUID]db.User{},
		wallets:     map[uuid.UUID]db.Wallet{},
		balances:    map[uuid.UUID]db.WalletBalance{},
		txs:         map[uuid.UUID]db.Transaction{},
		withdrawals: map[uuid.UUID]db.WithdrawalRequest{},
		outbox:      map[uuid.UUID]db.OutboxMessage{},
		order:       map[uuid.UUID]int64{},
		failures:    map[string]error{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.txs {
		c.txs[k] = v
	}
	for k, v := range s.withdrawals {
		c.withdrawals[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	for k, v := range s.order {
		c.order[k] = v
	}
	for k, v := range s.failures {
		c.failures[k] = v
	}
	c.entries = append([]db.LedgerEntry(nil), s.entries...)
	c.webhooks = append([]db.WebhookEvent(nil), s.webhooks...)
	c.seq = s.seq
	return c
}

func (s *memState) next(id uuid.UUID) time.Time {
	s.seq++
	s.order[id] = s.seq
	return time.Now().UTC()
}

func (s *memState) fail(method string) error {
	return s.failures[method]
}

// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu sync.Mutex
	st *memState
}

var _ db.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{st: newMemState()}
}

func (m *MemoryStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fq(&memQuerier{st: m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// FailOn makes every later call to method return err until cleared with a nil err.
func (m *MemoryStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.st.failures, method)
		return
	}
	m.st.failures[method] = err
}

func (m *MemoryStore) AddUser(email string) db.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := db.User{ID: uuid.New(), Email: email, FirstName: "Ada", LastName: "Obi", Role: "user"}
	u.CreatedAt = m.st.next(u.ID)
	m.st.users[u.ID] = u
	return u
}

func (m *MemoryStore) LedgerEntries() []db.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.LedgerEntry(nil), m.st.entries...)
}

func (m *MemoryStore) WebhookEvents() []db.WebhookEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.WebhookEvent(nil), m.st.webhooks...)
}

func (m *MemoryStore) OutboxMessages() []db.OutboxMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]db.OutboxMessage, 0, len(m.st.outbox))
	for _, msg := range m.st.outbox {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return m.st.order[out[i].ID] < m.st.order[out[j].ID] })
	return out
}

func (m *MemoryStore) do(fn func(q *memQuerier)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&memQuerier{st: m.st})
}

type memQuerier struct {
	st *memState
}

var _ db.Querier = (*memQuerier)(nil)

func duplicate(constraint string) error {
	return &pq.Error{Code: db.DuplicateEntry, Constraint: constraint}
}

func checkViolation(constraint string) error {
	return &pq.Error{Code: db.CheckViolation, Constraint: constraint}
}

func (q *memQuerier) GetUser(ctx context.Context, id uuid.UUID) (db.User, error) {
	u, ok := q.st.users[id]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (q *memQuerier) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	for _, u := range q.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return db.User{}, sql.ErrNoRows
}

func (q *memQuerier) CreateWallet(ctx context.Context, arg db.CreateWalletParams) (db.Wallet, error) {
	if err := q.st.fail("CreateWallet"); err != nil {
		return db.Wallet{}, err
	}
	for _, w := range q.st.wallets {
		if w.UserID == arg.UserID {
			return db.Wallet{}, duplicate("wallets_user_id_key")
		}
	}
	w := db.Wallet{ID: uuid.New(), UserID: arg.UserID, Status: arg.Status}
	w.CreatedAt = q.st.next(w.ID)
	w.UpdatedAt = w.CreatedAt
	q.st.wallets[w.ID] = w
	return w, nil
}

func (q *memQuerier) GetWallet(ctx context.Context, id uuid.UUID) (db.Wallet, error) {
	w, ok := q.st.wallets[id]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	return w, nil
}

func (q *memQuerier) GetWalletByUserID(ctx context.Context, userID uuid.UUID) (db.Wallet, error) {
	for _, w := range q.st.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	return db.Wallet{}, sql.ErrNoRows
}

func (q *memQuerier) UpdateWalletStatus(ctx context.Context, arg db.UpdateWalletStatusParams) (db.Wallet, error) {
	w, ok := q.st.wallets[arg.ID]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	w.Status = arg.Status
	w.UpdatedAt = time.Now().UTC()
	q.st.wallets[w.ID] = w
	return w, nil
}

func (q *memQuerier) findBalance(walletID uuid.UUID, currency string) (db.WalletBalance, bool) {
	for _, b := range q.st.balances {
		if b.WalletID == walletID && b.Currency == currency {
			return b, true
		}
	}
	return db.WalletBalance{}, false
}

func (q *memQuerier) CreateWalletBalance(ctx context.Context, arg db.CreateWalletBalanceParams) (db.WalletBalance, error) {
	if err := q.st.fail("CreateWalletBalance"); err != nil {
		return db.WalletBalance{}, err
	}
	if _, ok := q.findBalance(arg.WalletID, arg.Currency); ok {
		// ON CONFLICT DO NOTHING returns no row
		return db.WalletBalance{}, sql.ErrNoRows
	}
	b := db.WalletBalance{
		ID:            uuid.New(),
		WalletID:      arg.WalletID,
		Currency:      arg.Currency,
		Balance:       decimal.Zero,
		LedgerBalance: decimal.Zero,
	}
	b.CreatedAt = q.st.next(b.ID)
	b.UpdatedAt = b.CreatedAt
	q.st.balances[b.ID] = b
	return b, nil
}

func (q *memQuerier) GetWalletBalance(ctx context.Context, arg db.GetWalletBalanceParams) (db.WalletBalance, error) {
	b, ok := q.findBalance(arg.WalletID, arg.Currency)
	if !ok {
		return db.WalletBalance{}, sql.ErrNoRows
	}
	return b, nil
}

func (q *memQuerier) GetWalletBalanceForUpdate(ctx context.Context, arg db.GetWalletBalanceForUpdateParams) (db.WalletBalance, error) {
	return q.GetWalletBalance(ctx, db.GetWalletBalanceParams(arg))
}

func (q *memQuerier) UpdateWalletBalance(ctx context.Context, arg db.UpdateWalletBalanceParams) (db.WalletBalance, error) {
	if err := q.st.fail("UpdateWalletBalance"); err != nil {
		return db.WalletBalance{}, err
	}
	b, ok := q.st.balances[arg.ID]
	if !ok {
		return db.WalletBalance{}, sql.ErrNoRows
	}
	if arg.Balance.IsNegative() {
		return db.WalletBalance{}, checkViolation("wallet_balances_balance_check")
	}
	b.Balance = arg.Balance
	b.LedgerBalance = arg.LedgerBalance
	b.UpdatedAt = time.Now().UTC()
	q.st.balances[b.ID] = b
	return b, nil
}

func (q *memQuerier) ListWalletBalances(ctx context.Context, walletID uuid.UUID) ([]db.WalletBalance, error) {
	items := []db.WalletBalance{}
	for _, b := range q.st.balances {
		if b.WalletID == walletID {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Currency < items[j].Currency })
	return items, nil
}

func (q *memQuerier) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	if err := q.st.fail("CreateTransaction"); err != nil {
		return db.Transaction{}, err
	}
	for _, t := range q.st.txs {
		if t.Reference == arg.Reference {
			return db.Transaction{}, duplicate("transactions_reference_key")
		}
	}
	if !arg.Amount.IsPositive() {
		return db.Transaction{}, checkViolation("transactions_amount_check")
	}
	t := db.Transaction{
		ID:            uuid.New(),
		UserID:        arg.UserID,
		WalletID:      arg.WalletID,
		Amount:        arg.Amount,
		Fee:           arg.Fee,
		Currency:      arg.Currency,
		Type:          arg.Type,
		Status:        arg.Status,
		Provider:      arg.Provider,
		Reference:     arg.Reference,
		Description:   arg.Description,
		Meta:          arg.Meta,
		DateCompleted: arg.DateCompleted,
	}
	t.CreatedAt = q.st.next(t.ID)
	t.UpdatedAt = t.CreatedAt
	t.DateInitiated = t.CreatedAt
	q.st.txs[t.ID] = t
	return t, nil
}

func (q *memQuerier) GetTransaction(ctx context.Context, id uuid.UUID) (db.Transaction, error) {
	t, ok := q.st.txs[id]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	return t, nil
}

func (q *memQuerier) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (db.Transaction, error) {
	return q.GetTransaction(ctx, id)
}

func (q *memQuerier) GetTransactionByReference(ctx context.Context, reference string) (db.Transaction, error) {
	for _, t := range q.st.txs {
		if t.Reference == reference {
			return t, nil
		}
	}
	return db.Transaction{}, sql.ErrNoRows
}

func (q *memQuerier) GetTransactionByReferenceForUpdate(ctx context.Context, reference string) (db.Transaction, error) {
	return q.GetTransactionByReference(ctx, reference)
}

func (q *memQuerier) UpdateTransactionStatus(ctx context.Context, arg db.UpdateTransactionStatusParams) (db.Transaction, error) {
	if err := q.st.fail("UpdateTransactionStatus"); err != nil {
		return db.Transaction{}, err
	}
	t, ok := q.st.txs[arg.ID]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	t.Status = arg.Status
	t.UpdatedAt = time.Now().UTC()
	q.st.txs[t.ID] = t
	return t, nil
}

func (q *memQuerier) CompleteTransaction(ctx context.Context, arg db.CompleteTransactionParams) (db.Transaction, error) {
	if err := q.st.fail("CompleteTransaction"); err != nil {
		return db.Transaction{}, err
	}
	t, ok := q.st.txs[arg.ID]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	now := time.Now().UTC()
	t.Status = "SUCCESSFUL"
	t.Amount = arg.Amount
	t.DateCompleted = sql.NullTime{Time: now, Valid: true}
	t.UpdatedAt = now
	q.st.txs[t.ID] = t
	return t, nil
}

func (q *memQuerier) RefundTransaction(ctx context.Context, arg db.RefundTransactionParams) (db.Transaction, error) {
	if err := q.st.fail("RefundTransaction"); err != nil {
		return db.Transaction{}, err
	}
	t, ok := q.st.txs[arg.ID]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	now := time.Now().UTC()
	t.Status = "FAILED"
	t.WasRefunded = true
	t.DateRefunded = sql.NullTime{Time: now, Valid: true}
	t.WasReverted = arg.WasReverted
	if arg.WasReverted {
		t.DateReverted = sql.NullTime{Time: now, Valid: true}
	}
	t.UpdatedAt = now
	q.st.txs[t.ID] = t
	return t, nil
}

func matchTx(t db.Transaction, arg db.ListTransactionsParams) bool {
	switch {
	case arg.UserID.Valid && t.UserID != arg.UserID.UUID:
		return false
	case arg.WalletID.Valid && t.WalletID != arg.WalletID.UUID:
		return false
	case arg.Status.Valid && t.Status != arg.Status.String:
		return false
	case arg.Type.Valid && t.Type != arg.Type.String:
		return false
	case arg.Currency.Valid && t.Currency != arg.Currency.String:
		return false
	case arg.Reference.Valid && t.Reference != arg.Reference.String:
		return false
	case arg.StartDate.Valid && t.CreatedAt.Before(arg.StartDate.Time):
		return false
	case arg.EndDate.Valid && t.CreatedAt.After(arg.EndDate.Time):
		return false
	}
	return true
}

func page[T any](items []T, limit, offset int32) []T {
	if int(offset) >= len(items) {
		return []T{}
	}
	end := int(offset + limit)
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (q *memQuerier) ListTransactions(ctx context.Context, arg db.ListTransactionsParams) ([]db.Transaction, error) {
	items := []db.Transaction{}
	for _, t := range q.st.txs {
		if matchTx(t, arg) {
			items = append(items, t)
		}
	}
	sort.Slice(items, func(i, j int) bool { return q.st.order[items[i].ID] > q.st.order[items[j].ID] })
	return page(items, arg.PageLimit, arg.PageOffset), nil
}

func (q *memQuerier) CountTransactions(ctx context.Context, arg db.CountTransactionsParams) (int64, error) {
	var n int64
	for _, t := range q.st.txs {
		if matchTx(t, db.ListTransactionsParams{
			UserID:    arg.UserID,
			WalletID:  arg.WalletID,
			Status:    arg.Status,
			Type:      arg.Type,
			Currency:  arg.Currency,
			Reference: arg.Reference,
			StartDate: arg.StartDate,
			EndDate:   arg.EndDate,
		}) {
			n++
		}
	}
	return n, nil
}

func (q *memQuerier) CreateWithdrawalRequest(ctx context.Context, arg db.CreateWithdrawalRequestParams) (db.WithdrawalRequest, error) {
	if err := q.st.fail("CreateWithdrawalRequest"); err != nil {
		return db.WithdrawalRequest{}, err
	}
	for _, w := range q.st.withdrawals {
		if w.TransactionID == arg.TransactionID {
			return db.WithdrawalRequest{}, duplicate("withdrawal_requests_transaction_id_key")
		}
	}
	w := db.WithdrawalRequest{
		ID:            uuid.New(),
		UserID:        arg.UserID,
		TransactionID: arg.TransactionID,
		WalletID:      arg.WalletID,
		Amount:        arg.Amount,
		Status:        arg.Status,
	}
	w.CreatedAt = q.st.next(w.ID)
	w.UpdatedAt = w.CreatedAt
	q.st.withdrawals[w.ID] = w
	return w, nil
}

func (q *memQuerier) GetWithdrawalRequest(ctx context.Context, id uuid.UUID) (db.WithdrawalRequest, error) {
	w, ok := q.st.withdrawals[id]
	if !ok {
		return db.WithdrawalRequest{}, sql.ErrNoRows
	}
	return w, nil
}

func (q *memQuerier) GetWithdrawalRequestForUpdate(ctx context.Context, id uuid.UUID) (db.WithdrawalRequest, error) {
	return q.GetWithdrawalRequest(ctx, id)
}

func (q *memQuerier) GetWithdrawalRequestByTransactionForUpdate(ctx context.Context, transactionID uuid.UUID) (db.WithdrawalRequest, error) {
	for _, w := range q.st.withdrawals {
		if w.TransactionID == transactionID {
			return w, nil
		}
	}
	return db.WithdrawalRequest{}, sql.ErrNoRows
}

func (q *memQuerier) UpdateWithdrawalRequestStatus(ctx context.Context, arg db.UpdateWithdrawalRequestStatusParams) (db.WithdrawalRequest, error) {
	if err := q.st.fail("UpdateWithdrawalRequestStatus"); err != nil {
		return db.WithdrawalRequest{}, err
	}
	w, ok := q.st.withdrawals[arg.ID]
	if !ok {
		return db.WithdrawalRequest{}, sql.ErrNoRows
	}
	now := time.Now().UTC()
	w.Status = arg.Status
	if arg.ProcessedBy.Valid {
		w.ProcessedBy = arg.ProcessedBy
	}
	w.IsAutoWithdrawn = w.IsAutoWithdrawn || arg.IsAutoWithdrawn
	w.DateProcessed = sql.NullTime{Time: now, Valid: true}
	w.UpdatedAt = now
	q.st.withdrawals[w.ID] = w
	return w, nil
}

func (q *memQuerier) ListWithdrawalRequests(ctx context.Context, arg db.ListWithdrawalRequestsParams) ([]db.WithdrawalRequest, error) {
	items := []db.WithdrawalRequest{}
	for _, w := range q.st.withdrawals {
		if arg.UserID.Valid && w.UserID != arg.UserID.UUID {
			continue
		}
		if arg.Status.Valid && w.Status != arg.Status.String {
			continue
		}
		items = append(items, w)
	}
	sort.Slice(items, func(i, j int) bool { return q.st.order[items[i].ID] > q.st.order[items[j].ID] })
	return page(items, arg.PageLimit, arg.PageOffset), nil
}

func (q *memQuerier) CountWithdrawalRequests(ctx context.Context, arg db.CountWithdrawalRequestsParams) (int64, error) {
	items, _ := q.ListWithdrawalRequests(ctx, db.ListWithdrawalRequestsParams{
		UserID:    arg.UserID,
		Status:    arg.Status,
		PageLimit: int32(len(q.st.withdrawals)),
	})
	return int64(len(items)), nil
}

func (q *memQuerier) CreateLedgerEntry(ctx context.Context, arg db.CreateLedgerEntryParams) (db.LedgerEntry, error) {
	if err := q.st.fail("CreateLedgerEntry"); err != nil {
		return db.LedgerEntry{}, err
	}
	q.st.seq++
	e := db.LedgerEntry{
		ID:                 q.st.seq,
		WalletID:           arg.WalletID,
		Currency:           arg.Currency,
		TransactionID:      arg.TransactionID,
		BalanceDelta:       arg.BalanceDelta,
		LedgerDelta:        arg.LedgerDelta,
		BalanceAfter:       arg.BalanceAfter,
		LedgerBalanceAfter: arg.LedgerBalanceAfter,
		Reason:             arg.Reason,
		CreatedAt:          time.Now().UTC(),
	}
	q.st.entries = append(q.st.entries, e)
	return e, nil
}

func (q *memQuerier) ListLedgerEntries(ctx context.Context, arg db.ListLedgerEntriesParams) ([]db.LedgerEntry, error) {
	items := []db.LedgerEntry{}
	for i := len(q.st.entries) - 1; i >= 0; i-- {
		e := q.st.entries[i]
		if e.WalletID == arg.WalletID && e.Currency == arg.Currency {
			items = append(items, e)
		}
	}
	return page(items, arg.Limit, arg.Offset), nil
}

func (q *memQuerier) CreateOutboxMessage(ctx context.Context, arg db.CreateOutboxMessageParams) (db.OutboxMessage, error) {
	if err := q.st.fail("CreateOutboxMessage"); err != nil {
		return db.OutboxMessage{}, err
	}
	msg := db.OutboxMessage{
		ID:      uuid.New(),
		Topic:   arg.Topic,
		Payload: arg.Payload,
		Status:  "pending",
	}
	msg.CreatedAt = q.st.next(msg.ID)
	msg.AvailableAt = msg.CreatedAt
	q.st.outbox[msg.ID] = msg
	return msg, nil
}

func (q *memQuerier) ClaimOutboxMessages(ctx context.Context, arg db.ClaimOutboxMessagesParams) ([]db.OutboxMessage, error) {
	if err := q.st.fail("ClaimOutboxMessages"); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	items := []db.OutboxMessage{}
	for _, msg := range q.st.outbox {
		if msg.Status == "pending" && !msg.AvailableAt.After(now) {
			items = append(items, msg)
		}
	}
	sort.Slice(items, func(i, j int) bool { return q.st.order[items[i].ID] < q.st.order[items[j].ID] })
	items = page(items, arg.Limit, 0)
	for i := range items {
		items[i].AvailableAt = arg.AvailableAt
		q.st.outbox[items[i].ID] = items[i]
	}
	return items, nil
}

func (q *memQuerier) MarkOutboxMessageSent(ctx context.Context, id uuid.UUID) error {
	if err := q.st.fail("MarkOutboxMessageSent"); err != nil {
		return err
	}
	msg, ok := q.st.outbox[id]
	if !ok {
		return nil
	}
	msg.Status = "sent"
	msg.Attempts++
	msg.ProcessedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	q.st.outbox[id] = msg
	return nil
}

func (q *memQuerier) RescheduleOutboxMessage(ctx context.Context, arg db.RescheduleOutboxMessageParams) error {
	msg, ok := q.st.outbox[arg.ID]
	if !ok {
		return nil
	}
	msg.Status = arg.Status
	msg.Attempts = arg.Attempts
	msg.LastError = arg.LastError
	msg.AvailableAt = arg.AvailableAt
	q.st.outbox[arg.ID] = msg
	return nil
}

func (q *memQuerier) CreateWebhookEvent(ctx context.Context, arg db.CreateWebhookEventParams) (db.WebhookEvent, error) {
	q.st.seq++
	e := db.WebhookEvent{
		ID:        q.st.seq,
		Provider:  arg.Provider,
		EventType: arg.EventType,
		Reference: arg.Reference,
		Payload:   arg.Payload,
		CreatedAt: time.Now().UTC(),
	}
	q.st.webhooks = append(q.st.webhooks, e)
	return e, nil
}
