package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/sirupsen/logrus"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusDead    = "dead"

	MaxAttempts = 5
	BatchSize   = 20
	BaseBackoff = 30 * time.Second

	// ClaimLease hides a claimed message from other dispatchers while its
	// handler runs.
	ClaimLease = 5 * time.Minute
)

// Handler processes one message payload. A returned error schedules a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Enqueue writes a message on q. Called with the Querier of an ExecTx, the
// message commits or rolls back with the rest of that unit.
func Enqueue(ctx context.Context, q db.Querier, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}
	_, err = q.CreateOutboxMessage(ctx, db.CreateOutboxMessageParams{
		Topic:   topic,
		Payload: raw,
	})
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", topic, err)
	}
	return nil
}

type Dispatcher struct {
	store    db.Store
	logger   *logging.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
	now      func() time.Time
}

func NewDispatcher(store db.Store, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		logger:   logger,
		handlers: make(map[string]Handler),
		now:      time.Now,
	}
}

func (d *Dispatcher) Register(topic string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[topic] = h
}

// Backoff is the delay before attempt n+1 after n failures.
func Backoff(attempts int32) time.Duration {
	return BaseBackoff * time.Duration(math.Pow(2, float64(attempts-1)))
}

// Dispatch leases a batch of due messages and runs their handlers outside
// any transaction. Each outcome is written on its own, so a failure partway
// through never un-marks messages already delivered. A message whose outcome
// could not be written is retried once its lease expires. It returns how
// many messages were delivered.
func (d *Dispatcher) Dispatch(ctx context.Context) (int, error) {
	msgs, err := d.store.ClaimOutboxMessages(ctx, db.ClaimOutboxMessagesParams{
		Limit:       BatchSize,
		AvailableAt: d.now().Add(ClaimLease),
	})
	if err != nil {
		return 0, fmt.Errorf("claim outbox messages: %w", err)
	}

	sent := 0
	for _, msg := range msgs {
		herr := d.handle(ctx, msg)
		if herr == nil {
			if err := d.store.MarkOutboxMessageSent(ctx, msg.ID); err != nil {
				return sent, fmt.Errorf("mark outbox message %v sent: %w", msg.ID, err)
			}
			sent++
			continue
		}

		if err := d.reschedule(ctx, msg, herr); err != nil {
			return sent, err
		}
	}
	return sent, nil
}

func (d *Dispatcher) reschedule(ctx context.Context, msg db.OutboxMessage, herr error) error {
	attempts := msg.Attempts + 1
	status := StatusPending
	if attempts >= MaxAttempts {
		status = StatusDead
	}
	log := d.logger.WithFields(logrus.Fields{
		"outbox_id": msg.ID,
		"topic":     msg.Topic,
		"attempts":  attempts,
	})
	if status == StatusDead {
		log.Error(fmt.Sprintf("outbox message dead: %v", herr))
	} else {
		log.Warn(fmt.Sprintf("outbox message failed: %v", herr))
	}

	err := d.store.RescheduleOutboxMessage(ctx, db.RescheduleOutboxMessageParams{
		ID:          msg.ID,
		Status:      status,
		Attempts:    attempts,
		LastError:   sql.NullString{String: herr.Error(), Valid: true},
		AvailableAt: d.now().Add(Backoff(attempts)),
	})
	if err != nil {
		return fmt.Errorf("reschedule outbox message %v: %w", msg.ID, err)
	}
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, msg db.OutboxMessage) error {
	d.mu.RLock()
	h, ok := d.handlers[msg.Topic]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler for topic %q", msg.Topic)
	}
	return h(ctx, msg.Payload)
}

// Task adapts Dispatch to the scheduler's task signature.
func (d *Dispatcher) Task(ctx context.Context) error {
	n, err := d.Dispatch(ctx)
	if n > 0 {
		d.logger.Info(fmt.Sprintf("dispatched %d outbox messages", n))
	}
	return err
}
