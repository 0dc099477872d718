package webhook

import (
	"context"
	"fmt"
	"strings"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StateMachine is the part of the transaction service webhooks drive. Each
// call reports whether it changed anything; false means the reference was
// unknown or already past the expected state.
type StateMachine interface {
	ConfirmDeposit(ctx context.Context, reference string, amount decimal.Decimal) (bool, error)
	SettleWithdrawal(ctx context.Context, reference string) (bool, error)
	FailWithdrawal(ctx context.Context, reference string, reversed bool) (bool, error)
}

// Secrets maps an upper-case provider name to its signing secret.
type Secrets map[string]string

type Result struct {
	Event   Event
	Applied bool
}

type Reconciler struct {
	store   db.Store
	machine StateMachine
	secrets Secrets
	logger  *logging.Logger
}

func NewReconciler(store db.Store, machine StateMachine, secrets Secrets, logger *logging.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		machine: machine,
		secrets: secrets,
		logger:  logger,
	}
}

// Handle authenticates and applies one webhook delivery. Signature and
// payload problems are errors; events that match nothing are not.
func (r *Reconciler) Handle(ctx context.Context, provider string, body []byte, signature string) (*Result, error) {
	provider = strings.ToUpper(provider)
	secret, ok := r.secrets[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	if err := VerifySignature(secret, body, signature); err != nil {
		r.logger.WithField("provider", provider).Warn("webhook signature rejected")
		return nil, err
	}

	ev, err := parse(provider, body)
	if err != nil {
		return nil, err
	}

	_, err = r.store.CreateWebhookEvent(ctx, db.CreateWebhookEventParams{
		Provider:  provider,
		EventType: ev.Tag,
		Reference: ev.Reference,
		Payload:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("record webhook event: %w", err)
	}

	applied, err := r.dispatch(ctx, ev)
	if err != nil {
		return nil, err
	}

	log := r.logger.WithFields(logrus.Fields{
		"provider":  provider,
		"event":     ev.Kind.String(),
		"reference": ev.Reference,
	})
	if applied {
		log.Info("webhook applied")
	} else {
		log.Info("webhook ignored: no matching transaction in the expected state")
	}
	return &Result{Event: ev, Applied: applied}, nil
}

func parse(provider string, body []byte) (Event, error) {
	switch provider {
	case providers.Paystack:
		return ParsePaystack(body)
	case providers.Monnify:
		return ParseMonnify(body)
	default:
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func (r *Reconciler) dispatch(ctx context.Context, ev Event) (bool, error) {
	switch ev.Kind {
	case DepositConfirmed:
		return r.machine.ConfirmDeposit(ctx, ev.Reference, ev.Amount)
	case DisbursementSucceeded:
		return r.machine.SettleWithdrawal(ctx, ev.Reference)
	case DisbursementFailed:
		return r.machine.FailWithdrawal(ctx, ev.Reference, false)
	case DisbursementReversed:
		return r.machine.FailWithdrawal(ctx, ev.Reference, true)
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidEvent, ev.Kind)
	}
}
