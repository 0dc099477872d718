package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/shopspring/decimal"
)

// EventKind is the closed set of provider events the ledger reacts to.
type EventKind int

const (
	DepositConfirmed EventKind = iota + 1
	DisbursementSucceeded
	DisbursementFailed
	DisbursementReversed
)

func (k EventKind) String() string {
	switch k {
	case DepositConfirmed:
		return "deposit_confirmed"
	case DisbursementSucceeded:
		return "disbursement_succeeded"
	case DisbursementFailed:
		return "disbursement_failed"
	case DisbursementReversed:
		return "disbursement_reversed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a provider notification reduced to what reconciliation needs.
// Amount is in major units and is only set for deposits.
type Event struct {
	Provider  string
	Kind      EventKind
	Tag       string
	Reference string
	Amount    decimal.Decimal
}

var paystackKinds = map[string]EventKind{
	"charge.success":    DepositConfirmed,
	"transfer.success":  DisbursementSucceeded,
	"transfer.failed":   DisbursementFailed,
	"transfer.reversed": DisbursementReversed,
}

var monnifyKinds = map[string]EventKind{
	"SUCCESSFUL_TRANSACTION":  DepositConfirmed,
	"SUCCESSFUL_DISBURSEMENT": DisbursementSucceeded,
	"FAILED_DISBURSEMENT":     DisbursementFailed,
	"REVERSED_DISBURSEMENT":   DisbursementReversed,
}

type paystackPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Status    string `json:"status"`
	} `json:"data"`
}

type monnifyPayload struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
}

type monnifyPaymentData struct {
	PaymentReference string      `json:"paymentReference"`
	AmountPaid       json.Number `json:"amountPaid"`
	PaymentStatus    string      `json:"paymentStatus"`
}

type monnifyDisbursementData struct {
	Reference string      `json:"reference"`
	Amount    json.Number `json:"amount"`
	Status    string      `json:"status"`
}

// ParsePaystack decodes a Paystack webhook body. Amounts arrive in kobo.
func ParsePaystack(body []byte) (Event, error) {
	var p paystackPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	kind, ok := paystackKinds[p.Event]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidEvent, p.Event)
	}
	if p.Data.Reference == "" {
		return Event{}, fmt.Errorf("%w: missing reference", ErrMalformedPayload)
	}

	return Event{
		Provider:  providers.Paystack,
		Kind:      kind,
		Tag:       p.Event,
		Reference: p.Data.Reference,
		Amount:    decimal.New(p.Data.Amount, -2),
	}, nil
}

// ParseMonnify decodes a Monnify webhook body. Deposits are keyed by the
// payment reference we issued, disbursements by the transfer reference.
func ParseMonnify(body []byte) (Event, error) {
	var p monnifyPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	kind, ok := monnifyKinds[p.EventType]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidEvent, p.EventType)
	}
	if len(p.EventData) == 0 {
		return Event{}, fmt.Errorf("%w: missing eventData", ErrMalformedPayload)
	}

	ev := Event{Provider: providers.Monnify, Kind: kind, Tag: p.EventType}
	var rawAmount json.Number
	if kind == DepositConfirmed {
		var d monnifyPaymentData
		if err := json.Unmarshal(p.EventData, &d); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		ev.Reference, rawAmount = d.PaymentReference, d.AmountPaid
	} else {
		var d monnifyDisbursementData
		if err := json.Unmarshal(p.EventData, &d); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		ev.Reference, rawAmount = d.Reference, d.Amount
	}
	if ev.Reference == "" {
		return Event{}, fmt.Errorf("%w: missing reference", ErrMalformedPayload)
	}

	if rawAmount != "" {
		amount, err := decimal.NewFromString(rawAmount.String())
		if err != nil {
			return Event{}, fmt.Errorf("%w: amount %q", ErrMalformedPayload, rawAmount)
		}
		ev.Amount = amount
	}
	return ev, nil
}
