package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/outbox"
	"github.com/google/uuid"
)

// TopicEmail is the outbox topic carrying EmailMessage payloads.
const TopicEmail = "notification.email"

// Sender delivers one email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewEmail renders template name with data into a message for to.
func NewEmail(to string, name TemplateName, data any) (EmailMessage, error) {
	subject, html, err := Render(name, data)
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{To: to, Subject: subject, HTML: html}, nil
}

// EmailHandler decodes an outbox payload and hands it to sender.
func EmailHandler(sender Sender) func(ctx context.Context, payload json.RawMessage) error {
	return func(ctx context.Context, payload json.RawMessage) error {
		var msg EmailMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return fmt.Errorf("decode email payload: %w", err)
		}
		if msg.To == "" {
			return fmt.Errorf("email payload has no recipient")
		}
		return sender.Send(ctx, msg.To, msg.Subject, msg.HTML)
	}
}

// Queue renders name for the user and writes it to the outbox on q. A user
// without a profile row gets no email.
func Queue(ctx context.Context, q db.Querier, userID uuid.UUID, name TemplateName, data MoneyData) error {
	user, err := q.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	} else if err != nil {
		return err
	}

	data.Name = user.FirstName
	msg, err := NewEmail(user.Email, name, data)
	if err != nil {
		return err
	}
	return outbox.Enqueue(ctx, q, TopicEmail, msg)
}
