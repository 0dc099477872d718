package webhook

import "errors"

var (
	ErrSignature        = errors.New("invalid webhook signature")
	ErrInvalidEvent     = errors.New("invalid event type")
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrUnknownProvider  = errors.New("no webhook secret configured for provider")
)
