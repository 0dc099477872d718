package fiat

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrProviderRejected    = errors.New("payment provider rejected the request")
	ErrUnknownProvider     = errors.New("unknown payment provider")
)

// ProviderError carries the upstream detail behind ErrProviderUnavailable or
// ErrProviderRejected. Kind is always one of those two.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Kind       error
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrProviderUnavailable, Err: err}
}

func rejected(provider string, message string) error {
	return &ProviderError{Provider: provider, Kind: ErrProviderRejected, Message: message}
}

// responseError classifies a non-success HTTP response: 5xx is transient,
// anything else is a business rejection.
func responseError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	kind := ErrProviderRejected
	if resp.StatusCode >= http.StatusInternalServerError {
		kind = ErrProviderUnavailable
	}
	return &ProviderError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Message:    string(body),
		Kind:       kind,
	}
}
