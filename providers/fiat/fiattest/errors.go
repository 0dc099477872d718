package fiattest

import (
	"net/http"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/shopspring/decimal"
)

// Unavailable is what a provider outage looks like to callers.
func Unavailable(provider string) error {
	return &fiat.ProviderError{Provider: provider, StatusCode: http.StatusBadGateway, Kind: fiat.ErrProviderUnavailable}
}

// Rejected is what a business rejection looks like to callers.
func Rejected(provider, message string) error {
	return &fiat.ProviderError{Provider: provider, StatusCode: http.StatusBadRequest, Message: message, Kind: fiat.ErrProviderRejected}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
