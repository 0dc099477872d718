package api

import (
	"errors"
	"net/http"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api/apistrings"
	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	user_service "github.com/SwiftFiat/SwiftFiat-Ledger/services/user"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/wallet"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/gin-gonic/gin"
)

// statusRules is checked in order; the first match wins.
var statusRules = []struct {
	status int
	errs   []error
}{
	{http.StatusUnauthorized, []error{webhook.ErrSignature}},
	{http.StatusBadGateway, []error{transaction.ErrDisbursementDeclined, fiat.ErrProviderRejected}},
	{http.StatusServiceUnavailable, []error{transaction.ErrDisbursementFailed, fiat.ErrProviderUnavailable, currency.ErrNoExchangeRate}},
	{http.StatusForbidden, []error{transaction.ErrOwnershipMismatch, wallet.ErrNotYours}},
	{http.StatusPaymentRequired, []error{ledger.ErrInsufficientBalance}},
	{http.StatusNotFound, []error{
		transaction.ErrNotFound, wallet.ErrWalletNotFound, currency.ErrWalletNotFound,
		ledger.ErrBalanceNotFound, webhook.ErrUnknownProvider, user_service.ErrUserNotFound,
	}},
	{http.StatusConflict, []error{
		transaction.ErrInvalidState, wallet.ErrWalletAlreadyExists, currency.ErrWalletFrozen,
	}},
	{http.StatusBadRequest, []error{
		transaction.ErrValidation, fees.ErrBelowMinimum, fees.ErrAboveMaximum,
		currency.ErrUnsupportedCurrency, currency.ErrSameCurrency, currency.ErrAmountTooSmall, currency.ErrAmountPrecision,
		webhook.ErrInvalidEvent, webhook.ErrMalformedPayload, wallet.ErrInvalidStatus,
		fiat.ErrUnknownProvider,
	}},
}

func errorStatus(err error) int {
	for _, rule := range statusRules {
		for _, target := range rule.errs {
			if errors.Is(err, target) {
				return rule.status
			}
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err in the error envelope. Unmapped errors are logged
// and hidden behind a generic message.
func (s *Server) respondError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.WithField("path", ctx.FullPath()).Error(err)
		ctx.JSON(status, models.NewError(apistrings.ServerError))
		return
	}
	ctx.JSON(status, models.NewError(err.Error()))
}
