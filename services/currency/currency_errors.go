package currency

import "fmt"

var (
	ErrNoExchangeRate      = fmt.Errorf("could not retrieve exchange rate, please try again")
	ErrUnsupportedCurrency = fmt.Errorf("unsupported currency")
	ErrSameCurrency        = fmt.Errorf("base and target currency must differ")
	ErrAmountTooSmall      = fmt.Errorf("amount is below the minimum conversion")
	ErrAmountPrecision     = fmt.Errorf("amount can not have more than 2 decimal places")
	ErrWalletNotFound      = fmt.Errorf("wallet not found")
	ErrWalletFrozen        = fmt.Errorf("wallet is frozen")
)

type CurrencyError struct {
	ErrorObj      error
	BaseCurrency  string
	QuoteCurrency string
	Other         []error
}

func (c *CurrencyError) Error() string {
	return c.ErrorObj.Error()
}

func (c *CurrencyError) Unwrap() []error {
	return append([]error{c.ErrorObj}, c.Other...)
}

func (c *CurrencyError) ErrorOut() string {
	return fmt.Sprintf("%v: %v to %v", c.ErrorObj.Error(), c.BaseCurrency, c.QuoteCurrency)
}

func NewCurrencyError(err error, base string, quote string, e ...error) *CurrencyError {
	return &CurrencyError{
		ErrorObj:      err,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Other:         e,
	}
}
