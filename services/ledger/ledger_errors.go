package ledger

import "fmt"

var (
	ErrInsufficientBalance = fmt.Errorf("insufficient balance")
	ErrBalanceNotFound     = fmt.Errorf("wallet balance not found")
)

type LedgerError struct {
	ErrorObj error
	WalletID string
	Currency string
	Other    []error
}

func (l *LedgerError) Error() string {
	return l.ErrorObj.Error()
}

func (l *LedgerError) Unwrap() error {
	return l.ErrorObj
}

func (l *LedgerError) ErrorOut() string {
	return fmt.Sprintf("%v: %v (%v)", l.ErrorObj.Error(), l.WalletID, l.Currency)
}

func NewLedgerError(err error, walletID string, currency string, e ...error) *LedgerError {
	return &LedgerError{
		ErrorObj: err,
		WalletID: walletID,
		Currency: currency,
		Other:    e,
	}
}
