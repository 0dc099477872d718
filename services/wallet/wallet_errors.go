package wallet

import "fmt"

var (
	ErrWalletNotFound      = fmt.Errorf("wallet not found")
	ErrWalletNotPossible   = fmt.Errorf("could not create wallet")
	ErrWalletAlreadyExists = fmt.Errorf("wallet already exists")
	ErrInvalidStatus       = fmt.Errorf("invalid wallet status")
	ErrNotYours            = fmt.Errorf("you don't own this wallet")
)

type WalletError struct {
	ErrorObj error
	WalletID string
	Other    []error
}

func (w *WalletError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletError) Unwrap() []error {
	return append([]error{w.ErrorObj}, w.Other...)
}

func (w *WalletError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", w.ErrorObj.Error(), w.WalletID)
}

func NewWalletError(err error, wallID string, e ...error) *WalletError {
	return &WalletError{
		ErrorObj: err,
		WalletID: wallID,
		Other:    e,
	}
}
