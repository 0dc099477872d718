package transaction

import "fmt"

var (
	ErrNotFound           = fmt.Errorf("not found")
	ErrInvalidState       = fmt.Errorf("transaction is not in a state that allows this action")
	ErrValidation         = fmt.Errorf("validation failed")
	ErrOwnershipMismatch  = fmt.Errorf("transaction does not belong to this user")
	ErrDisbursementFailed = fmt.Errorf("failed to process withdrawal, please try again or contact support")

	ErrInvalidAccount       = fmt.Errorf("%w: Invalid account details", ErrValidation)
	ErrAmountTooSmall       = fmt.Errorf("%w: amount is below the minimum", ErrValidation)
	ErrAmountPrecision      = fmt.Errorf("%w: amount can not have more than 2 decimal places", ErrValidation)
	ErrWalletNotFound       = fmt.Errorf("%w: wallet", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrTransactionNotFound  = fmt.Errorf("%w: transaction", ErrNotFound)
	ErrWithdrawalNotFound   = fmt.Errorf("%w: withdrawal request", ErrNotFound)
	ErrDisbursementDeclined = fmt.Errorf("withdrawal was declined by the payment provider")
	ErrWalletFrozen         = fmt.Errorf("%w: wallet is frozen", ErrInvalidState)
)

type TransactionError struct {
	ErrorObj  error
	Reference string
	Other     []error
}

func (t *TransactionError) Error() string {
	return t.ErrorObj.Error()
}

// Unwrap exposes the sentinel and any underlying causes to errors.Is.
func (t *TransactionError) Unwrap() []error {
	return append([]error{t.ErrorObj}, t.Other...)
}

func (t *TransactionError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", t.ErrorObj.Error(), t.Reference)
}

func NewTransactionError(err error, reference string, e ...error) *TransactionError {
	return &TransactionError{
		ErrorObj:  err,
		Reference: reference,
		Other:     e,
	}
}
