package transaction

// CanTransition reports whether a transaction may move from one status to
// another. PENDING is the only non-terminal status.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusSuccessful, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanProcessWithdrawal reports whether a withdrawal request may still be
// approved, rejected or disbursed.
func CanProcessWithdrawal(status WithdrawalStatus) bool {
	return status == WithdrawalPending
}

// CanSettleWithdrawal reports whether a provider outcome may still be applied
// to a withdrawal request.
func CanSettleWithdrawal(status WithdrawalStatus) bool {
	return status == WithdrawalPending || status == WithdrawalProcessing
}
