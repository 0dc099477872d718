package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusSuccessful, StatusFailed, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusPending && to != StatusPending
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestWithdrawalStates(t *testing.T) {
	assert.True(t, CanProcessWithdrawal(WithdrawalPending))
	assert.False(t, CanProcessWithdrawal(WithdrawalProcessing))
	assert.True(t, CanSettleWithdrawal(WithdrawalProcessing))
	assert.False(t, CanSettleWithdrawal(WithdrawalApproved))
	assert.False(t, CanSettleWithdrawal(WithdrawalDeclined))
}
