package fees

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFee(t *testing.T) {
	testCases := []struct {
		name    string
		amount  string
		feeType FeeType
		value   string
		want    string
	}{
		{"fixed", "500", FeeTypeFixed, "12", "12"},
		{"fixed ignores amount", "1000000", FeeTypeFixed, "12", "12"},
		{"percentage", "2000", FeeTypePercentage, "1.5", "30"},
		{"zero percentage", "2000", FeeTypePercentage, "0", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeFee(d(tc.amount), tc.feeType, d(tc.value))
			assert.True(t, got.Equal(d(tc.want)), "got %s", got)
		})
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.NoError(t, p.ValidateAmount(d("1000")))
	assert.NoError(t, p.ValidateAmount(d("1000000")))
	assert.True(t, errors.Is(p.ValidateAmount(d("999.99")), ErrBelowMinimum))
	assert.True(t, errors.Is(p.ValidateAmount(d("1000000.01")), ErrAboveMaximum))

	assert.True(t, p.ShouldAutoProcess(d("50000")))
	assert.False(t, p.ShouldAutoProcess(d("50000.01")))
	assert.True(t, p.Fee(d("5000")).IsZero())
}

func TestPolicyConfig(t *testing.T) {
	p, err := PolicyConfig{MinAmount: "100", FeeType: "percentage", FeeValue: "1"}.Policy()
	require.NoError(t, err)
	assert.True(t, p.MinAmount.Equal(d("100")))
	assert.True(t, p.MaxAmount.Equal(d("1000000")))
	assert.Equal(t, FeeTypePercentage, p.FeeType)
	assert.True(t, p.Fee(d("500")).Equal(d("5")))

	_, err = PolicyConfig{FeeType: "TIERED"}.Policy()
	assert.Error(t, err)

	_, err = PolicyConfig{MinAmount: "abc"}.Policy()
	assert.Error(t, err)

	_, err = PolicyConfig{MinAmount: "5000", MaxAmount: "10"}.Policy()
	assert.Error(t, err)
}

func TestPolicyFeeIsRoundedToKobo(t *testing.T) {
	p := DefaultPolicy()
	p.FeeType = FeeTypePercentage
	p.FeeValue = d("1.5")

	fee := p.Fee(d("1000.33"))
	assert.True(t, fee.Equal(d("15")), "got %s", fee)
	assert.GreaterOrEqual(t, fee.Exponent(), int32(-2))

	fee = p.Fee(d("1234.56"))
	assert.True(t, fee.Equal(d("18.52")), "got %s", fee)
}
