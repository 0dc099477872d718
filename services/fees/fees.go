package fees

import (
	"fmt"
	"strings"

	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/shopspring/decimal"
)

type FeeType string

const (
	FeeTypeFixed      FeeType = "FIXED"
	FeeTypePercentage FeeType = "PERCENTAGE"
)

var hundred = decimal.NewFromInt(100)

const feeScale = 2

// ComputeFee returns value for FIXED fees and amount*value/100 for PERCENTAGE.
func ComputeFee(amount decimal.Decimal, feeType FeeType, value decimal.Decimal) decimal.Decimal {
	switch feeType {
	case FeeTypePercentage:
		return amount.Mul(value).Div(hundred)
	default:
		return value
	}
}

var (
	ErrBelowMinimum = fmt.Errorf("amount is below the minimum withdrawal")
	ErrAboveMaximum = fmt.Errorf("amount is above the maximum withdrawal")
)

// PolicyConfig is the .env shape of a WithdrawalPolicy.
type PolicyConfig struct {
	MinAmount           string `mapstructure:"WITHDRAWAL_MIN_AMOUNT"`
	MaxAmount           string `mapstructure:"WITHDRAWAL_MAX_AMOUNT"`
	MaxAutoWithdrawable string `mapstructure:"WITHDRAWAL_MAX_AUTO_AMOUNT"`
	FeeType             string `mapstructure:"WITHDRAWAL_FEE_TYPE"`
	FeeValue            string `mapstructure:"WITHDRAWAL_FEE_VALUE"`
}

type WithdrawalPolicy struct {
	MinAmount           decimal.Decimal
	MaxAmount           decimal.Decimal
	MaxAutoWithdrawable decimal.Decimal
	FeeType             FeeType
	FeeValue            decimal.Decimal
}

func DefaultPolicy() WithdrawalPolicy {
	return WithdrawalPolicy{
		MinAmount:           decimal.NewFromInt(1000),
		MaxAmount:           decimal.NewFromInt(1000000),
		MaxAutoWithdrawable: decimal.NewFromInt(50000),
		FeeType:             FeeTypeFixed,
		FeeValue:            decimal.Zero,
	}
}

// LoadPolicy reads the policy from the .env at path. Unset keys keep their
// defaults.
func LoadPolicy(path string) (WithdrawalPolicy, error) {
	var c PolicyConfig
	if err := utils.LoadCustomConfig(path, &c); err != nil {
		return WithdrawalPolicy{}, err
	}
	return c.Policy()
}

func (c PolicyConfig) Policy() (WithdrawalPolicy, error) {
	p := DefaultPolicy()

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"WITHDRAWAL_MIN_AMOUNT", c.MinAmount, &p.MinAmount},
		{"WITHDRAWAL_MAX_AMOUNT", c.MaxAmount, &p.MaxAmount},
		{"WITHDRAWAL_MAX_AUTO_AMOUNT", c.MaxAutoWithdrawable, &p.MaxAutoWithdrawable},
		{"WITHDRAWAL_FEE_VALUE", c.FeeValue, &p.FeeValue},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return WithdrawalPolicy{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if v.IsNegative() {
			return WithdrawalPolicy{}, fmt.Errorf("invalid %s: must not be negative", f.name)
		}
		*f.dst = v
	}

	switch FeeType(strings.ToUpper(c.FeeType)) {
	case "":
	case FeeTypeFixed:
		p.FeeType = FeeTypeFixed
	case FeeTypePercentage:
		p.FeeType = FeeTypePercentage
	default:
		return WithdrawalPolicy{}, fmt.Errorf("invalid WITHDRAWAL_FEE_TYPE %q", c.FeeType)
	}

	if p.MaxAmount.LessThan(p.MinAmount) {
		return WithdrawalPolicy{}, fmt.Errorf("withdrawal max %s is below min %s", p.MaxAmount, p.MinAmount)
	}
	return p, nil
}

// ValidateAmount checks amount against the policy bounds.
func (p WithdrawalPolicy) ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(p.MinAmount) {
		return fmt.Errorf("%w of %s", ErrBelowMinimum, p.MinAmount)
	}
	if amount.GreaterThan(p.MaxAmount) {
		return fmt.Errorf("%w of %s", ErrAboveMaximum, p.MaxAmount)
	}
	return nil
}

// ShouldAutoProcess reports whether a withdrawal of amount is disbursed
// immediately instead of waiting for an admin.
func (p WithdrawalPolicy) ShouldAutoProcess(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(p.MaxAutoWithdrawable)
}

// Fee is rounded to kobo so the value reserved is the value stored and
// refunded.
func (p WithdrawalPolicy) Fee(amount decimal.Decimal) decimal.Decimal {
	return ComputeFee(amount, p.FeeType, p.FeeValue).Round(feeScale)
}
