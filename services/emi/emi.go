package emi

import (
	"plms/apperrors"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Calculate returns the fixed monthly installment for a reducing-balance
// loan, rounded half-up to 2 decimal places:
//
//	r   = annualRatePercent / 12 / 100
//	emi = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// A tenure of zero months would divide by zero in the formula, so it is
// rejected as a validation error instead. A zero rate degenerates to an
// interest-free even split.
func Calculate(principal decimal.Decimal, tenureInMonths int, annualRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if tenureInMonths <= 0 {
		return decimal.Zero, apperrors.ErrInvalidTenure
	}
	if !principal.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidPrincipal
	}

	months := decimal.NewFromInt(int64(tenureInMonths))

	monthlyRate := annualRatePercent.Div(twelve).Div(hundred)
	if monthlyRate.IsZero() {
		return principal.Div(months).Round(2), nil
	}

	factor := one.Add(monthlyRate).Pow(months)
	installment := principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))

	return installment.Round(2), nil
}
