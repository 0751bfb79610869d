package emi

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plms/apperrors"
)

func TestCalculateStandardExample(t *testing.T) {
	// 100000 over 12 months at 12% p.a. (1% monthly) is the canonical case
	installment, err := Calculate(decimal.NewFromInt(100000), 12, decimal.NewFromFloat(12.0))
	require.NoError(t, err)
	assert.Equal(t, "8884.88", installment.StringFixed(2))
}

func TestCalculateDeterministic(t *testing.T) {
	first, err := Calculate(decimal.NewFromInt(250000), 24, decimal.NewFromFloat(10.5))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Calculate(decimal.NewFromInt(250000), 24, decimal.NewFromFloat(10.5))
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestCalculateZeroTenure(t *testing.T) {
	_, err := Calculate(decimal.NewFromInt(100000), 0, decimal.NewFromFloat(12.0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTenure)

	_, err = Calculate(decimal.NewFromInt(100000), -3, decimal.NewFromFloat(12.0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTenure)
}

func TestCalculateNonPositivePrincipal(t *testing.T) {
	_, err := Calculate(decimal.Zero, 12, decimal.NewFromFloat(12.0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrincipal)

	_, err = Calculate(decimal.NewFromInt(-500), 12, decimal.NewFromFloat(12.0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrincipal)
}

func TestCalculateZeroRateEvenSplit(t *testing.T) {
	installment, err := Calculate(decimal.NewFromInt(12000), 12, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", installment.StringFixed(2))
}

// Compounding the outstanding balance monthly and deducting the installment
// must amortize the principal to (near) zero by the final month. The rounding
// of the installment to 2 decimals leaves a residual bounded by half a cent
// times the annuity factor.
func TestCalculateAmortizesPrincipal(t *testing.T) {
	cases := []struct {
		principal int64
		tenure    int
		rate      float64
	}{
		{100000, 12, 12.0},
		{250000, 24, 10.5},
		{50000, 6, 18.0},
		{1000000, 60, 9.25},
		{75321, 18, 13.75},
	}

	one := decimal.NewFromInt(1)
	for _, tc := range cases {
		principal := decimal.NewFromInt(tc.principal)
		rate := decimal.NewFromFloat(tc.rate)

		installment, err := Calculate(principal, tc.tenure, rate)
		require.NoError(t, err)

		monthlyRate := rate.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
		balance := principal
		for i := 0; i < tc.tenure; i++ {
			balance = balance.Mul(one.Add(monthlyRate)).Sub(installment)
		}

		// residual bound: |emi_exact - emi_rounded| <= 0.005 accumulated over
		// the annuity factor ((1+r)^n - 1) / r
		annuity := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(tc.tenure))).Sub(one).Div(monthlyRate)
		bound := decimal.NewFromFloat(0.005).Mul(annuity).Add(decimal.NewFromFloat(0.01))

		assert.True(t, balance.Abs().LessThanOrEqual(bound),
			"principal=%d tenure=%d rate=%v residual=%s bound=%s",
			tc.principal, tc.tenure, tc.rate, balance.StringFixed(6), bound.StringFixed(6))
	}
}
