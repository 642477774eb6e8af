package amortization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-calculator/domain"
)

const centTolerance = 0.01

func TestComputeMonthlyPayment_StandardMortgage(t *testing.T) {
	payment, err := ComputeMonthlyPayment(domain.LoanParameters{
		Principal:         300000,
		AnnualRatePercent: 6,
		TermYears:         30,
	})

	require.NoError(t, err)
	assert.InDelta(t, 1798.65, payment, 0.005)
}

func TestComputeMonthlyPayment_ZeroRate(t *testing.T) {
	payment, err := ComputeMonthlyPayment(domain.LoanParameters{
		Principal:         12000,
		AnnualRatePercent: 0,
		TermYears:         1,
	})

	require.NoError(t, err)
	assert.Equal(t, 1000.0, payment)
}

func TestMonthlyPayment_RateBelowResolution(t *testing.T) {
	payment, err := MonthlyPayment(1200, 1e-20, 12)

	require.NoError(t, err)
	assert.InDelta(t, 100.0, payment, 1e-9)
}

func TestMonthlyPayment_Overflow(t *testing.T) {
	_, err := MonthlyPayment(1000, 1e6, 600)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNumericOverflow))

	var overflow *domain.NumericOverflowError
	assert.True(t, errors.As(err, &overflow))
}

func TestMonthlyPayment_InvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		rate        float64
		numPayments int
		field       string
	}{
		{name: "zero principal", principal: 0, rate: 0.005, numPayments: 360, field: "principal"},
		{name: "negative principal", principal: -1, rate: 0.005, numPayments: 360, field: "principal"},
		{name: "NaN principal", principal: math.NaN(), rate: 0.005, numPayments: 360, field: "principal"},
		{name: "infinite principal", principal: math.Inf(1), rate: 0.005, numPayments: 360, field: "principal"},
		{name: "negative rate", principal: 1000, rate: -0.001, numPayments: 12, field: "monthly_rate"},
		{name: "NaN rate", principal: 1000, rate: math.NaN(), numPayments: 12, field: "monthly_rate"},
		{name: "no payments", principal: 1000, rate: 0.005, numPayments: 0, field: "num_payments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonthlyPayment(tt.principal, tt.rate, tt.numPayments)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

			var invalid *domain.InvalidParameterError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestBuildSchedule_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params domain.LoanParameters
	}{
		{name: "zero principal", params: domain.LoanParameters{Principal: 0, AnnualRatePercent: 5, TermYears: 10}},
		{name: "negative rate", params: domain.LoanParameters{Principal: 1000, AnnualRatePercent: -1, TermYears: 10}},
		{name: "infinite rate", params: domain.LoanParameters{Principal: 1000, AnnualRatePercent: math.Inf(1), TermYears: 10}},
		{name: "zero term", params: domain.LoanParameters{Principal: 1000, AnnualRatePercent: 5, TermYears: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := BuildSchedule(tt.params)

			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
			assert.Nil(t, schedule)
		})
	}
}

func TestBuildSchedule_FirstRecord(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanParameters{
		Principal:         300000,
		AnnualRatePercent: 6,
		TermYears:         30,
	})
	require.NoError(t, err)
	require.Len(t, schedule, 360)

	first := schedule[0]
	assert.Equal(t, 1, first.Period)
	assert.InDelta(t, 1500.00, first.InterestPortion, 0.005)
	assert.InDelta(t, 298.65, first.PrincipalPortion, 0.005)
	assert.InDelta(t, 299701.35, first.RemainingBalance, 0.005)
}

func TestBuildSchedule_Invariants(t *testing.T) {
	cases := []domain.LoanParameters{
		{Principal: 300000, AnnualRatePercent: 6, TermYears: 30},
		{Principal: 1000, AnnualRatePercent: 20, TermYears: 1},
		{Principal: 10000000, AnnualRatePercent: 20, TermYears: 50},
		{Principal: 250000, AnnualRatePercent: 6.5, TermYears: 15},
		{Principal: 12345.67, AnnualRatePercent: 0.1, TermYears: 7},
		{Principal: 50000, AnnualRatePercent: 0, TermYears: 25},
	}

	for _, params := range cases {
		schedule, err := BuildSchedule(params)
		require.NoError(t, err)

		require.Len(t, schedule, params.TermYears*12, "schedule length for %+v", params)

		var principalSum float64
		for i, rec := range schedule {
			assert.Equal(t, i+1, rec.Period)
			assert.InDelta(t, rec.PaymentAmount, rec.PrincipalPortion+rec.InterestPortion, centTolerance,
				"payment conservation at period %d for %+v", rec.Period, params)
			if i > 0 {
				prev := schedule[i-1]
				assert.Less(t, rec.RemainingBalance, prev.RemainingBalance,
					"balance must decrease at period %d for %+v", rec.Period, params)
				if params.AnnualRatePercent > 0 {
					assert.LessOrEqual(t, rec.InterestPortion, prev.InterestPortion,
						"interest must not grow at period %d for %+v", rec.Period, params)
					assert.GreaterOrEqual(t, rec.PrincipalPortion, prev.PrincipalPortion-centTolerance,
						"principal must not shrink at period %d for %+v", rec.Period, params)
				}
			}
			if params.AnnualRatePercent == 0 {
				assert.Equal(t, 0.0, rec.InterestPortion, "interest at period %d for %+v", rec.Period, params)
			}
			principalSum += rec.PrincipalPortion
		}

		last := schedule[len(schedule)-1]
		assert.Equal(t, 0.0, last.RemainingBalance, "final balance for %+v", params)
		assert.InDelta(t, params.Principal, principalSum, centTolerance, "principal sum for %+v", params)
	}
}

func TestBuildSchedule_Monotonicity(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanParameters{
		Principal:         300000,
		AnnualRatePercent: 6,
		TermYears:         30,
	})
	require.NoError(t, err)

	for i := 1; i < len(schedule); i++ {
		prev, cur := schedule[i-1], schedule[i]
		assert.GreaterOrEqual(t, cur.PrincipalPortion, prev.PrincipalPortion-1e-6, "principal at period %d", cur.Period)
		assert.LessOrEqual(t, cur.InterestPortion, prev.InterestPortion, "interest at period %d", cur.Period)
	}
}

func TestBuildSchedule_ZeroRate(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanParameters{
		Principal:         12000,
		AnnualRatePercent: 0,
		TermYears:         1,
	})
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, rec := range schedule {
		assert.Equal(t, 0.0, rec.InterestPortion)
		assert.InDelta(t, 1000.00, rec.PaymentAmount, 1e-9)
		assert.Equal(t, rec.PaymentAmount, rec.PrincipalPortion)
	}
	assert.Equal(t, 0.0, schedule[11].RemainingBalance)
}

func TestSchedule_SinglePayment(t *testing.T) {
	rate := 5.0 / 100 / 12
	payment, err := MonthlyPayment(1000, rate, 1)
	require.NoError(t, err)

	schedule, err := Schedule(1000, rate, 1, payment)
	require.NoError(t, err)
	require.Len(t, schedule, 1)

	rec := schedule[0]
	assert.Equal(t, 1000.00, rec.PrincipalPortion)
	assert.Equal(t, 0.0, rec.RemainingBalance)
	assert.InDelta(t, 1000*rate, rec.InterestPortion, 1e-9)
	assert.InDelta(t, payment, rec.PaymentAmount, 1e-9)
}

func TestSchedule_InvalidPayment(t *testing.T) {
	for _, payment := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := Schedule(1000, 0.005, 12, payment)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, "payment %v", payment)
	}
}

func TestSchedule_FinalPeriodAbsorbsDrift(t *testing.T) {
	// A payment one cent short leaves a residual that the last period must clear.
	payment, err := MonthlyPayment(100000, 0.004, 120)
	require.NoError(t, err)

	schedule, err := Schedule(100000, 0.004, 120, payment-0.01)
	require.NoError(t, err)

	last := schedule[len(schedule)-1]
	assert.Equal(t, 0.0, last.RemainingBalance)
	assert.Greater(t, last.PaymentAmount, payment-0.01)
	assert.InDelta(t, last.PaymentAmount, last.PrincipalPortion+last.InterestPortion, 1e-9)
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	params := domain.LoanParameters{Principal: 420000, AnnualRatePercent: 4.75, TermYears: 20}

	first, err := BuildSchedule(params)
	require.NoError(t, err)
	second, err := BuildSchedule(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize(t *testing.T) {
	params := domain.LoanParameters{Principal: 300000, AnnualRatePercent: 6, TermYears: 30}
	schedule, err := BuildSchedule(params)
	require.NoError(t, err)

	summary := Summarize(schedule, params.Principal)

	assert.Equal(t, 360, summary.NumPayments)
	assert.InDelta(t, 1798.65, summary.MonthlyPayment, 0.005)
	assert.InDelta(t, 647514.57, summary.TotalPaid, 0.05)
	assert.InDelta(t, summary.TotalPaid-params.Principal, summary.TotalInterest, 1e-6)
	assert.InDelta(t, summary.TotalInterest/params.Principal*100, summary.InterestToPrincipalPercent, 1e-9)
	assert.GreaterOrEqual(t, summary.TotalInterest, 0.0)
}

func TestSummarize_ZeroRate(t *testing.T) {
	schedule, err := BuildSchedule(domain.LoanParameters{Principal: 50000, AnnualRatePercent: 0, TermYears: 25})
	require.NoError(t, err)

	summary := Summarize(schedule, 50000)

	assert.InDelta(t, 50000, summary.TotalPaid, 1e-6)
	assert.GreaterOrEqual(t, summary.TotalInterest, 0.0)
	assert.InDelta(t, 0, summary.TotalInterest, 1e-6)
}

func TestSummarize_EmptySchedule(t *testing.T) {
	assert.Equal(t, domain.Summary{}, Summarize(nil, 1000))
}
