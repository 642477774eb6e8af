// Package amortization computes fixed-rate mortgage payments and schedules.
//
// Every function here is pure: values are kept at full float64 precision and
// rounding to currency units is left to the caller at output time.
package amortization

import (
	"math"

	"mortgage-calculator/domain"
)

// ComputeMonthlyPayment returns the fixed monthly payment for the loan.
func ComputeMonthlyPayment(p domain.LoanParameters) (float64, error) {
	if err := validateParameters(p); err != nil {
		return 0, err
	}
	return MonthlyPayment(p.Principal, p.MonthlyRate(), p.NumPayments())
}

// BuildSchedule returns the full amortization schedule for the loan.
func BuildSchedule(p domain.LoanParameters) (domain.Schedule, error) {
	payment, err := ComputeMonthlyPayment(p)
	if err != nil {
		return nil, err
	}
	return Schedule(p.Principal, p.MonthlyRate(), p.NumPayments(), payment)
}

// MonthlyPayment applies the annuity formula. A zero rate amortizes linearly.
func MonthlyPayment(principal, monthlyRate float64, numPayments int) (float64, error) {
	if err := validateInputs(principal, monthlyRate, numPayments); err != nil {
		return 0, err
	}

	if monthlyRate == 0 {
		return principal / float64(numPayments), nil
	}

	factor := math.Pow(1+monthlyRate, float64(numPayments))
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return 0, &domain.NumericOverflowError{Operation: "annuity factor"}
	}
	// 1+r rounds to 1 for rates below float64 resolution.
	if factor == 1 {
		return principal / float64(numPayments), nil
	}

	payment := principal * monthlyRate * factor / (factor - 1)
	if math.IsInf(payment, 0) || math.IsNaN(payment) || payment <= 0 {
		return 0, &domain.NumericOverflowError{Operation: "monthly payment"}
	}
	return payment, nil
}

// Schedule produces numPayments records starting from the full principal.
// The last period pays off whatever balance is left, so the schedule always
// ends at exactly zero regardless of accumulated drift.
func Schedule(principal, monthlyRate float64, numPayments int, payment float64) (domain.Schedule, error) {
	if err := validateInputs(principal, monthlyRate, numPayments); err != nil {
		return nil, err
	}
	if math.IsNaN(payment) || math.IsInf(payment, 0) || payment <= 0 {
		return nil, &domain.InvalidParameterError{Field: "payment_amount", Value: payment, Reason: "must be a positive finite number"}
	}

	schedule := make(domain.Schedule, 0, numPayments)
	balance := principal

	for period := 1; period <= numPayments; period++ {
		interest := balance * monthlyRate
		principalPortion := payment - interest
		amount := payment

		if period == numPayments {
			principalPortion = balance
			amount = principalPortion + interest
		}

		balance -= principalPortion

		schedule = append(schedule, domain.PaymentRecord{
			Period:           period,
			PaymentAmount:    amount,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: math.Max(balance, 0),
		})
	}

	return schedule, nil
}

// Summarize totals a schedule built for the given principal.
func Summarize(schedule domain.Schedule, principal float64) domain.Summary {
	if len(schedule) == 0 {
		return domain.Summary{}
	}

	var totalPaid float64
	for _, rec := range schedule {
		totalPaid += rec.PaymentAmount
	}

	// Summation noise can push a zero-rate total a hair under the principal.
	totalInterest := math.Max(totalPaid-principal, 0)

	var ratio float64
	if principal > 0 {
		ratio = totalInterest / principal * 100
	}

	return domain.Summary{
		MonthlyPayment:             schedule[0].PaymentAmount,
		NumPayments:                len(schedule),
		TotalPaid:                  totalPaid,
		TotalInterest:              totalInterest,
		InterestToPrincipalPercent: ratio,
	}
}
