package amortization

import (
	"math"

	"mortgage-calculator/domain"
)

func validateParameters(p domain.LoanParameters) error {
	if !isFinite(p.Principal) || p.Principal <= 0 {
		return &domain.InvalidParameterError{Field: "principal", Value: p.Principal, Reason: "must be a positive finite number"}
	}
	if !isFinite(p.AnnualRatePercent) || p.AnnualRatePercent < 0 {
		return &domain.InvalidParameterError{Field: "annual_rate", Value: p.AnnualRatePercent, Reason: "must be a non-negative finite number"}
	}
	if p.TermYears < 1 || p.TermYears > math.MaxInt/domain.MonthsPerYear {
		return &domain.InvalidParameterError{Field: "term_years", Value: p.TermYears, Reason: "must be a positive number of years"}
	}
	return nil
}

func validateInputs(principal, monthlyRate float64, numPayments int) error {
	if !isFinite(principal) || principal <= 0 {
		return &domain.InvalidParameterError{Field: "principal", Value: principal, Reason: "must be a positive finite number"}
	}
	if !isFinite(monthlyRate) || monthlyRate < 0 {
		return &domain.InvalidParameterError{Field: "monthly_rate", Value: monthlyRate, Reason: "must be a non-negative finite number"}
	}
	if numPayments < 1 {
		return &domain.InvalidParameterError{Field: "num_payments", Value: numPayments, Reason: "must be at least 1"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
