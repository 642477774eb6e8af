package domain

import "time"

const MonthsPerYear = 12

// LoanParameters are the inputs of a fixed-rate mortgage.
type LoanParameters struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate"`
	TermYears         int     `json:"term_years"`
}

// MonthlyRate returns the periodic rate derived from the nominal annual rate.
func (p LoanParameters) MonthlyRate() float64 {
	return p.AnnualRatePercent / 100 / MonthsPerYear
}

// NumPayments returns the number of monthly payments over the term.
func (p LoanParameters) NumPayments() int {
	return p.TermYears * MonthsPerYear
}

// PaymentRecord is one row of an amortization schedule. Period is 1-indexed.
type PaymentRecord struct {
	Period           int     `json:"period"`
	PaymentAmount    float64 `json:"payment_amount"`
	PrincipalPortion float64 `json:"principal_portion"`
	InterestPortion  float64 `json:"interest_portion"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Schedule is the ordered list of payments. It is never mutated after it is built.
type Schedule []PaymentRecord

type Summary struct {
	MonthlyPayment             float64 `json:"monthly_payment"`
	NumPayments                int     `json:"num_payments"`
	TotalPaid                  float64 `json:"total_paid"`
	TotalInterest              float64 `json:"total_interest"`
	InterestToPrincipalPercent float64 `json:"interest_to_principal_percent"`
}

// Calculation bundles everything computed for one parameter set.
type Calculation struct {
	Parameters LoanParameters `json:"parameters"`
	Summary    Summary        `json:"summary"`
	Schedule   Schedule       `json:"schedule"`
}

// CalculationRecord is a stored calculation, without its schedule.
type CalculationRecord struct {
	ID         int64          `json:"id"`
	Parameters LoanParameters `json:"parameters"`
	Summary    Summary        `json:"summary"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ScheduleView selects which rows of a schedule are presented.
type ScheduleView string

const (
	ViewFull      ScheduleView = "full"
	ViewFirstYear ScheduleView = "first12"
	ViewLastYear  ScheduleView = "last12"
	ViewEveryYear ScheduleView = "yearly"
)
