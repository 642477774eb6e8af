// Package export renders amortization results as CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mortgage-calculator/domain"
)

var scheduleHeader = []string{
	"Payment_Number",
	"Payment_Amount",
	"Principal_Payment",
	"Interest_Payment",
	"Remaining_Balance",
}

// WriteScheduleCSV writes one row per payment record, amounts rounded to cents.
func WriteScheduleCSV(w io.Writer, schedule domain.Schedule) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(scheduleHeader); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}

	for _, rec := range schedule {
		row := []string{
			strconv.Itoa(rec.Period),
			Amount(rec.PaymentAmount),
			Amount(rec.PrincipalPortion),
			Amount(rec.InterestPortion),
			Amount(rec.RemainingBalance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write schedule row %d: %w", rec.Period, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the headline metrics of a calculation as Metric,Value rows.
func WriteSummaryCSV(w io.Writer, calc domain.Calculation) error {
	p := calc.Parameters
	s := calc.Summary

	rows := [][]string{
		{"Metric", "Value"},
		{"Loan Amount", Currency(p.Principal)},
		{"Interest Rate", formatRate(p.AnnualRatePercent) + "%"},
		{"Loan Term", fmt.Sprintf("%d years", p.TermYears)},
		{"Monthly Payment", Currency(s.MonthlyPayment)},
		{"Total Paid", Currency(s.TotalPaid)},
		{"Total Interest", Currency(s.TotalInterest)},
		{"Interest/Principal Ratio", fmt.Sprintf("%.1f%%", s.InterestToPrincipalPercent)},
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func ScheduleFilename(p domain.LoanParameters) string {
	return fmt.Sprintf("mortgage_schedule_%s_%s_%dy.csv", formatNumber(p.Principal), formatRate(p.AnnualRatePercent), p.TermYears)
}

func SummaryFilename(p domain.LoanParameters) string {
	return fmt.Sprintf("mortgage_summary_%s_%s_%dy.csv", formatNumber(p.Principal), formatRate(p.AnnualRatePercent), p.TermYears)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRate always keeps at least one decimal place: 6 becomes "6.0".
func formatRate(v float64) string {
	s := formatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
