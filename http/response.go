package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"mortgage-calculator/domain"
	"mortgage-calculator/export"
)

type PaymentRecordResponse struct {
	Period           int             `json:"period"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

type SummaryResponse struct {
	MonthlyPayment             decimal.Decimal `json:"monthly_payment"`
	NumPayments                int             `json:"num_payments"`
	TotalPaid                  decimal.Decimal `json:"total_paid"`
	TotalInterest              decimal.Decimal `json:"total_interest"`
	InterestToPrincipalPercent decimal.Decimal `json:"interest_to_principal_percent"`
}

type CalculateResponse struct {
	Parameters domain.LoanParameters   `json:"parameters"`
	Summary    SummaryResponse         `json:"summary"`
	View       domain.ScheduleView     `json:"view"`
	Schedule   []PaymentRecordResponse `json:"schedule"`
}

type HistoryItemResponse struct {
	ID         int64                 `json:"id"`
	Parameters domain.LoanParameters `json:"parameters"`
	Summary    SummaryResponse       `json:"summary"`
	CreatedAt  string                `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		MonthlyPayment:             export.Cents(s.MonthlyPayment),
		NumPayments:                s.NumPayments,
		TotalPaid:                  export.Cents(s.TotalPaid),
		TotalInterest:              export.Cents(s.TotalInterest),
		InterestToPrincipalPercent: decimal.NewFromFloat(s.InterestToPrincipalPercent).Round(1),
	}
}

func toCalculateResponse(calc domain.Calculation, view domain.ScheduleView, rows domain.Schedule) CalculateResponse {
	schedule := make([]PaymentRecordResponse, len(rows))
	for i, rec := range rows {
		schedule[i] = PaymentRecordResponse{
			Period:           rec.Period,
			PaymentAmount:    export.Cents(rec.PaymentAmount),
			PrincipalPortion: export.Cents(rec.PrincipalPortion),
			InterestPortion:  export.Cents(rec.InterestPortion),
			RemainingBalance: export.Cents(rec.RemainingBalance),
		}
	}
	return CalculateResponse{
		Parameters: calc.Parameters,
		Summary:    toSummaryResponse(calc.Summary),
		View:       view,
		Schedule:   schedule,
	}
}

// writeJSON encodes into a buffer first so a failed encode never sends a partial 200.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		LoggerFromContext(r.Context()).Error("Error encoding response", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		LoggerFromContext(r.Context()).Warn("Error writing response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}
