package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"mortgage-calculator/domain"
	"mortgage-calculator/export"
	"mortgage-calculator/service"
)

const maxRequestBody = 1 << 16

type MortgageHandler struct {
	service  *service.MortgageService
	validate *validator.Validate
}

func NewMortgageHandler(service *service.MortgageService) *MortgageHandler {
	return &MortgageHandler{
		service:  service,
		validate: newValidator(),
	}
}

// CalculateMortgage handles POST /mortgage/calculate.
func (h *MortgageHandler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	logger := LoggerFromContext(r.Context())

	var req CalculateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		logger.Warn("Error decoding request body", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	calc, ok := h.calculate(w, r, req)
	if !ok {
		return
	}

	view := domain.ScheduleView(req.View)
	if view == "" {
		view = domain.ViewFull
	}
	rows, err := service.SelectView(calc.Schedule, view)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toCalculateResponse(calc, view, rows))
}

// DownloadSchedule handles GET /mortgage/schedule.csv.
func (h *MortgageHandler) DownloadSchedule(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, export.ScheduleFilename, func(buf *bytes.Buffer, calc domain.Calculation) error {
		return export.WriteScheduleCSV(buf, calc.Schedule)
	})
}

// DownloadSummary handles GET /mortgage/summary.csv.
func (h *MortgageHandler) DownloadSummary(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, export.SummaryFilename, func(buf *bytes.Buffer, calc domain.Calculation) error {
		return export.WriteSummaryCSV(buf, calc)
	})
}

func (h *MortgageHandler) download(
	w http.ResponseWriter,
	r *http.Request,
	filename func(domain.LoanParameters) string,
	render func(*bytes.Buffer, domain.Calculation) error,
) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	calc, ok := h.calculate(w, r, req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, calc); err != nil {
		LoggerFromContext(r.Context()).Error("Error rendering csv", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(calc.Parameters)))
	if _, err := buf.WriteTo(w); err != nil {
		LoggerFromContext(r.Context()).Warn("Error writing csv", slog.String("error", err.Error()))
	}
}

// calculate validates req and runs the service, writing the error response on failure.
func (h *MortgageHandler) calculate(w http.ResponseWriter, r *http.Request, req CalculateRequest) (domain.Calculation, bool) {
	logger := LoggerFromContext(r.Context())

	if err := h.validate.Struct(req); err != nil {
		msg := describeValidation(err)
		logger.Warn("Validation error", slog.String("error", msg))
		writeError(w, r, http.StatusBadRequest, msg)
		return domain.Calculation{}, false
	}

	calc, err := h.service.Calculate(r.Context(), req.Parameters())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParameter) {
			logger.Warn("Invalid loan parameters", slog.String("error", err.Error()))
			writeError(w, r, http.StatusBadRequest, err.Error())
		} else {
			logger.Error("Error calculating mortgage", slog.String("error", err.Error()))
			writeError(w, r, http.StatusInternalServerError, "failed to calculate mortgage")
		}
		return domain.Calculation{}, false
	}
	return calc, true
}

// History handles GET /mortgage/history.
func (h *MortgageHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		LoggerFromContext(r.Context()).Error("Error listing history", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "failed to list calculations")
		return
	}

	items := make([]HistoryItemResponse, len(records))
	for i, rec := range records {
		items[i] = HistoryItemResponse{
			ID:         rec.ID,
			Parameters: rec.Parameters,
			Summary:    toSummaryResponse(rec.Summary),
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, r, http.StatusOK, items)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
