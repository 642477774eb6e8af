package http

import (
	"log/slog"
	"net/http"
)

// NewRouter registers the mortgage endpoints. Every route except the health
// check is rate limited.
func NewRouter(h *MortgageHandler, rl *RateLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(rl, fn)
	}

	mux.Handle("/mortgage/calculate", limited(h.CalculateMortgage))
	mux.Handle("/mortgage/schedule.csv", limited(h.DownloadSchedule))
	mux.Handle("/mortgage/summary.csv", limited(h.DownloadSummary))
	mux.Handle("/mortgage/history", limited(h.History))
	mux.HandleFunc("/healthz", Health)

	return LoggingMiddleware(logger, mux)
}
