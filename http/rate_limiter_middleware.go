package http

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
)

func RateLimitMiddleware(
	rl *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		lctx, err := rl.Allow(r.Context(), ip)
		if err != nil {
			LoggerFromContext(r.Context()).Error("Failed to get rate limit context",
				slog.String("ip", ip),
				slog.String("error", err.Error()),
			)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			LoggerFromContext(r.Context()).Warn("Rate limit exceeded",
				slog.String("ip", ip),
				slog.Int64("limit", lctx.Limit),
			)
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
