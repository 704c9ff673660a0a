package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/austral-erp/procurement-api/internal/config"
)

// RateLimit returns an IP-based rate limiting middleware. Disabled limits
// pass every request through.
func RateLimit(cfg *config.RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 120
	}

	return httprate.Limit(
		limit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too Many Requests","message":"rate limit exceeded","code":429}`))
		}),
	)
}
