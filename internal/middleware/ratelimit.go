package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"inkwell/internal/httputil"

	"golang.org/x/time/rate"
)

// GrammarRateLimit applies a process-wide token bucket to the grammar-check
// endpoint only. perHour is both the refill rate and the burst capacity, so
// a fresh limiter admits perHour immediate requests and then refills
// continuously. The limiter's internal state is mutex-guarded, so concurrent
// requests never lose or double-spend tokens.
//
// Allowed responses carry X-Rate-Limit-Remaining; rejected ones get a 429
// with X-Rate-Limit-Retry-After-Seconds and a retry_after body field.
func GrammarRateLimit(perHour int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(float64(perHour)/3600.0), perHour)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Preflights bypass the bucket
			if r.Method == http.MethodOptions || !strings.HasPrefix(r.URL.Path, "/api/grammar/check") {
				next.ServeHTTP(w, r)
				return
			}

			reservation := limiter.Reserve()
			if delay := reservation.Delay(); delay > 0 {
				// Not admissible now; hand the token back
				reservation.Cancel()
				retryAfter := int64(math.Ceil(delay.Seconds()))
				w.Header().Set("X-Rate-Limit-Retry-After-Seconds", fmt.Sprintf("%d", retryAfter))
				httputil.RespondErrorWithExtras(w, http.StatusTooManyRequests,
					"rate limit exceeded, try again later",
					map[string]interface{}{"retry_after": retryAfter},
				)
				return
			}

			w.Header().Set("X-Rate-Limit-Remaining", fmt.Sprintf("%d", int(limiter.Tokens())))
			next.ServeHTTP(w, r)
		})
	}
}
