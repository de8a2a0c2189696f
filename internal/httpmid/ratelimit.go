// Package httpmid holds HTTP middleware that is not tied to
// observability.
package httpmid

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit applies a shared token bucket to every request and answers
// 429 once the bucket is exhausted.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
