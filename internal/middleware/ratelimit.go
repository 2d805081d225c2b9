package middleware

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/pkg/httpext"
	"github.com/changlade/intelligent-dashboard-demo/pkg/ratelimit"
)

// RateLimit rejects clients that exceed the limiter's budget, keyed by the
// client address.
func RateLimit(limiter *ratelimit.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !limiter.Allow(host) {
				log.Warn().Str("client", host).Str("path", r.URL.Path).Msg("Rate limit exceeded")
				httpext.JsonError(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
