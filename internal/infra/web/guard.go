package web

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"
	"account-pool-service/internal/infra/redis"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext returns the authenticated session claims, if any.
func ClaimsFromContext(ctx context.Context) (*UserClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*UserClaims)
	return c, ok
}

func TraceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := uuid.NewString()
			ctx := logging.WithTraceID(r.Context(), tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequestLog(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logging.With(r.Context(), logger)
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.ObserveHTTPRequest(route, r.Method, ww.status, time.Since(start))
			l.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("http_request")
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func Recover(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l := logging.With(r.Context(), logger)
					l.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")
					writeFail(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth verifies the bearer token and stores the claims in the
// request context.
func RequireAuth(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hdr := r.Header.Get("Authorization")
			if hdr == "" {
				writeFail(w, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
				return
			}
			parts := strings.SplitN(hdr, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeFail(w, http.StatusUnauthorized, "malformed authorization header", "UNAUTHORIZED")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logging.WithUserID(ctx, claims.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminKey gates administrative writes behind a shared API key in
// the x-api-key header.
func RequireAdminKey(apiKey string, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				logger.Error().Msg("admin API key is not configured")
				writeFail(w, http.StatusForbidden, "forbidden", "UNAUTHORIZED")
				return
			}
			if r.Header.Get("x-api-key") != apiKey {
				writeFail(w, http.StatusUnauthorized, "invalid API key", "UNAUTHORIZED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies a fixed-window counter per client address. With
// failOpen set, a limiter backend failure admits the request and logs a
// warning instead of rejecting it.
func RateLimit(limiter *redis.RateLimiter, scope string, max int, window time.Duration, failOpen bool, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := redis.ClientKey(clientAddr(r), scope)
			ok, err := limiter.Allow(r.Context(), key, max, window)
			if err != nil {
				if failOpen {
					l := logging.With(r.Context(), logger)
					l.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, failing open")
					next.ServeHTTP(w, r)
					return
				}
				writeFail(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
				return
			}
			if !ok {
				writeFail(w, http.StatusTooManyRequests, "too many requests", "RATE_LIMITED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
