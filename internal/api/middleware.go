package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/ratelimit"
)

// UserIDHeader carries the caller identity set by the authenticating proxy.
const UserIDHeader = "X-User-ID"

const rateLimitedMessage = "You are sending requests too quickly. Please wait a moment and try again."

type contextKey string

const userIDKey contextKey = "userID"

// RequireUser rejects requests without a user identity before any work is done.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			respondWithError(w, app_errors.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// UserIDFromContext returns the identity stored by RequireUser.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// RateLimit allows limit requests per window for each user on one feature.
// Over the limit it answers 429 with a Retry-After header in seconds.
func RateLimit(limiter *ratelimit.Limiter, feature string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserIDFromContext(r.Context())
			res := limiter.Check(feature+":"+userID, limit, window)
			if res.Limited {
				slog.Info("Rate limit exceeded.", "feature", feature, "user_id", userID, "retry_after", res.RetryAfterSeconds)
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
				respondWithError(w, fmt.Errorf("%s: %w", feature, app_errors.ErrRateLimited))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
