package middleware

import (
	"context"
	"net/http"

	"github.com/pickuphub/server/internal/api/apierror"
	"github.com/pickuphub/server/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// RequireUser validates the bearer token and puts the authenticated user id
// in the request context. Missing or invalid tokens fail the request with
// 401.
func RequireUser(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				apierror.Write(w, r, http.StatusUnauthorized, "no token provided", err)
				return
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				apierror.Write(w, r, http.StatusUnauthorized, "invalid token", err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser attaches the user id when a valid bearer token is present
// and otherwise passes the request through untouched. Used by the event
// listing, where an invalid token degrades to no user context instead of
// failing.
func OptionalUser(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// ContextWithUserID sets the user id on a context (exported for testing).
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
