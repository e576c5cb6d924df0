package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rvanleeuwen/investment-tracker/internal/api/response"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/session"
)

type contextKey string

// sessionContextKey carries the verified session claims through the request context.
const sessionContextKey contextKey = "session"

// Authenticator gates mutating routes on a valid session token with write
// capability. Read routes stay open: the viewer role scopes the UI, and
// the domain layer performs no role checks of its own.
type Authenticator struct {
	sessions *session.Manager
}

// NewAuthenticator creates an Authenticator backed by the given session manager.
func NewAuthenticator(sessions *session.Manager) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// RequireWriter verifies the bearer token and checks that the caller's role
// has the write capability per the role policy table.
// Missing or invalid tokens fail with 401; a valid token whose role cannot
// write fails with 403.
func (a *Authenticator) RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := a.sessions.Verify(token)
		if err != nil {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidSession.Error())
			return
		}

		if !model.RolePolicies[claims.Role].CanWrite {
			response.RespondError(w, http.StatusForbidden, apperrors.ErrForbidden.Error())
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the verified session claims, if any.
func SessionFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(session.Claims)
	return claims, ok
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
