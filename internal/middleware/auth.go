package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"matelog-backend/internal/session"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SessionAuth resolves the session cookie against the token store and
// attaches the owning user id to the request context.
type SessionAuth struct {
	store session.Store
}

func NewSessionAuth(store session.Store) *SessionAuth {
	return &SessionAuth{store: store}
}

// Require rejects requests without a valid session.
func (a *SessionAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Usuario no autenticado", r)
			return
		}

		userID, err := a.store.Get(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sesión inválida o expirada", r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional attaches the user id when a valid session is present and lets
// anonymous requests through untouched. Screen-activity tracking relies on
// this: anonymous callers get an inert success instead of a 401.
func (a *SessionAuth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		if token != "" {
			if userID, err := a.store.Get(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the user id from the request context. Returns uuid.Nil
// for anonymous requests.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
