package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ranchbook/internal/models"
)

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate resolves the bearer token to a live session and an active
// user, extends the rolling session window, and records activity. The
// user's role is always read from storage, never from token claims.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := verifySessionToken(m.sessionSecret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := r.Context()
		sess, err := m.store.GetSession(ctx, claims.JTI)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		now := time.Now()
		if sess.RevokedAt != nil || now.After(sess.ExpiresAt) {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		user, err := m.store.GetUser(ctx, sess.UserID)
		if err != nil || !user.IsActive {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		// Rolling TTL: an active session never expires, an idle one does.
		if err := m.store.TouchSession(ctx, claims.JTI, now.Add(m.ttl)); err != nil {
			m.lg.Warnw("failed to extend session", "jti", claims.JTI, "error", err)
		}
		// Liveness bookkeeping must never block the primary action.
		if err := m.store.TouchUserLastActive(ctx, user.ID); err != nil {
			m.lg.Warnw("failed to update last active time", "user_id", user.ID, "error", err)
		}
		next.ServeHTTP(w, r.WithContext(withActor(ctx, user, claims.JTI)))
	})
}

// RequireRole gates a route on an explicit set of roles. A missing actor
// is unauthorized; an actor outside the set is forbidden. The two are
// never conflated.
func (m *Manager) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if actor == nil {
				denyJSON(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !actor.Role.OneOf(roles...) {
				denyJSON(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
