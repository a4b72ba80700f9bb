package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ranchbook/internal/auth"
)

type loginReq struct {
	IDToken string `json:"id_token"`
}

// Login exchanges an identity broker id_token for a session token.
func Login(am *auth.Manager, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if req.IDToken == "" {
			respondError(w, http.StatusBadRequest, "id_token required", nil)
			return
		}
		token, user, err := am.Login(r.Context(), req.IDToken)
		if err != nil {
			lg.Infow("login rejected", "error", err)
			respondError(w, http.StatusUnauthorized, "Authentication failed", err)
			return
		}
		respondJSON(w, map[string]any{"token": token, "user": user})
	}
}

func Logout(am *auth.Manager, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := auth.JTIFromContext(r.Context())
		if err := am.Logout(r.Context(), jti); err != nil {
			lg.Errorw("failed to revoke session", "jti", jti, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to log out", nil)
			return
		}
		respondJSON(w, map[string]any{"message": "Logged out"})
	}
}

// CurrentUser returns the authenticated user's profile. The middleware
// already loaded it fresh from storage.
func CurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, auth.ActorFromContext(r.Context()))
	}
}
