package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ranchbook/internal/auth"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

func ListPartners(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.GetAllUsers(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch partners", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch partners", nil)
			return
		}
		respondJSON(w, users)
	}
}

// UpdateUserRole is owner-only. Actors can never change their own role.
func UpdateUserRole(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		actor := auth.ActorFromContext(r.Context())
		if actor != nil && actor.ID == id {
			respondError(w, http.StatusForbidden, "You cannot change your own role", nil)
			return
		}
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		role, err := models.ParseRole(req.Role)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid role", err)
			return
		}
		user, err := s.UpdateUserRole(r.Context(), id, role)
		if err != nil {
			lg.Errorw("failed to update user role", "id", id, "error", err)
			respondStorageError(w, "Failed to update user role", err)
			return
		}
		audit(r, s, lg, "user.role_change", map[string]any{"target": id, "role": role})
		respondJSON(w, user)
	}
}

// DeactivateUser is owner-only and soft: the user disappears from login
// but the record stays. Actors can never deactivate themselves.
func DeactivateUser(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		actor := auth.ActorFromContext(r.Context())
		if actor != nil && actor.ID == id {
			respondError(w, http.StatusForbidden, "You cannot deactivate your own account", nil)
			return
		}
		if err := s.DeactivateUser(r.Context(), id); err != nil {
			lg.Errorw("failed to deactivate user", "id", id, "error", err)
			respondStorageError(w, "Failed to deactivate user", err)
			return
		}
		audit(r, s, lg, "user.deactivate", map[string]any{"target": id})
		respondJSON(w, map[string]any{"message": "User deactivated successfully"})
	}
}
