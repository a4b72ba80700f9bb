package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ranchbook/internal/auth"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

// audit records a destructive or administrative action. Best effort: the
// primary action has already succeeded.
func audit(r *http.Request, s storage.Store, lg *zap.SugaredLogger, action string, metadata map[string]any) {
	var userID *string
	if actor := auth.ActorFromContext(r.Context()); actor != nil {
		userID = &actor.ID
	}
	meta, _ := json.Marshal(metadata)
	entry := &models.AuditLog{UserID: userID, Action: action, Metadata: meta}
	if err := s.AppendAuditLog(r.Context(), entry); err != nil {
		lg.Warnw("failed to append audit log", "action", action, "error", err)
	}
}

func ListAuditLogs(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := s.ListAuditLogs(r.Context(), 200)
		if err != nil {
			lg.Errorw("failed to fetch audit logs", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch audit logs", nil)
			return
		}
		respondJSON(w, logs)
	}
}
