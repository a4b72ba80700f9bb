package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ranchbook/internal/aggregate"
	"ranchbook/internal/export"
	"ranchbook/internal/storage"
)

type inventorySummary struct {
	TotalItems    int `json:"totalItems"`
	LowStockCount int `json:"lowStockCount"`
}

// Reports serves /api/reports/{type}: a structured snapshot with a
// summary header, stamped with the formatter's wall clock.
func Reports(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportType := chi.URLParam(r, "type")
		ctx := r.Context()
		var report export.Report
		switch reportType {
		case "livestock":
			animals, err := s.GetAllLivestock(ctx)
			if err != nil {
				lg.Errorw("failed to build livestock report", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to build report", nil)
				return
			}
			report = export.NewReport(reportType, aggregate.Livestock(animals), animals)
		case "financial":
			txns, err := s.GetAllTransactions(ctx)
			if err != nil {
				lg.Errorw("failed to build financial report", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to build report", nil)
				return
			}
			report = export.NewReport(reportType, aggregate.Financial(txns, time.Now()), txns)
		case "inventory":
			items, err := s.GetAllInventory(ctx)
			if err != nil {
				lg.Errorw("failed to build inventory report", "error", err)
				respondError(w, http.StatusInternalServerError, "Failed to build report", nil)
				return
			}
			summary := inventorySummary{
				TotalItems:    len(items),
				LowStockCount: len(aggregate.LowStock(items)),
			}
			report = export.NewReport(reportType, summary, items)
		default:
			respondError(w, http.StatusBadRequest, "Unknown report type", nil)
			return
		}
		respondJSON(w, report)
	}
}
