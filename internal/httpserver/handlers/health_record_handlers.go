package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ranchbook/internal/aggregate"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

// ListHealthRecords returns all records, optionally filtered to a single
// animal via ?livestockId=.
func ListHealthRecords(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			records []models.HealthRecord
			err     error
		)
		if q := r.URL.Query().Get("livestockId"); q != "" {
			livestockID, convErr := strconv.Atoi(q)
			if convErr != nil {
				respondError(w, http.StatusBadRequest, "Invalid livestockId", convErr)
				return
			}
			records, err = s.GetHealthRecordsByLivestock(r.Context(), livestockID)
		} else {
			records, err = s.GetAllHealthRecords(r.Context())
		}
		if err != nil {
			lg.Errorw("failed to fetch health records", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch health records", nil)
			return
		}
		respondJSON(w, records)
	}
}

func UpcomingHealthTasks(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.GetAllHealthRecords(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch upcoming health tasks", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch upcoming health tasks", nil)
			return
		}
		respondJSON(w, aggregate.UpcomingHealthTasks(records, time.Now()))
	}
}

type healthRecordCreateReq struct {
	LivestockID  int              `json:"livestockId"`
	RecordType   string           `json:"recordType"`
	Description  string           `json:"description"`
	Veterinarian *string          `json:"veterinarian"`
	Cost         *decimal.Decimal `json:"cost"`
	Date         *time.Time       `json:"date"`
	NextDueDate  *time.Time       `json:"nextDueDate"`
	Notes        *string          `json:"notes"`
}

func CreateHealthRecord(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req healthRecordCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if req.LivestockID == 0 {
			respondError(w, http.StatusBadRequest, "livestockId required", nil)
			return
		}
		if req.RecordType == "" {
			respondError(w, http.StatusBadRequest, "recordType required", nil)
			return
		}
		if req.Description == "" {
			respondError(w, http.StatusBadRequest, "description required", nil)
			return
		}
		if req.Date == nil {
			respondError(w, http.StatusBadRequest, "date required", nil)
			return
		}
		record, err := s.CreateHealthRecord(r.Context(), &models.HealthRecord{
			LivestockID:  req.LivestockID,
			RecordType:   req.RecordType,
			Description:  req.Description,
			Veterinarian: req.Veterinarian,
			Cost:         req.Cost,
			Date:         *req.Date,
			NextDueDate:  req.NextDueDate,
			Notes:        req.Notes,
		})
		if err != nil {
			lg.Errorw("failed to create health record", "error", err)
			respondStorageError(w, "Failed to create health record", err)
			return
		}
		respondJSON(w, record)
	}
}
