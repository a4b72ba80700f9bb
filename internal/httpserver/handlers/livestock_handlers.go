package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ranchbook/internal/aggregate"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

func ListLivestock(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animals, err := s.GetAllLivestock(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch livestock", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch livestock", nil)
			return
		}
		respondJSON(w, animals)
	}
}

func LivestockStats(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animals, err := s.GetAllLivestock(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch livestock stats", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch livestock stats", nil)
			return
		}
		respondJSON(w, aggregate.Livestock(animals))
	}
}

type livestockCreateReq struct {
	TagID         string           `json:"tagId"`
	Breed         string           `json:"breed"`
	Gender        string           `json:"gender"`
	BirthDate     *time.Time       `json:"birthDate"`
	Weight        *decimal.Decimal `json:"weight"`
	HealthStatus  string           `json:"healthStatus"`
	Location      *string          `json:"location"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  *time.Time       `json:"purchaseDate"`
	Notes         *string          `json:"notes"`
}

func CreateLivestock(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req livestockCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if req.TagID == "" {
			respondError(w, http.StatusBadRequest, "tagId required", nil)
			return
		}
		if req.Breed == "" {
			respondError(w, http.StatusBadRequest, "breed required", nil)
			return
		}
		gender, err := models.ParseGender(req.Gender)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid gender", err)
			return
		}
		status := models.HealthHealthy
		if req.HealthStatus != "" {
			status, err = models.ParseHealthStatus(req.HealthStatus)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid health status", err)
				return
			}
		}
		animal, err := s.CreateLivestock(r.Context(), &models.Livestock{
			TagID:         req.TagID,
			Breed:         req.Breed,
			Gender:        gender,
			BirthDate:     req.BirthDate,
			Weight:        req.Weight,
			HealthStatus:  status,
			Location:      req.Location,
			PurchasePrice: req.PurchasePrice,
			PurchaseDate:  req.PurchaseDate,
			Notes:         req.Notes,
		})
		if err != nil {
			lg.Errorw("failed to create livestock", "tag_id", req.TagID, "error", err)
			respondStorageError(w, "Failed to create livestock", err)
			return
		}
		respondJSON(w, animal)
	}
}

func UpdateLivestock(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid livestock id", err)
			return
		}
		var updates models.LivestockUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if updates.TagID.Set && (!updates.TagID.Valid || updates.TagID.Value == "") {
			respondError(w, http.StatusBadRequest, "tagId cannot be cleared", nil)
			return
		}
		animal, err := s.UpdateLivestock(r.Context(), id, updates)
		if err != nil {
			lg.Errorw("failed to update livestock", "id", id, "error", err)
			respondStorageError(w, "Failed to update livestock", err)
			return
		}
		respondJSON(w, animal)
	}
}

func DeleteLivestock(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid livestock id", err)
			return
		}
		if err := s.DeleteLivestock(r.Context(), id); err != nil {
			lg.Errorw("failed to delete livestock", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to delete livestock", nil)
			return
		}
		audit(r, s, lg, "livestock.delete", map[string]any{"id": id})
		respondJSON(w, map[string]any{"message": "Livestock deleted successfully"})
	}
}
