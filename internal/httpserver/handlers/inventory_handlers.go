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

func ListInventory(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.GetAllInventory(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch inventory", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch inventory", nil)
			return
		}
		respondJSON(w, items)
	}
}

func LowStockItems(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.GetAllInventory(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch low stock items", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch low stock items", nil)
			return
		}
		respondJSON(w, aggregate.LowStock(items))
	}
}

type inventoryCreateReq struct {
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Quantity      *decimal.Decimal `json:"quantity"`
	Unit          string           `json:"unit"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
	CostPerUnit   *decimal.Decimal `json:"costPerUnit"`
	Supplier      *string          `json:"supplier"`
	LastRestocked *time.Time       `json:"lastRestocked"`
	ExpiryDate    *time.Time       `json:"expiryDate"`
	Location      *string          `json:"location"`
	Notes         *string          `json:"notes"`
}

func CreateInventoryItem(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inventoryCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if req.Name == "" {
			respondError(w, http.StatusBadRequest, "name required", nil)
			return
		}
		if req.Category == "" {
			respondError(w, http.StatusBadRequest, "category required", nil)
			return
		}
		if req.Quantity == nil {
			respondError(w, http.StatusBadRequest, "quantity required", nil)
			return
		}
		if req.Unit == "" {
			respondError(w, http.StatusBadRequest, "unit required", nil)
			return
		}
		item, err := s.CreateInventoryItem(r.Context(), &models.InventoryItem{
			Name:          req.Name,
			Category:      req.Category,
			Quantity:      *req.Quantity,
			Unit:          req.Unit,
			MinStockLevel: req.MinStockLevel,
			CostPerUnit:   req.CostPerUnit,
			Supplier:      req.Supplier,
			LastRestocked: req.LastRestocked,
			ExpiryDate:    req.ExpiryDate,
			Location:      req.Location,
			Notes:         req.Notes,
		})
		if err != nil {
			lg.Errorw("failed to create inventory item", "error", err)
			respondStorageError(w, "Failed to create inventory item", err)
			return
		}
		respondJSON(w, item)
	}
}

func UpdateInventoryItem(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid inventory id", err)
			return
		}
		var updates models.InventoryItemUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		item, err := s.UpdateInventoryItem(r.Context(), id, updates)
		if err != nil {
			lg.Errorw("failed to update inventory item", "id", id, "error", err)
			respondStorageError(w, "Failed to update inventory item", err)
			return
		}
		respondJSON(w, item)
	}
}

func DeleteInventoryItem(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid inventory id", err)
			return
		}
		if err := s.DeleteInventoryItem(r.Context(), id); err != nil {
			lg.Errorw("failed to delete inventory item", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to delete inventory item", nil)
			return
		}
		audit(r, s, lg, "inventory.delete", map[string]any{"id": id})
		respondJSON(w, map[string]any{"message": "Inventory item deleted successfully"})
	}
}
