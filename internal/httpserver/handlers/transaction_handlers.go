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

func ListTransactions(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := s.GetAllTransactions(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch transactions", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch transactions", nil)
			return
		}
		respondJSON(w, txns)
	}
}

func FinancialSummary(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := s.GetAllTransactions(r.Context())
		if err != nil {
			lg.Errorw("failed to fetch financial summary", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch financial summary", nil)
			return
		}
		respondJSON(w, aggregate.Financial(txns, time.Now()))
	}
}

type transactionCreateReq struct {
	Type        string           `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	PartnerID   *string          `json:"partnerId"`
	LivestockID *int             `json:"livestockId"`
	ReceiptURL  *string          `json:"receiptUrl"`
	Notes       *string          `json:"notes"`
}

func CreateTransaction(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		txnType, err := models.ParseTransactionType(req.Type)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid transaction type", err)
			return
		}
		if req.Category == "" {
			respondError(w, http.StatusBadRequest, "category required", nil)
			return
		}
		if req.Description == "" {
			respondError(w, http.StatusBadRequest, "description required", nil)
			return
		}
		if req.Amount == nil {
			respondError(w, http.StatusBadRequest, "amount required", nil)
			return
		}
		if req.Amount.IsNegative() {
			respondError(w, http.StatusBadRequest, "amount must be a non-negative magnitude", nil)
			return
		}
		if req.Date == nil {
			respondError(w, http.StatusBadRequest, "date required", nil)
			return
		}
		txn, err := s.CreateTransaction(r.Context(), &models.Transaction{
			Type:        txnType,
			Category:    req.Category,
			Description: req.Description,
			Amount:      *req.Amount,
			Date:        *req.Date,
			PartnerID:   req.PartnerID,
			LivestockID: req.LivestockID,
			ReceiptURL:  req.ReceiptURL,
			Notes:       req.Notes,
		})
		if err != nil {
			lg.Errorw("failed to create transaction", "error", err)
			respondStorageError(w, "Failed to create transaction", err)
			return
		}
		respondJSON(w, txn)
	}
}

func UpdateTransaction(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid transaction id", err)
			return
		}
		var updates models.TransactionUpdate
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if updates.Amount.Set && (!updates.Amount.Valid || updates.Amount.Value.IsNegative()) {
			respondError(w, http.StatusBadRequest, "amount must be a non-negative magnitude", nil)
			return
		}
		txn, err := s.UpdateTransaction(r.Context(), id, updates)
		if err != nil {
			lg.Errorw("failed to update transaction", "id", id, "error", err)
			respondStorageError(w, "Failed to update transaction", err)
			return
		}
		respondJSON(w, txn)
	}
}

func DeleteTransaction(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid transaction id", err)
			return
		}
		if err := s.DeleteTransaction(r.Context(), id); err != nil {
			lg.Errorw("failed to delete transaction", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to delete transaction", nil)
			return
		}
		audit(r, s, lg, "transaction.delete", map[string]any{"id": id})
		respondJSON(w, map[string]any{"message": "Transaction deleted successfully"})
	}
}
