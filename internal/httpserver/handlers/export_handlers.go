package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ranchbook/internal/aggregate"
	"ranchbook/internal/export"
	"ranchbook/internal/storage"
)

// ExportCSV serves /api/export/csv/{type} for livestock, transactions and
// inventory as an attachment download.
func ExportCSV(s storage.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exportType := chi.URLParam(r, "type")
		var (
			records []export.Record
			err     error
		)
		switch exportType {
		case "livestock":
			records, err = livestockRecords(r, s)
		case "transactions":
			records, err = transactionRecords(r, s)
		case "inventory":
			records, err = inventoryRecords(r, s)
		default:
			respondError(w, http.StatusBadRequest, "Unknown export type", nil)
			return
		}
		if err != nil {
			lg.Errorw("failed to load export data", "type", exportType, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to export data", nil)
			return
		}
		csv, err := export.ToCSV(records)
		switch {
		case errors.Is(err, export.ErrNoData):
			respondError(w, http.StatusNotFound, "No data to export", nil)
			return
		case errors.Is(err, export.ErrNotHomogeneous):
			respondError(w, http.StatusBadRequest, "Malformed export", err)
			return
		case err != nil:
			lg.Errorw("failed to render csv", "type", exportType, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to export data", nil)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_export.csv", exportType))
		_, _ = w.Write([]byte(csv))
	}
}

func livestockRecords(r *http.Request, s storage.Store) ([]export.Record, error) {
	animals, err := s.GetAllLivestock(r.Context())
	if err != nil {
		return nil, err
	}
	records := make([]export.Record, 0, len(animals))
	for _, a := range animals {
		records = append(records, export.Record{
			{Name: "id", Value: a.ID},
			{Name: "tagId", Value: a.TagID},
			{Name: "breed", Value: a.Breed},
			{Name: "gender", Value: string(a.Gender)},
			{Name: "birthDate", Value: timeCell(a.BirthDate)},
			{Name: "age", Value: aggregate.Age(a.BirthDate, time.Now())},
			{Name: "weight", Value: decimalCell(a.Weight)},
			{Name: "healthStatus", Value: string(a.HealthStatus)},
			{Name: "location", Value: stringCell(a.Location)},
			{Name: "purchasePrice", Value: decimalCell(a.PurchasePrice)},
			{Name: "purchaseDate", Value: timeCell(a.PurchaseDate)},
			{Name: "notes", Value: stringCell(a.Notes)},
		})
	}
	return records, nil
}

func transactionRecords(r *http.Request, s storage.Store) ([]export.Record, error) {
	txns, err := s.GetAllTransactions(r.Context())
	if err != nil {
		return nil, err
	}
	records := make([]export.Record, 0, len(txns))
	for _, t := range txns {
		records = append(records, export.Record{
			{Name: "id", Value: t.ID},
			{Name: "type", Value: string(t.Type)},
			{Name: "category", Value: t.Category},
			{Name: "description", Value: t.Description},
			{Name: "amount", Value: t.Amount},
			{Name: "date", Value: t.Date},
			{Name: "partnerId", Value: stringCell(t.PartnerID)},
			{Name: "livestockId", Value: intCell(t.LivestockID)},
			{Name: "notes", Value: stringCell(t.Notes)},
		})
	}
	return records, nil
}

func inventoryRecords(r *http.Request, s storage.Store) ([]export.Record, error) {
	items, err := s.GetAllInventory(r.Context())
	if err != nil {
		return nil, err
	}
	records := make([]export.Record, 0, len(items))
	for _, i := range items {
		records = append(records, export.Record{
			{Name: "id", Value: i.ID},
			{Name: "name", Value: i.Name},
			{Name: "category", Value: i.Category},
			{Name: "quantity", Value: i.Quantity},
			{Name: "unit", Value: i.Unit},
			{Name: "minStockLevel", Value: decimalCell(i.MinStockLevel)},
			{Name: "costPerUnit", Value: decimalCell(i.CostPerUnit)},
			{Name: "supplier", Value: stringCell(i.Supplier)},
			{Name: "location", Value: stringCell(i.Location)},
			{Name: "notes", Value: stringCell(i.Notes)},
		})
	}
	return records, nil
}

func stringCell(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func decimalCell(p *decimal.Decimal) any {
	if p == nil {
		return nil
	}
	return *p
}

func timeCell(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func intCell(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
