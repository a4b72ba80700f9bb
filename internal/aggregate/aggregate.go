// Package aggregate computes derived views over the raw entity
// collections. Everything here is pure: callers load the records and pass
// the clock in, so results are exact and testable.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ranchbook/internal/models"
)

type FinancialSummary struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
}

// Financial sums transaction amounts with decimal arithmetic. Amounts are
// non-negative magnitudes; the sign lives in the transaction type.
// MonthlyRevenue covers income dated within [first of current month, now].
func Financial(txns []models.Transaction, now time.Time) FinancialSummary {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	income := decimal.Zero
	expenses := decimal.Zero
	monthly := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(t.Amount)
			if !t.Date.Before(monthStart) && !t.Date.After(now) {
				monthly = monthly.Add(t.Amount)
			}
		case models.TransactionExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return FinancialSummary{
		TotalIncome:    income,
		TotalExpenses:  expenses,
		NetProfit:      income.Sub(expenses),
		MonthlyRevenue: monthly,
	}
}

type LivestockStats struct {
	Total      int `json:"total"`
	Healthy    int `json:"healthy"`
	Monitoring int `json:"monitoring"`
	Sick       int `json:"sick"`
}

// Livestock partitions animals by health status. Callers pass the active
// herd only; Total is its size.
func Livestock(animals []models.Livestock) LivestockStats {
	stats := LivestockStats{Total: len(animals)}
	for _, a := range animals {
		switch a.HealthStatus {
		case models.HealthHealthy:
			stats.Healthy++
		case models.HealthMonitoring:
			stats.Monitoring++
		case models.HealthSick:
			stats.Sick++
		}
	}
	return stats
}

// LowStock returns items with quantity at or below their minimum stock
// level. A missing minimum counts as zero, so an item at exactly zero with
// no configured minimum is flagged.
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	low := make([]models.InventoryItem, 0)
	for _, item := range items {
		min := decimal.Zero
		if item.MinStockLevel != nil {
			min = *item.MinStockLevel
		}
		if item.Quantity.LessThanOrEqual(min) {
			low = append(low, item)
		}
	}
	return low
}

// UpcomingHealthTasks returns records whose next due date falls within the
// inclusive [now, now+7d] window, ordered by due date ascending.
func UpcomingHealthTasks(records []models.HealthRecord, now time.Time) []models.HealthRecord {
	cutoff := now.Add(7 * 24 * time.Hour)
	upcoming := make([]models.HealthRecord, 0)
	for _, r := range records {
		if r.NextDueDate == nil {
			continue
		}
		due := *r.NextDueDate
		if !due.Before(now) && !due.After(cutoff) {
			upcoming = append(upcoming, r)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].NextDueDate.Before(*upcoming[j].NextDueDate)
	})
	return upcoming
}
