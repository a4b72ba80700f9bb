package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranchbook/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func txn(txnType models.TransactionType, amount string, date time.Time) models.Transaction {
	return models.Transaction{Type: txnType, Amount: dec(amount), Date: date}
}

func TestFinancialSummaryExactDecimals(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	// Three 0.10 incomes against a 0.30 expense must net to exactly zero;
	// binary floats would drift here.
	txns := []models.Transaction{
		txn(models.TransactionIncome, "0.10", now),
		txn(models.TransactionIncome, "0.10", now),
		txn(models.TransactionIncome, "0.10", now),
		txn(models.TransactionExpense, "0.30", now),
	}
	sum := Financial(txns, now)
	assert.True(t, sum.TotalIncome.Equal(dec("0.30")), "totalIncome = %s", sum.TotalIncome)
	assert.True(t, sum.TotalExpenses.Equal(dec("0.30")), "totalExpenses = %s", sum.TotalExpenses)
	assert.True(t, sum.NetProfit.IsZero(), "netProfit = %s", sum.NetProfit)
}

func TestFinancialSummaryNetProfitIdentity(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		txn(models.TransactionIncome, "12500.00", now.AddDate(0, -2, 0)),
		txn(models.TransactionIncome, "500.00", now),
		txn(models.TransactionExpense, "3200.00", now),
		txn(models.TransactionExpense, "850.55", now.AddDate(0, -1, 0)),
	}
	sum := Financial(txns, now)
	require.True(t, sum.NetProfit.Equal(sum.TotalIncome.Sub(sum.TotalExpenses)))
	assert.False(t, sum.TotalIncome.IsNegative())
	assert.False(t, sum.TotalExpenses.IsNegative())
}

func TestMonthlyRevenueIsCurrentMonthIncomeOnly(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		txn(models.TransactionIncome, "500.00", now.AddDate(0, 0, -1)),  // this month
		txn(models.TransactionIncome, "200.00", now.AddDate(0, -1, 0)),  // last month
		txn(models.TransactionExpense, "100.00", now),                   // expense never counts
		txn(models.TransactionIncome, "50.00", now.AddDate(0, 0, 1)),    // future, outside [monthStart, now]
	}
	sum := Financial(txns, now)
	assert.True(t, sum.MonthlyRevenue.Equal(dec("500.00")), "monthlyRevenue = %s", sum.MonthlyRevenue)
	assert.True(t, sum.TotalIncome.Equal(dec("750.00")), "totalIncome = %s", sum.TotalIncome)
	// Monthly revenue is a subset-sum of total income.
	assert.True(t, sum.MonthlyRevenue.LessThanOrEqual(sum.TotalIncome))
}

func TestFinancialSummaryEmptySet(t *testing.T) {
	sum := Financial(nil, time.Now())
	assert.True(t, sum.TotalIncome.IsZero())
	assert.True(t, sum.TotalExpenses.IsZero())
	assert.True(t, sum.NetProfit.IsZero())
	assert.True(t, sum.MonthlyRevenue.IsZero())
}

func TestLivestockStatsPartition(t *testing.T) {
	animals := []models.Livestock{
		{HealthStatus: models.HealthHealthy},
		{HealthStatus: models.HealthHealthy},
		{HealthStatus: models.HealthMonitoring},
		{HealthStatus: models.HealthSick},
	}
	stats := Livestock(animals)
	assert.Equal(t, LivestockStats{Total: 4, Healthy: 2, Monitoring: 1, Sick: 1}, stats)
}

func TestLowStockBoundary(t *testing.T) {
	items := []models.InventoryItem{
		{ID: 1, Quantity: dec("10"), MinStockLevel: decPtr("10")}, // equal counts as low
		{ID: 2, Quantity: dec("11"), MinStockLevel: decPtr("10")}, // above minimum
		{ID: 3, Quantity: dec("0")},                               // no minimum: 0 <= 0 flags
		{ID: 4, Quantity: dec("5")},                               // no minimum: 5 > 0 does not
	}
	low := LowStock(items)
	require.Len(t, low, 2)
	assert.Equal(t, 1, low[0].ID)
	assert.Equal(t, 3, low[1].ID)

	// No matches still yields an empty slice, never nil.
	none := LowStock([]models.InventoryItem{{ID: 5, Quantity: dec("20"), MinStockLevel: decPtr("10")}})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpcomingHealthTasksWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	due := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	records := []models.HealthRecord{
		{ID: 1, NextDueDate: due(6 * 24 * time.Hour)},
		{ID: 2, NextDueDate: due(time.Hour)},
		{ID: 3, NextDueDate: due(8 * 24 * time.Hour)}, // beyond the window
		{ID: 4, NextDueDate: due(-time.Hour)},         // already past
		{ID: 5},                                       // no due date
		{ID: 6, NextDueDate: due(7 * 24 * time.Hour)}, // boundary is inclusive
	}
	upcoming := UpcomingHealthTasks(records, now)
	require.Len(t, upcoming, 3)
	// Ascending by due date.
	assert.Equal(t, 2, upcoming[0].ID)
	assert.Equal(t, 1, upcoming[1].ID)
	assert.Equal(t, 6, upcoming[2].ID)

	none := UpcomingHealthTasks(nil, now)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	birth := func(days int) *time.Time {
		t := now.AddDate(0, 0, -days)
		return &t
	}
	tests := []struct {
		name  string
		birth *time.Time
		want  string
	}{
		{"unknown", nil, "Unknown"},
		{"newborn", birth(0), "0 days"},
		{"one day", birth(1), "1 days"},
		{"under a month", birth(10), "10 days"},
		{"whole months", birth(45), "1 month"},
		{"many months", birth(200), "6 months"},
		{"exact year", birth(365), "1 year"},
		{"years and months", birth(800), "2y 2m"},
		{"years only", birth(740), "2 years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.birth, now))
		})
	}
}
