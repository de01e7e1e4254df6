package service

import (
	"testing"
	"time"

	"github.com/Soufianejami/coworkingcaisse/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransactionDelta_Add(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	stats := models.DailyStats{Date: day}

	entry := &models.Transaction{Type: models.TransactionTypeEntry, Amount: 25}
	stats = applyTransactionDelta(stats, entry, 1)
	assert.Equal(t, 25.0, stats.TotalRevenue)
	assert.Equal(t, 25.0, stats.EntriesRevenue)
	assert.Equal(t, 1, stats.EntriesCount)
	assert.Equal(t, 0, stats.CafeOrdersCount)

	cafe := &models.Transaction{Type: models.TransactionTypeCafe, Amount: 18}
	stats = applyTransactionDelta(stats, cafe, 1)
	assert.Equal(t, 43.0, stats.TotalRevenue)
	assert.Equal(t, 18.0, stats.CafeRevenue)
	assert.Equal(t, 1, stats.CafeOrdersCount)

	sub := &models.Transaction{Type: models.TransactionTypeSubscription, Amount: 300}
	stats = applyTransactionDelta(stats, sub, 1)
	assert.Equal(t, 343.0, stats.TotalRevenue)
	assert.Equal(t, 300.0, stats.SubscriptionsRevenue)
	assert.Equal(t, 1, stats.SubscriptionsCount)
}

func TestApplyTransactionDelta_RoundTrip(t *testing.T) {
	stats := models.DailyStats{
		TotalRevenue:   100,
		EntriesRevenue: 50,
		EntriesCount:   2,
		CafeRevenue:    50,
		CafeOrdersCount: 3,
	}
	baseline := stats

	entry := &models.Transaction{Type: models.TransactionTypeEntry, Amount: 25}
	stats = applyTransactionDelta(stats, entry, 1)
	stats = applyTransactionDelta(stats, entry, -1)

	assert.Equal(t, baseline, stats)
}

func TestApplyTransactionDelta_CountsClampAtZero(t *testing.T) {
	// Over-subtracting clamps the count at 0 but lets revenue go negative.
	stats := models.DailyStats{}
	entry := &models.Transaction{Type: models.TransactionTypeEntry, Amount: 25}

	stats = applyTransactionDelta(stats, entry, -1)
	assert.Equal(t, 0, stats.EntriesCount)
	assert.Equal(t, -25.0, stats.EntriesRevenue)
	assert.Equal(t, -25.0, stats.TotalRevenue)
}

func TestDayFloorAndCeil(t *testing.T) {
	ts := time.Date(2024, 1, 10, 15, 42, 7, 0, time.Local)

	floor := DayFloor(ts)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), floor)

	ceil := DayCeil(ts)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 0, time.Local), ceil)
}

func TestMonthRange(t *testing.T) {
	ts := time.Date(2024, 2, 14, 10, 0, 0, 0, time.Local)
	first, last := MonthRange(ts)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), last)
}

func TestGetDailyStats_StubWhenAbsent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	stats, err := GetDailyStats(db, time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, uint(0), stats.ID)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), stats.Date)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNetRevenue(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total_revenue\\), 0\\) FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1000.0))
	mock.ExpectQuery("SELECT category, COALESCE\\(SUM\\(amount\\), 0\\) as total FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("supplies", 200.0).
			AddRow("rent", 100.0))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)
	report, err := GetNetRevenue(db, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, report.TotalRevenue)
	assert.Equal(t, 300.0, report.TotalExpenses)
	assert.Equal(t, 700.0, report.NetRevenue)
	assert.Equal(t, map[string]float64{"supplies": 200, "rent": 100}, report.ExpenseBreakdown)
	require.NoError(t, mock.ExpectationsWereMet())
}
