package service

import (
	"errors"
	"time"

	"github.com/Soufianejami/coworkingcaisse/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyTransactionDelta returns the stats snapshot with the transaction's
// contribution applied. sign is +1 when the transaction is added and -1 when it
// is removed. Counts are clamped at 0 on over-subtraction; revenue is not.
func applyTransactionDelta(stats models.DailyStats, t *models.Transaction, sign int) models.DailyStats {
	amount := float64(sign) * t.Amount
	stats.TotalRevenue += amount
	switch t.Type {
	case models.TransactionTypeEntry:
		stats.EntriesRevenue += amount
		stats.EntriesCount = clampCount(stats.EntriesCount + sign)
	case models.TransactionTypeSubscription:
		stats.SubscriptionsRevenue += amount
		stats.SubscriptionsCount = clampCount(stats.SubscriptionsCount + sign)
	case models.TransactionTypeCafe:
		stats.CafeRevenue += amount
		stats.CafeOrdersCount = clampCount(stats.CafeOrdersCount + sign)
	}
	return stats
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// statsColumns lists the counter columns written back on every upsert. Updating
// via an explicit map keeps zero values and leaves unrelated columns untouched.
func statsColumns(s models.DailyStats) map[string]interface{} {
	return map[string]interface{}{
		"total_revenue":         s.TotalRevenue,
		"entries_revenue":       s.EntriesRevenue,
		"entries_count":         s.EntriesCount,
		"subscriptions_revenue": s.SubscriptionsRevenue,
		"subscriptions_count":   s.SubscriptionsCount,
		"cafe_revenue":          s.CafeRevenue,
		"cafe_orders_count":     s.CafeOrdersCount,
	}
}

// applyToDailyStats folds one transaction into the stats row for its day,
// creating the row when absent. Must run inside the caller's DB transaction:
// the row is read under a FOR UPDATE lock so concurrent writers to the same day
// serialize instead of losing updates. A lost create race (two writers both see
// no row, unique index rejects the second insert) falls back to the locked
// update path.
func applyToDailyStats(tx *gorm.DB, t *models.Transaction, sign int) error {
	day := DayFloor(t.Date)

	var stats models.DailyStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ?", day).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := applyTransactionDelta(models.DailyStats{Date: day}, t, sign)
		if createErr := tx.Create(&fresh).Error; createErr != nil {
			// Someone else inserted this day first; lock their row and retry.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("date = ?", day).First(&stats).Error; err != nil {
				return createErr
			}
			updated := applyTransactionDelta(stats, t, sign)
			return tx.Model(&stats).Updates(statsColumns(updated)).Error
		}
		return nil
	}
	if err != nil {
		return err
	}

	updated := applyTransactionDelta(stats, t, sign)
	return tx.Model(&stats).Updates(statsColumns(updated)).Error
}

// GetDailyStats returns the stats row for the given day, or a zeroed,
// non-persisted stub when no transaction has touched that day yet.
func GetDailyStats(db *gorm.DB, date time.Time) (*models.DailyStats, error) {
	day := DayFloor(date)
	var stats models.DailyStats
	err := db.Where("date = ?", day).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyStats{Date: day}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetStatsRange returns the stats rows with dates in [DayFloor(start),
// DayFloor(end)], ascending. Days without a row are absent, not zero-filled;
// callers treat absence as zero.
func GetStatsRange(db *gorm.DB, start, end time.Time) ([]models.DailyStats, error) {
	var rows []models.DailyStats
	err := db.Where("date >= ? AND date <= ?", DayFloor(start), DayFloor(end)).
		Order("date ASC").Find(&rows).Error
	return rows, err
}

// NetRevenueReport is the revenue-minus-expenses summary for a date range.
type NetRevenueReport struct {
	StartDate        string             `json:"startDate"`
	EndDate          string             `json:"endDate"`
	TotalRevenue     float64            `json:"totalRevenue"`
	TotalExpenses    float64            `json:"totalExpenses"`
	NetRevenue       float64            `json:"netRevenue"`
	ExpenseBreakdown map[string]float64 `json:"expenseBreakdown"`
}

// GetNetRevenue sums DailyStats.totalRevenue over the range and subtracts the
// expenses dated in the same range (inclusive of the full end day), with a
// per-category expense breakdown.
func GetNetRevenue(db *gorm.DB, start, end time.Time) (*NetRevenueReport, error) {
	var totalRevenue float64
	err := db.Model(&models.DailyStats{}).
		Select("COALESCE(SUM(total_revenue), 0)").
		Where("date >= ? AND date <= ?", DayFloor(start), DayFloor(end)).
		Scan(&totalRevenue).Error
	if err != nil {
		return nil, err
	}

	type categorySum struct {
		Category string
		Total    float64
	}
	var sums []categorySum
	err = db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Where("date >= ? AND date <= ?", DayFloor(start), DayCeil(end)).
		Group("category").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	report := &NetRevenueReport{
		StartDate:        DayFloor(start).Format("2006-01-02"),
		EndDate:          DayFloor(end).Format("2006-01-02"),
		TotalRevenue:     totalRevenue,
		ExpenseBreakdown: make(map[string]float64, len(sums)),
	}
	for _, s := range sums {
		report.ExpenseBreakdown[s.Category] = s.Total
		report.TotalExpenses += s.Total
	}
	report.NetRevenue = report.TotalRevenue - report.TotalExpenses
	return report, nil
}
