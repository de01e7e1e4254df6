package api

import (
	"time"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
)

// DashboardSummary is the one-call overview for the admin dashboard.
type DashboardSummary struct {
	Today             *models.DailyStats `json:"today"`
	MonthRevenue      float64            `json:"monthRevenue"`
	MonthExpenses     float64            `json:"monthExpenses"`
	MonthNetRevenue   float64            `json:"monthNetRevenue"`
	LowStockItemCount int                `json:"lowStockItemCount"`
}

// Summary returns today's stats plus month-to-date totals and the low-stock
// count.
// @Summary Dashboard summary
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=DashboardSummary}
// @Router /api/v1/stats/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	now := time.Now()

	today, err := service.GetDailyStats(database.DB, now)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	start, end := service.MonthRange(now)
	report, err := service.GetNetRevenue(database.DB, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	lowStock, err := service.GetLowStockItems(database.DB)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, DashboardSummary{
		Today:             today,
		MonthRevenue:      report.TotalRevenue,
		MonthExpenses:     report.TotalExpenses,
		MonthNetRevenue:   report.NetRevenue,
		LowStockItemCount: len(lowStock),
	})
}
