package api

import (
	"time"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the materialized daily aggregates.
type StatsHandler struct{}

// NewStatsHandler creates a stats handler.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// Daily returns one day's stats, or a zeroed stub when the day has no row.
// @Summary Daily stats
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param date query string false "day (2024-01-10), defaults to today"
// @Success 200 {object} Response{data=models.DailyStats}
// @Failure 400 {object} Response
// @Router /api/v1/stats/daily [get]
func (h *StatsHandler) Daily(c *gin.Context) {
	date := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			BadRequest(c, "invalid date, expected 2006-01-02")
			return
		}
		date = parsed
	}

	stats, err := service.GetDailyStats(database.DB, date)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, stats)
}

// Range returns the stats rows in a date range, ascending. Days with no
// transactions are absent from the list.
// @Summary Stats range
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "start day (2024-01-01), defaults to start of current month"
// @Param endDate query string false "end day (2024-01-31), defaults to end of current month"
// @Success 200 {object} Response{data=[]models.DailyStats}
// @Failure 400 {object} Response
// @Router /api/v1/stats/range [get]
func (h *StatsHandler) Range(c *gin.Context) {
	start, end, ok := h.rangeParams(c)
	if !ok {
		return
	}

	rows, err := service.GetStatsRange(database.DB, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	if rows == nil {
		rows = []models.DailyStats{}
	}

	Success(c, rows)
}

// NetRevenue returns revenue minus expenses over a range with a per-category
// expense breakdown.
// @Summary Net revenue
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "start day (2024-01-01), defaults to start of current month"
// @Param endDate query string false "end day (2024-01-31), defaults to end of current month"
// @Success 200 {object} Response{data=service.NetRevenueReport}
// @Failure 400 {object} Response
// @Router /api/v1/stats/net-revenue [get]
func (h *StatsHandler) NetRevenue(c *gin.Context) {
	start, end, ok := h.rangeParams(c)
	if !ok {
		return
	}

	report, err := service.GetNetRevenue(database.DB, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, report)
}

// rangeParams parses startDate/endDate, defaulting to the current calendar
// month. Writes the 400 itself and returns ok=false on bad input.
func (h *StatsHandler) rangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, end := service.MonthRange(time.Now())

	if s := c.Query("startDate"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			BadRequest(c, "invalid startDate, expected 2006-01-02")
			return start, end, false
		}
		start = parsed
	}
	if s := c.Query("endDate"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			BadRequest(c, "invalid endDate, expected 2006-01-02")
			return start, end, false
		}
		end = parsed
	}

	return start, end, true
}
