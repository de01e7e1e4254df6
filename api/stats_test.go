package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewStatsHandler()
	router.GET("/stats/daily", h.Daily)
	router.GET("/stats/range", h.Range)
	router.GET("/stats/net-revenue", h.NetRevenue)
	router.GET("/stats/summary", h.Summary)
	return router
}

func TestStatsHandler_Daily_StubWhenAbsent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newStatsRouter()
	req := httptest.NewRequest("GET", "/stats/daily?date=2024-03-15", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["id"])
	assert.Equal(t, float64(0), data["totalRevenue"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_Daily_BadDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newStatsRouter()
	req := httptest.NewRequest("GET", "/stats/daily?date=yesterday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestStatsHandler_Range_EmptyList(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newStatsRouter()
	req := httptest.NewRequest("GET", "/stats/range?startDate=2024-01-01&endDate=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list, ok := resp["data"].([]interface{})
	require.True(t, ok, "data should be a list, not null")
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_Range_Ascending(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "total_revenue"}).
			AddRow(1, d1, 120.0).
			AddRow(2, d2, 80.0))

	router := newStatsRouter()
	req := httptest.NewRequest("GET", "/stats/range?startDate=2024-01-01&endDate=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, 120.0, first["totalRevenue"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsHandler_NetRevenue(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total_revenue\\), 0\\) FROM `daily_stats`").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1000.0))
	mock.ExpectQuery("SELECT category, COALESCE\\(SUM\\(amount\\), 0\\) .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("supplies", 200.0).
			AddRow("rent", 100.0))

	router := newStatsRouter()
	req := httptest.NewRequest("GET", "/stats/net-revenue?startDate=2024-01-01&endDate=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 1000.0, data["totalRevenue"])
	assert.Equal(t, 300.0, data["totalExpenses"])
	assert.Equal(t, 700.0, data["netRevenue"])
	breakdown := data["expenseBreakdown"].(map[string]interface{})
	assert.Equal(t, 200.0, breakdown["supplies"])
	require.NoError(t, mock.ExpectationsWereMet())
}
