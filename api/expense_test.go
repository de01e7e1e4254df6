package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExpenseHandler()
	router.POST("/expenses", h.Create)
	router.GET("/expenses", h.List)
	router.GET("/expenses/categories", h.GetCategories)
	router.PUT("/expenses/:id", h.Update)
	router.DELETE("/expenses/:id", h.Delete)
	return router
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := newExpenseRouter()
	body := `{"amount":300,"category":"rent","paymentMethod":"card","description":"January rent","date":"2024-01-05"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "rent", data["category"])
	assert.Equal(t, 300.0, data["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_InvalidCategory(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newExpenseRouter()
	body := `{"amount":50,"category":"snacks","paymentMethod":"cash"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "category")
}

func TestExpenseHandler_List_FiltersByCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "amount", "category", "date", "payment_method",
			"created_at", "updated_at", "deleted_at",
		}).AddRow(1, 120.0, "supplies", now, "cash", now, now, nil))

	router := newExpenseRouter()
	req := httptest.NewRequest("GET", "/expenses?category=supplies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_GetCategories(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newExpenseRouter()
	req := httptest.NewRequest("GET", "/expenses/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	assert.Contains(t, list, "supplies")
	assert.Contains(t, list, "rent")
	assert.Len(t, list, 6)
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newExpenseRouter()
	req := httptest.NewRequest("DELETE", "/expenses/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
