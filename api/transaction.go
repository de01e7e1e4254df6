package api

import (
	"errors"
	"strconv"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/middleware"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves the transaction ledger.
type TransactionHandler struct{}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest is the create payload.
type CreateTransactionRequest struct {
	Type                string  `json:"type" binding:"required" example:"entry"`
	Amount              float64 `json:"amount" binding:"required,gte=0" example:"25"`
	PaymentMethod       string  `json:"paymentMethod" binding:"required" example:"cash"`
	Date                string  `json:"date" example:"2024-01-10"`
	ClientName          string  `json:"clientName" example:"Sara B."`
	Notes               string  `json:"notes"`
	SubscriptionEndDate string  `json:"subscriptionEndDate" example:"2024-02-10"`
}

// UpdateTransactionRequest is the patch payload. Only listed fields are
// mutable; absent fields stay unchanged; unknown fields are rejected.
type UpdateTransactionRequest struct {
	Type                *string  `json:"type"`
	Amount              *float64 `json:"amount"`
	PaymentMethod       *string  `json:"paymentMethod"`
	Date                *string  `json:"date"`
	ClientName          *string  `json:"clientName"`
	Notes               *string  `json:"notes"`
	SubscriptionEndDate *string  `json:"subscriptionEndDate"`
}

// TransactionListRequest is the list query.
type TransactionListRequest struct {
	Page          int    `form:"page" example:"1"`
	PageSize      int    `form:"pageSize" example:"10"`
	Type          string `form:"type" example:"cafe"`
	PaymentMethod string `form:"paymentMethod" example:"cash"`
	StartDate     string `form:"startDate" example:"2024-01-01"`
	EndDate       string `form:"endDate" example:"2024-12-31"`
}

// Create records a transaction and updates the day's stats.
// @Summary Create transaction
// @Description Records an entry fee, subscription sale or café order. A subscription without an explicit end date gets date + 1 month.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "transaction"
// @Success 201 {object} Response{data=models.Transaction}
// @Failure 400 {object} Response
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	txType := models.TransactionType(req.Type)
	if !txType.Valid() {
		BadRequest(c, "invalid transaction type, expected entry, subscription or cafe")
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		BadRequest(c, "invalid payment method, expected cash, card or mobile")
		return
	}

	t := models.Transaction{
		Type:          txType,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ClientName:    req.ClientName,
		Notes:         req.Notes,
		CreatedByID:   userID,
	}

	if req.Date != "" {
		date, err := parseDateTime(req.Date)
		if err != nil {
			BadRequest(c, "invalid date, expected 2006-01-02 or 2006-01-02 15:04:05")
			return
		}
		t.Date = date
	}

	if req.SubscriptionEndDate != "" {
		end, err := parseDateTime(req.SubscriptionEndDate)
		if err != nil {
			BadRequest(c, "invalid subscriptionEndDate, expected 2006-01-02")
			return
		}
		t.SubscriptionEndDate = &end
	}

	if err := service.CreateTransaction(database.DB, &t); err != nil {
		InternalError(c, SafeErrorMessage(err, "create transaction failed"))
		return
	}

	Created(c, t)
}

// List returns transactions with optional type/payment/date filters.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(10)
// @Param type query string false "transaction type filter"
// @Param paymentMethod query string false "payment method filter"
// @Param startDate query string false "start date (2024-01-01)"
// @Param endDate query string false "end date (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}}
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{})
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.PaymentMethod != "" {
		query = query.Where("payment_method = ?", req.PaymentMethod)
	}
	if req.StartDate != "" {
		if t, err := parseDate(req.StartDate); err == nil {
			query = query.Where("date >= ?", service.DayFloor(t))
		}
	}
	if req.EndDate != "" {
		if t, err := parseDate(req.EndDate); err == nil {
			query = query.Where("date <= ?", service.DayCeil(t))
		}
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC").Offset(offset).Limit(req.PageSize).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     transactions,
	})
}

// Get returns one transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var t models.Transaction
	if err := database.DB.First(&t, id).Error; err != nil {
		NotFound(c, "transaction not found")
		return
	}

	Success(c, t)
}

// Update patches a transaction and reconciles the daily stats.
// @Summary Update transaction
// @Description Patches the listed fields. When amount, date or type change, the original day's stats lose the old contribution and the new day's stats gain the new one.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Param request body UpdateTransactionRequest true "fields to change"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var req UpdateTransactionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	patch := service.TransactionPatch{
		ClientName: req.ClientName,
		Notes:      req.Notes,
	}

	if req.Type != nil {
		txType := models.TransactionType(*req.Type)
		if !txType.Valid() {
			BadRequest(c, "invalid transaction type, expected entry, subscription or cafe")
			return
		}
		patch.Type = &txType
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			BadRequest(c, "amount cannot be negative")
			return
		}
		patch.Amount = req.Amount
	}
	if req.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*req.PaymentMethod) {
			BadRequest(c, "invalid payment method, expected cash, card or mobile")
			return
		}
		patch.PaymentMethod = req.PaymentMethod
	}
	if req.Date != nil {
		date, err := parseDateTime(*req.Date)
		if err != nil {
			BadRequest(c, "invalid date, expected 2006-01-02 or 2006-01-02 15:04:05")
			return
		}
		patch.Date = &date
	}
	if req.SubscriptionEndDate != nil {
		end, err := parseDateTime(*req.SubscriptionEndDate)
		if err != nil {
			BadRequest(c, "invalid subscriptionEndDate, expected 2006-01-02")
			return
		}
		patch.SubscriptionEndDate = &end
	}

	updated, err := service.UpdateTransaction(database.DB, uint(id), patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "transaction not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "update transaction failed"))
		return
	}

	SuccessWithMessage(c, "updated", updated)
}

// Delete removes a transaction and subtracts its stats contribution.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	if err := service.DeleteTransaction(database.DB, uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "transaction not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "delete transaction failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
