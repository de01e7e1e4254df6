package api

import (
	"strconv"
	"time"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/middleware"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense ledger.
type ExpenseHandler struct{}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest is the create payload.
type CreateExpenseRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0" example:"300"`
	Category      string  `json:"category" binding:"required" example:"rent"`
	Date          string  `json:"date" example:"2024-01-05"`
	Description   string  `json:"description" example:"January rent"`
	PaymentMethod string  `json:"paymentMethod" binding:"required" example:"card"`
}

// UpdateExpenseRequest is the patch payload; absent fields stay unchanged.
type UpdateExpenseRequest struct {
	Amount        *float64 `json:"amount"`
	Category      *string  `json:"category"`
	Date          *string  `json:"date"`
	Description   *string  `json:"description"`
	PaymentMethod *string  `json:"paymentMethod"`
}

// ExpenseListRequest is the list query.
type ExpenseListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"pageSize" example:"10"`
	Category  string `form:"category" example:"supplies"`
	StartDate string `form:"startDate" example:"2024-01-01"`
	EndDate   string `form:"endDate" example:"2024-12-31"`
}

// Create records an expense.
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense"
// @Success 201 {object} Response{data=models.Expense}
// @Failure 400 {object} Response
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	category := models.ExpenseCategory(req.Category)
	if !category.Valid() {
		BadRequest(c, "invalid expense category")
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		BadRequest(c, "invalid payment method, expected cash, card or mobile")
		return
	}

	expense := models.Expense{
		Amount:        req.Amount,
		Category:      category,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		CreatedByID:   userID,
	}

	if req.Date != "" {
		date, err := parseDateTime(req.Date)
		if err != nil {
			BadRequest(c, "invalid date, expected 2006-01-02")
			return
		}
		expense.Date = date
	} else {
		expense.Date = time.Now()
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create expense failed"))
		return
	}

	Created(c, expense)
}

// List returns expenses with category/date-range filters. Date filters are
// inclusive of the full start and end calendar days.
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(10)
// @Param category query string false "category filter"
// @Param startDate query string false "start date (2024-01-01)"
// @Param endDate query string false "end date (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}}
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req ExpenseListRequest
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

	query := database.DB.Model(&models.Expense{})
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
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

	var expenses []models.Expense
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC").Offset(offset).Limit(req.PageSize).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// Get returns one expense.
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	Success(c, expense)
}

// Update patches an expense.
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Param request body UpdateExpenseRequest true "fields to change"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	var req UpdateExpenseRequest
	if err := bindStrictJSON(c, &req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Amount != nil {
		if *req.Amount <= 0 {
			BadRequest(c, "amount must be positive")
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.Category != nil {
		category := models.ExpenseCategory(*req.Category)
		if !category.Valid() {
			BadRequest(c, "invalid expense category")
			return
		}
		updates["category"] = category
	}
	if req.Date != nil {
		date, err := parseDateTime(*req.Date)
		if err != nil {
			BadRequest(c, "invalid date, expected 2006-01-02")
			return
		}
		updates["date"] = date
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*req.PaymentMethod) {
			BadRequest(c, "invalid payment method, expected cash, card or mobile")
			return
		}
		updates["payment_method"] = *req.PaymentMethod
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update expense failed"))
			return
		}
		database.DB.First(&expense, expense.ID)
	}

	SuccessWithMessage(c, "updated", expense)
}

// Delete removes an expense.
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, id).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete expense failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// GetCategories returns the closed set of expense categories.
// @Summary Expense categories
// @Tags expenses
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory}
// @Router /api/v1/expenses/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	Success(c, models.ExpenseCategories())
}
