package api

import (
	"errors"
	"strconv"

	"github.com/Soufianejami/coworkingcaisse/config"
	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/middleware"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
)

// StockHandler serves the stock ledger and inventory queries.
type StockHandler struct {
	emailService *service.EmailService
}

// NewStockHandler creates a stock handler.
func NewStockHandler(cfg *config.Config) *StockHandler {
	return &StockHandler{
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// AddStockRequest is the restock payload.
type AddStockRequest struct {
	ProductID uint   `json:"productId" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,gt=0" example:"24"`
	Reason    string `json:"reason" example:"weekly delivery"`
}

// RemoveStockRequest is the consumption payload.
type RemoveStockRequest struct {
	ProductID     uint   `json:"productId" binding:"required" example:"1"`
	Quantity      int    `json:"quantity" binding:"required,gt=0" example:"2"`
	Reason        string `json:"reason" example:"café order"`
	TransactionID *uint  `json:"transactionId" example:"42"`
}

// AdjustStockRequest sets an absolute quantity after a physical count.
type AdjustStockRequest struct {
	ProductID   uint   `json:"productId" binding:"required" example:"1"`
	NewQuantity *int   `json:"newQuantity" binding:"required" example:"0"`
	Reason      string `json:"reason" example:"inventory count"`
}

// CreateInventoryRequest registers inventory settings for a product.
type CreateInventoryRequest struct {
	ProductID      uint     `json:"productId" binding:"required" example:"1"`
	MinThreshold   int      `json:"minThreshold" example:"5"`
	PurchasePrice  *float64 `json:"purchasePrice" example:"6.5"`
	ExpirationDate *string  `json:"expirationDate" example:"2024-06-30"`
}

// stockError maps stock ledger error kinds to HTTP statuses.
func (h *StockHandler) stockError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, "no inventory for product")
	case errors.Is(err, service.ErrInsufficientStock):
		BadRequest(c, "insufficient stock")
	case errors.Is(err, service.ErrInvalidQuantity):
		BadRequest(c, "quantity must be positive")
	case errors.Is(err, service.ErrDuplicateInventory):
		BadRequest(c, "inventory already exists for product")
	default:
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// Add restocks a product.
// @Summary Add stock
// @Description Increments the on-hand quantity and appends an "add" movement. Items with a purchase price record a supplies expense best-effort.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddStockRequest true "restock"
// @Success 200 {object} Response{data=service.StockResult}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/stock/add [post]
func (h *StockHandler) Add(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	res, err := service.AddStock(database.DB, req.ProductID, req.Quantity, userID, req.Reason)
	if err != nil {
		h.stockError(c, err, "add stock failed")
		return
	}

	Success(c, res)
}

// Remove consumes stock, optionally linked to a café transaction.
// @Summary Remove stock
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RemoveStockRequest true "consumption"
// @Success 200 {object} Response{data=service.StockResult}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/stock/remove [post]
func (h *StockHandler) Remove(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req RemoveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	res, err := service.RemoveStock(database.DB, req.ProductID, req.Quantity, userID, req.Reason, req.TransactionID)
	if err != nil {
		h.stockError(c, err, "remove stock failed")
		return
	}

	Success(c, res)
}

// Adjust sets a product's quantity to a counted value.
// @Summary Adjust stock
// @Description Sets the absolute quantity and logs the signed delta as an "adjust" movement, even when the delta is zero.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdjustStockRequest true "count result"
// @Success 200 {object} Response{data=service.StockResult}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/stock/adjust [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}
	if *req.NewQuantity < 0 {
		BadRequest(c, "newQuantity cannot be negative")
		return
	}

	res, err := service.AdjustStock(database.DB, req.ProductID, *req.NewQuantity, userID, req.Reason)
	if err != nil {
		h.stockError(c, err, "adjust stock failed")
		return
	}

	Success(c, res)
}

// ListInventory returns all inventory rows with their products.
// @Summary List inventory
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Inventory}
// @Router /api/v1/inventory [get]
func (h *StockHandler) ListInventory(c *gin.Context) {
	var items []models.Inventory
	if err := database.DB.Preload("Product").Order("product_id ASC").Find(&items).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	Success(c, items)
}

// LowStock returns items at or under their minimum threshold.
// @Summary Low stock items
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Inventory}
// @Router /api/v1/inventory/low-stock [get]
func (h *StockHandler) LowStock(c *gin.Context) {
	items, err := service.GetLowStockItems(database.DB)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	Success(c, items)
}

// Expiring returns items expiring within the given number of days.
// @Summary Expiring items
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param days query int false "days threshold" default(7)
// @Success 200 {object} Response{data=[]models.Inventory}
// @Router /api/v1/inventory/expiring [get]
func (h *StockHandler) Expiring(c *gin.Context) {
	days := 7
	if s := c.Query("days"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed <= 0 {
			BadRequest(c, "days must be a positive integer")
			return
		}
		days = parsed
	}

	items, err := service.GetExpiringItems(database.DB, days)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	Success(c, items)
}

// Movements returns a product's movement log, newest first.
// @Summary Stock movements
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param productId path int true "product id"
// @Success 200 {object} Response{data=[]models.StockMovement}
// @Router /api/v1/inventory/{productId}/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid product id")
		return
	}

	var movements []models.StockMovement
	if err := database.DB.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, movements)
}

// CreateInventory registers threshold/price/expiration for a product (admin).
// @Summary Create inventory settings
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInventoryRequest true "inventory settings"
// @Success 201 {object} Response{data=models.Inventory}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/inventory [post]
func (h *StockHandler) CreateInventory(c *gin.Context) {
	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	inv := models.Inventory{
		ProductID:     req.ProductID,
		MinThreshold:  req.MinThreshold,
		PurchasePrice: req.PurchasePrice,
	}
	if req.ExpirationDate != nil {
		exp, err := parseDateTime(*req.ExpirationDate)
		if err != nil {
			BadRequest(c, "invalid expirationDate, expected 2006-01-02")
			return
		}
		inv.ExpirationDate = &exp
	}

	if err := service.CreateInventory(database.DB, &inv); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "product not found")
			return
		}
		h.stockError(c, err, "create inventory failed")
		return
	}

	Created(c, inv)
}

// SendLowStockAlert mails the configured recipient the current low-stock list (admin).
// @Summary Send low stock alert
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /api/v1/admin/inventory/alert [post]
func (h *StockHandler) SendLowStockAlert(c *gin.Context) {
	items, err := service.GetLowStockItems(database.DB)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	if len(items) == 0 {
		SuccessWithMessage(c, "no low stock items", nil)
		return
	}

	if err := h.emailService.SendLowStockAlert(items); err != nil {
		InternalError(c, SafeErrorMessage(err, "send alert failed"))
		return
	}

	SuccessWithMessage(c, "alert sent", gin.H{"items": len(items)})
}
