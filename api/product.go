package api

import (
	"strconv"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/models"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the café catalogue.
type ProductHandler struct{}

// NewProductHandler creates a product handler.
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// CreateProductRequest is the create payload.
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100" example:"Espresso"`
	Category string  `json:"category" example:"drink"`
	Price    float64 `json:"price" binding:"required,gt=0" example:"12"`
}

// UpdateProductRequest is the patch payload; absent fields stay unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"isActive"`
}

// List returns the catalogue. Pass all=true to include inactive products.
// @Summary List products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param all query bool false "include inactive products"
// @Success 200 {object} Response{data=[]models.Product}
// @Router /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Product{})
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Order("category ASC, name ASC").Find(&products).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, products)
}

// Create adds a product (admin).
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "product"
// @Success 201 {object} Response{data=models.Product}
// @Failure 400 {object} Response
// @Router /api/v1/admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	category := req.Category
	if category == "" {
		category = models.ProductCategoryOther
	}

	product := models.Product{
		Name:     req.Name,
		Category: category,
		Price:    req.Price,
		IsActive: true,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create product failed"))
		return
	}

	Created(c, product)
}

// Update patches a product (admin).
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Param request body UpdateProductRequest true "fields to change"
// @Success 200 {object} Response{data=models.Product}
// @Failure 404 {object} Response
// @Router /api/v1/admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		NotFound(c, "product not found")
		return
	}

	var req UpdateProductRequest
	if err := bindStrictJSON(c, &req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			BadRequest(c, "price must be positive")
			return
		}
		updates["price"] = *req.Price
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update product failed"))
			return
		}
		database.DB.First(&product, product.ID)
	}

	SuccessWithMessage(c, "updated", product)
}

// Delete removes a product (admin).
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		NotFound(c, "product not found")
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete product failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
