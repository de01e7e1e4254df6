package api

import (
	"strconv"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/models"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin user management surface.
type UserHandler struct{}

// NewUserHandler creates a user handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// UpdateUserRequest is the admin patch payload for an account.
type UpdateUserRequest struct {
	Status  *string `json:"status"`
	IsAdmin *bool   `json:"isAdmin"`
}

// List returns all staff accounts (admin).
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.User}
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}
	Success(c, users)
}

// Update changes an account's status or admin flag (admin).
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param request body UpdateUserRequest true "fields to change"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "user not found")
		return
	}

	var req UpdateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		if *req.Status != models.UserStatusActive && *req.Status != models.UserStatusLocked {
			BadRequest(c, "invalid status, expected active or locked")
			return
		}
		updates["status"] = *req.Status
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update user failed"))
			return
		}
		database.DB.First(&user, user.ID)
	}

	SuccessWithMessage(c, "updated", user)
}
