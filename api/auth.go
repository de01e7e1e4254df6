package api

import (
	"fmt"
	"log"
	"time"

	"github.com/Soufianejami/coworkingcaisse/config"
	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/middleware"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration, login and password resets.
type AuthHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"sara"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	Email    string `json:"email" binding:"omitempty,email" example:"sara@example.com"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"sara"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse carries the signed token and the user.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"userInfo"`
}

// RequestResetRequest asks for a password reset mail.
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=50"`
}

// Register creates a staff account. New accounts start locked until an admin
// activates them.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "registration"
// @Success 201 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		BadRequest(c, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "register failed"))
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Status:   models.UserStatusLocked,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "register failed"))
		return
	}

	Created(c, user)
}

// Login authenticates a staff account and returns a JWT.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=LoginResponse}
// @Failure 401 {object} Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Username).
		First(&user).Error; err != nil {
		Unauthorized(c, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "invalid username or password")
		return
	}

	if user.Status != models.UserStatusActive {
		Unauthorized(c, "account is locked, contact an administrator")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "login failed"))
		return
	}

	Success(c, LoginResponse{Token: token, UserInfo: user})
}

// RequestPasswordReset creates a reset token and mails it. Always answers 200
// so the endpoint does not reveal which emails exist.
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "account email"
// @Success 200 {object} Response
// @Router /api/v1/auth/password/request-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		SuccessWithMessage(c, "if the email exists, a reset link has been sent", nil)
		return
	}

	token, err := models.GenerateResetToken()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "reset request failed"))
		return
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "reset request failed"))
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", h.cfg.Server.BaseURL, token)
	if err := h.emailService.SendPasswordResetEmail(user.Email, user.Username, resetLink); err != nil {
		log.Printf("password reset mail to %s failed: %v", user.Email, err)
	}

	SuccessWithMessage(c, "if the email exists, a reset link has been sent", nil)
}

// ResetPassword redeems a reset token.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "token and new password"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		BadRequest(c, "invalid or expired reset token")
		return
	}
	if !reset.IsValid() {
		BadRequest(c, "invalid or expired reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "reset failed"))
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", reset.UserID).
		Update("password", string(hash)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "reset failed"))
		return
	}
	database.DB.Model(&reset).Update("used", true)

	SuccessWithMessage(c, "password updated", nil)
}
