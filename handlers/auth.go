package handlers

import (
	"net/http"
	"time"

	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and the password lifecycle.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// RegisterHandler handles POST /api/auth/register. Registration creates the
// account and the first consulting booking in one transaction.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name            string    `json:"name" binding:"required"`
		Email           string    `json:"email" binding:"required,email"`
		Password        string    `json:"password"`
		Contact         string    `json:"contact"`
		AppointmentTime time.Time `json:"appointmentDateandTime" binding:"required"`
		Reason          string    `json:"reason"`
		BookingFee      float64   `json:"bookingfee" binding:"required,gt=0"`
		PaymentMethodID string    `json:"paymentMethodid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.Users.Register(c.Request.Context(), user.RegisterRequest{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Contact:         req.Contact,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		BookingFee:      req.BookingFee,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForgotPasswordHandler handles POST /api/auth/forgot-password. The reset
// link targets the caller's origin when one is present.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Users.ForgotPassword(req.Email, c.GetHeader("Origin")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token sent to email!"})
}

// ResetPasswordHandler handles PATCH /api/auth/reset-password/:token.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.Users.ResetPassword(c.Param("token"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePasswordHandler handles PATCH /api/auth/update-password for an
// authenticated user.
func (h *AuthHandler) UpdatePasswordHandler(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		Password    string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Users.UpdatePassword(c.GetString("userID"), req.OldPassword, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// CreateFirstPasswordHandler handles POST /api/auth/create-password for
// accounts registered without one.
func (h *AuthHandler) CreateFirstPasswordHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Users.CreateFirstPassword(c.GetString("userID"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password created successfully"})
}
