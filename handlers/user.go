package handlers

import (
	"net/http"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and admin user-management endpoints.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetMeHandler handles GET /api/users/me.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	usr, err := h.Users.GetUser(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usr})
}

// UpdateProfileHandler handles PATCH /api/users/me. The target account is
// always the authenticated one.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	req.ID = c.GetString("userID")

	usr, err := h.Users.UpdateProfile(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usr})
}

// GetUserByIDHandler handles GET /api/users/:id (admin).
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	usr, err := h.Users.GetUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usr})
}

// ListUsersHandler handles GET /api/users (admin), filtered by role, status
// and a free-text search over name and email.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	page, limit := pageParams(c)
	users, pageInfo, err := h.Users.ListUsers(userRepo.ListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "pageInfo": pageInfo})
}

// DeleteUserHandler handles DELETE /api/users/:id (admin). Accounts are
// soft-deleted by status.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// UpdateStatusHandler handles PATCH /api/users/:id/status (admin).
func (h *UserHandler) UpdateStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,accountstatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	usr, err := h.Users.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": usr})
}

// DashboardStatsHandler handles GET /api/admin/dashboard (admin).
func (h *UserHandler) DashboardStatsHandler(c *gin.Context) {
	stats, err := h.Users.DashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
