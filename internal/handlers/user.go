package handlers

import (
	"net/http"

	"clap-go/internal/models"
	"clap-go/internal/repository"
	"clap-go/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler covers the logged-in account's own profile.
type UserHandler struct {
	log   *zap.Logger
	users *repository.Users
}

func NewUserHandler(log *zap.Logger, users *repository.Users) *UserHandler {
	return &UserHandler{log: log, users: users}
}

func (h *UserHandler) ShowProfile(c *gin.Context) {
	user, _ := c.Get("user")
	currentUser := user.(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"id":        currentUser.ID,
		"email":     currentUser.Email,
		"firstName": currentUser.FirstName,
		"lastName":  currentUser.LastName,
		"role":      currentUser.Role,
	})
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user, _ := c.Get("user")
	userID := user.(*models.User).ID
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")

	if err := h.users.UpdateUser(c.Request.Context(), userID, firstName, lastName); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user, _ := c.Get("user")
	currentUser := user.(*models.User)
	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirmPassword := c.PostForm("confirm_password")

	if !currentUser.CheckPassword(currentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "incorrect current password"})
		return
	}
	if newPassword != confirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "new passwords do not match"})
		return
	}
	if !utils.IsComplexPassword(newPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "password must be at least 8 characters with upper, lower, number and symbol"})
		return
	}
	if err := h.users.UpdateUserPassword(c.Request.Context(), currentUser.ID, newPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", currentUser.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user, _ := c.Get("user")
	currentUser := user.(*models.User)
	password := c.PostForm("password")

	if !currentUser.CheckPassword(password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "incorrect password"})
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), currentUser.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", currentUser.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
