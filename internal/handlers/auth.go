package handlers

import (
	"net/http"

	"clap-go/internal/repository"
	"clap-go/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler manages session login for admin and trainer accounts.
type AuthHandler struct {
	log   *zap.Logger
	users *repository.Users
}

func NewAuthHandler(log *zap.Logger, users *repository.Users) *AuthHandler {
	return &AuthHandler{log: log, users: users}
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil || !user.CheckPassword(password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "invalid email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session on login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "userId": user.ID})
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")

	if !utils.IsValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "a valid email address is required"})
		return
	}
	if !utils.IsComplexPassword(password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "password must be at least 8 characters with upper, lower, number and symbol"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), email, password, firstName, lastName)
	if err != nil {
		h.log.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "userId": user.ID})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
