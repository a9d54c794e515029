package handlers

import (
	"errors"
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/middleware"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// RegisterUser creates a staff account. Only admins reach this handler.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if !bindJSON(c, &req, "RegisterUser") {
		return
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		respondServiceError(c, err, "Failed to register user.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "LoginUser") {
		return
	}

	authResp, err := h.authService.LoginUser(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn("LoginUser: rejected credentials", map[string]interface{}{"username": req.Username})
		}
		respondServiceError(c, err, "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers returns every staff account.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		respondServiceError(c, err, "Failed to list users.")
		return
	}
	c.JSON(http.StatusOK, users)
}
