package handlers

import (
	"errors"
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the API error envelope.
// action is the user facing text used for unexpected failures, e.g. "Failed to create order.".
func respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrTableNotAvailable),
		errors.Is(err, services.ErrNameConflict),
		errors.Is(err, services.ErrUsernameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "The request conflicts with the current state.", err.Error()))
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidTransition, "Order status change not allowed.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case services.IsNotFound(err):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
	case errors.Is(err, repositories.ErrDatabaseError):
		utils.LogError(err, action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Sales journal unavailable, nothing was changed.", ""))
	default:
		utils.LogError(err, action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, action, "Internal error"))
	}
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}, handler string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug(handler+": Failed to bind JSON", map[string]interface{}{"error": err.Error()})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}
