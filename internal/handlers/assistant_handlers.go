package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"

	"github.com/gin-gonic/gin"
)

// AssistantHandler serves the staff chat assistant.
type AssistantHandler struct {
	assistantService services.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(as services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: as}
}

// Query answers a question about the restaurant's current state.
func (h *AssistantHandler) Query(c *gin.Context) {
	var req services.AssistantQueryRequest
	if !bindJSON(c, &req, "AssistantQuery") {
		return
	}
	answer, err := h.assistantService.AnswerQuery(c.Request.Context(), req.Question)
	if err != nil {
		respondServiceError(c, err, "Failed to answer question.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
