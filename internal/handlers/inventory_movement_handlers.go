package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetInventoryMovements lists stock movements, newest first.
// Query filters: inventory_item_id, movement_type, reference.
func (h *InventoryHandler) GetInventoryMovements(c *gin.Context) {
	var filters models.MovementFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if filters.MovementType != nil {
		switch *filters.MovementType {
		case models.MovementTypeSale, models.MovementTypeAdjustment, models.MovementTypeSet, models.MovementTypeInitial:
		default:
			utils.RespondValidationFailed(c, "unknown movement_type '"+string(*filters.MovementType)+"'")
			return
		}
	}

	movements, err := h.inventoryService.GetMovements(filters)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch inventory movements.")
		return
	}
	c.JSON(http.StatusOK, movements)
}
