package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// CreateInventoryItem adds an ingredient with its opening stock.
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if !bindJSON(c, &req, "CreateInventoryItem") {
		return
	}
	item, err := h.inventoryService.AddItem(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create inventory item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetInventoryItems lists every ingredient sorted by name.
func (h *InventoryHandler) GetInventoryItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch inventory.")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetLowStockItems lists ingredients at or below their alert threshold.
func (h *InventoryHandler) GetLowStockItems(c *gin.Context) {
	items, err := h.inventoryService.LowStock()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch low stock items.")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	item, err := h.inventoryService.GetItem(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	var req services.UpdateInventoryItemRequest
	if !bindJSON(c, &req, "UpdateInventoryItem") {
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AdjustStock applies a manual "add" or "set" adjustment.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req services.AdjustStockRequest
	if !bindJSON(c, &req, "AdjustStock") {
		return
	}
	item, err := h.inventoryService.AdjustStock(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust stock.")
		return
	}
	c.JSON(http.StatusOK, item)
}
