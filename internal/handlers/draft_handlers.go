package handlers

import (
	"net/http"
	"strconv"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DraftHandler serves order composition before an order is placed.
type DraftHandler struct {
	orderService     services.OrderService
	assistantService services.AssistantService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(os services.OrderService, as services.AssistantService) *DraftHandler {
	return &DraftHandler{orderService: os, assistantService: as}
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req services.CreateDraftRequest
	if !bindJSON(c, &req, "CreateDraft") {
		return
	}
	draft, err := h.orderService.CreateDraft(req.OrderType)
	if err != nil {
		respondServiceError(c, err, "Failed to create draft.")
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.orderService.GetDraft(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch draft.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.orderService.DiscardDraft(c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to discard draft.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem appends a menu item with default or requested customization.
func (h *DraftHandler) AddItem(c *gin.Context) {
	var req services.AddItemRequest
	if !bindJSON(c, &req, "AddItem") {
		return
	}
	draft, err := h.orderService.AddItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add item.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateItemQuantity changes a line by delta; a line that reaches zero is removed.
func (h *DraftHandler) UpdateItemQuantity(c *gin.Context) {
	var req services.UpdateItemQuantityRequest
	if !bindJSON(c, &req, "UpdateItemQuantity") {
		return
	}
	draft, err := h.orderService.UpdateItemQuantity(c.Param("id"), c.Param("instanceId"), req.Delta)
	if err != nil {
		respondServiceError(c, err, "Failed to update quantity.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) SetItemCustomization(c *gin.Context) {
	var req services.CustomizationRequest
	if !bindJSON(c, &req, "SetItemCustomization") {
		return
	}
	draft, err := h.orderService.SetItemCustomization(c.Param("id"), c.Param("instanceId"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update customization.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) SetFlavorSlot(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		utils.RespondValidationFailed(c, "slot must be an integer")
		return
	}
	var req services.SetFlavorSlotRequest
	if !bindJSON(c, &req, "SetFlavorSlot") {
		return
	}
	draft, err := h.orderService.SetFlavorSlot(c.Param("id"), c.Param("instanceId"), slot, req.Flavor)
	if err != nil {
		respondServiceError(c, err, "Failed to set flavor.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// PlaceDraft turns the draft into an open order and discards it.
func (h *DraftHandler) PlaceDraft(c *gin.Context) {
	var req services.PlaceDraftRequest
	if !bindJSON(c, &req, "PlaceDraft") {
		return
	}
	order, err := h.orderService.PlaceDraft(c.Param("id"), req.Destination)
	if err != nil {
		respondServiceError(c, err, "Failed to place order.")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetSuggestions proposes menu items to add to the draft.
func (h *DraftHandler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.assistantService.SuggestUpsell(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to suggest items.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
