package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu catalog and the dish assistant.
type MenuHandler struct {
	menuService      services.MenuService
	assistantService services.AssistantService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService, as services.AssistantService) *MenuHandler {
	return &MenuHandler{menuService: ms, assistantService: as}
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if !bindJSON(c, &req, "CreateMenuItem") {
		return
	}
	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create menu item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems lists the menu, optionally narrowed with ?category=.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	items, err := h.menuService.ListMenuItems(c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch menu.")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	item, err := h.menuService.GetMenuItem(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem replaces a menu item. Orders already placed keep their snapshot.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if !bindJSON(c, &req, "UpdateMenuItem") {
		return
	}
	item, err := h.menuService.UpdateMenuItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete menu item.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch categories.")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *MenuHandler) GetCustomizations(c *gin.Context) {
	c.JSON(http.StatusOK, h.menuService.GetCustomizationCatalog())
}

func (h *MenuHandler) UpdateCustomizations(c *gin.Context) {
	var catalog models.CustomizationCatalog
	if !bindJSON(c, &catalog, "UpdateCustomizations") {
		return
	}
	updated, err := h.menuService.UpdateCustomizationCatalog(catalog)
	if err != nil {
		respondServiceError(c, err, "Failed to update customization options.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GenerateDescription writes menu copy for a dish name. A placeholder is returned when the assistant is unavailable.
func (h *MenuHandler) GenerateDescription(c *gin.Context) {
	var req services.DishDescriptionRequest
	if !bindJSON(c, &req, "GenerateDescription") {
		return
	}
	description, err := h.assistantService.DescribeDish(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to generate description.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// GenerateImage returns a generated dish photo, or an empty image_url when none could be made.
func (h *MenuHandler) GenerateImage(c *gin.Context) {
	var req services.DishImageRequest
	if !bindJSON(c, &req, "GenerateImage") {
		return
	}
	image, err := h.assistantService.IllustrateDish(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "Failed to generate image.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": image})
}
