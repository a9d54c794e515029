package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

func (h *TableHandler) CreateTable(c *gin.Context) {
	var req services.CreateTableRequest
	if !bindJSON(c, &req, "CreateTable") {
		return
	}
	table, err := h.tableService.AddTable(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create table.")
		return
	}
	c.JSON(http.StatusCreated, table)
}

// GetTables lists the floor, optionally narrowed with ?status=.
func (h *TableHandler) GetTables(c *gin.Context) {
	var status *models.TableStatus
	if s := c.Query("status"); s != "" {
		if !models.IsValidTableStatus(s) {
			utils.RespondValidationFailed(c, "unknown table status '"+s+"'")
			return
		}
		ts := models.TableStatus(s)
		status = &ts
	}
	tables, err := h.tableService.ListTables(status)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch tables.")
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) GetTableByID(c *gin.Context) {
	table, err := h.tableService.GetTable(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch table.")
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) UpdateTable(c *gin.Context) {
	var req services.UpdateTableRequest
	if !bindJSON(c, &req, "UpdateTable") {
		return
	}
	table, err := h.tableService.UpdateTable(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update table.")
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatus is the manual status override (reserved, cleaning, available).
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	var req services.UpdateTableStatusRequest
	if !bindJSON(c, &req, "UpdateTableStatus") {
		return
	}
	table, err := h.tableService.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update table status.")
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	if err := h.tableService.DeleteTable(c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete table.")
		return
	}
	c.Status(http.StatusNoContent)
}
