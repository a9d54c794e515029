package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SalesHandler serves the sales ledger, reports and the dashboard.
type SalesHandler struct {
	salesService     services.SalesService
	assistantService services.AssistantService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(ss services.SalesService, as services.AssistantService) *SalesHandler {
	return &SalesHandler{salesService: ss, assistantService: as}
}

// parseReportRequestParams reads start_date, end_date, period and top from the query string.
func parseReportRequestParams(c *gin.Context) (models.ReportRequestParams, bool) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return params, false
	}
	return params, true
}

// GetSales lists the sales recorded in the requested window.
func (h *SalesHandler) GetSales(c *gin.Context) {
	params, ok := parseReportRequestParams(c)
	if !ok {
		return
	}
	sales, err := h.salesService.ListSales(params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sales.")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SalesHandler) GetSaleByID(c *gin.Context) {
	sale, err := h.salesService.GetSale(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sale.")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// GetSalesReport aggregates the sales in the requested window.
func (h *SalesHandler) GetSalesReport(c *gin.Context) {
	params, ok := parseReportRequestParams(c)
	if !ok {
		return
	}
	report, err := h.salesService.Report(params)
	if err != nil {
		respondServiceError(c, err, "Failed to generate sales report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSalesReportSummary returns the report together with a written summary.
func (h *SalesHandler) GetSalesReportSummary(c *gin.Context) {
	params, ok := parseReportRequestParams(c)
	if !ok {
		return
	}
	summary, err := h.assistantService.SummarizeReport(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to summarize sales report.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDashboardSummary provides today's key metrics.
func (h *SalesHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.salesService.Dashboard()
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
