package handlers

import (
	"net/http"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order engine and customer messaging.
type OrderHandler struct {
	orderService     services.OrderService
	messagingService services.MessagingService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService, ms services.MessagingService) *OrderHandler {
	return &OrderHandler{orderService: os, messagingService: ms}
}

// CreateOrder places an order in one call without going through a draft.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req, "CreateOrder") {
		return
	}
	order, err := h.orderService.CreateOrder(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create order.")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrders handles fetching orders. ?active=true returns open and ready orders only.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	if c.Query("active") == "true" {
		orders, err := h.orderService.ActiveOrders()
		if err != nil {
			respondServiceError(c, err, "Failed to fetch orders.")
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if filters.Status != nil && !models.IsValidOrderStatus(string(*filters.Status)) {
		utils.RespondValidationFailed(c, "unknown order status '"+string(*filters.Status)+"'")
		return
	}
	if filters.OrderType != nil && !models.IsValidOrderType(string(*filters.OrderType)) {
		utils.RespondValidationFailed(c, "unknown order type '"+string(*filters.OrderType)+"'")
		return
	}

	orders, err := h.orderService.ListOrders(filters)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch orders.")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch order.")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order along open -> ready -> completed, or cancels it.
// Completing through this route records the sale exactly like CompleteSale.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.TransitionStatusRequest
	if !bindJSON(c, &req, "UpdateOrderStatus") {
		return
	}
	order, sale, err := h.orderService.TransitionStatus(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update order status.")
		return
	}
	if sale != nil {
		c.JSON(http.StatusOK, gin.H{"order": order, "sale": sale})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CompleteSale takes payment, deducts stock and frees the table.
func (h *OrderHandler) CompleteSale(c *gin.Context) {
	var req services.CompleteSaleRequest
	if !bindJSON(c, &req, "CompleteSale") {
		return
	}
	sale, err := h.orderService.CompleteSale(c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err, "Failed to complete sale.")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.orderService.CancelOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to cancel order.")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetKitchenQueue lists open orders, oldest first, with their waiting time.
func (h *OrderHandler) GetKitchenQueue(c *gin.Context) {
	tickets, err := h.orderService.KitchenQueue()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch kitchen queue.")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetMessaging lists active delivery and to-go orders with prefilled customer messages.
func (h *OrderHandler) GetMessaging(c *gin.Context) {
	contacts, err := h.messagingService.Conversations()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customer conversations.")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *OrderHandler) GetOrderMessages(c *gin.Context) {
	contact, err := h.messagingService.OrderMessages(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to build customer messages.")
		return
	}
	c.JSON(http.StatusOK, contact)
}
