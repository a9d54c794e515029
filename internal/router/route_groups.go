package router

import (
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/handlers"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/middleware"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"

	"github.com/gin-gonic/gin"
)

var (
	roleAdmin  = string(models.RoleAdmin)
	roleWaiter = string(models.RoleWaiter)
)

// SetupInventoryRoutes sets up the inventory routes.
// Waiters may read stock; only admins change it.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	readRoutes := authenticatedGroup.Group("/inventory")
	readRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin, roleWaiter))
	{
		readRoutes.GET("", inventoryHandler.GetInventoryItems)
		readRoutes.GET("/low-stock", inventoryHandler.GetLowStockItems)
		readRoutes.GET("/movements", inventoryHandler.GetInventoryMovements)
		readRoutes.GET("/:id", inventoryHandler.GetInventoryItemByID)
	}

	writeRoutes := authenticatedGroup.Group("/inventory")
	writeRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin))
	{
		writeRoutes.POST("", inventoryHandler.CreateInventoryItem)
		writeRoutes.PUT("/:id", inventoryHandler.UpdateInventoryItem)
		writeRoutes.POST("/:id/adjust", inventoryHandler.AdjustStock)
	}
}

// SetupMenuRoutes sets up the menu catalog routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	readRoutes := authenticatedGroup.Group("/menu")
	readRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin, roleWaiter))
	{
		readRoutes.GET("", menuHandler.GetMenuItems)
		readRoutes.GET("/categories", menuHandler.GetCategories)
		readRoutes.GET("/customizations", menuHandler.GetCustomizations)
		readRoutes.GET("/:id", menuHandler.GetMenuItemByID)
	}

	writeRoutes := authenticatedGroup.Group("/menu")
	writeRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin))
	{
		writeRoutes.POST("", menuHandler.CreateMenuItem)
		writeRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		writeRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)
		writeRoutes.PUT("/customizations", menuHandler.UpdateCustomizations)
		writeRoutes.POST("/assist/description", menuHandler.GenerateDescription)
		writeRoutes.POST("/assist/image", menuHandler.GenerateImage)
	}
}

// SetupTableRoutes sets up the table routes.
func SetupTableRoutes(authenticatedGroup *gin.RouterGroup, tableHandler *handlers.TableHandler) {
	tableRoutes := authenticatedGroup.Group("/tables")
	tableRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin, roleWaiter))
	{
		tableRoutes.GET("", tableHandler.GetTables)
		tableRoutes.GET("/:id", tableHandler.GetTableByID)
		tableRoutes.PATCH("/:id/status", tableHandler.UpdateTableStatus)
	}

	adminRoutes := authenticatedGroup.Group("/tables")
	adminRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin))
	{
		adminRoutes.POST("", tableHandler.CreateTable)
		adminRoutes.PUT("/:id", tableHandler.UpdateTable)
		adminRoutes.DELETE("/:id", tableHandler.DeleteTable)
	}
}

// SetupDraftRoutes sets up order composition routes.
func SetupDraftRoutes(authenticatedGroup *gin.RouterGroup, draftHandler *handlers.DraftHandler) {
	draftRoutes := authenticatedGroup.Group("/drafts")
	draftRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin, roleWaiter))
	{
		draftRoutes.POST("", draftHandler.CreateDraft)
		draftRoutes.GET("/:id", draftHandler.GetDraft)
		draftRoutes.DELETE("/:id", draftHandler.DiscardDraft)
		draftRoutes.POST("/:id/items", draftHandler.AddItem)
		draftRoutes.PATCH("/:id/items/:instanceId/quantity", draftHandler.UpdateItemQuantity)
		draftRoutes.PUT("/:id/items/:instanceId/customization", draftHandler.SetItemCustomization)
		draftRoutes.PUT("/:id/items/:instanceId/flavors/:slot", draftHandler.SetFlavorSlot)
		draftRoutes.POST("/:id/place", draftHandler.PlaceDraft)
		draftRoutes.GET("/:id/suggestions", draftHandler.GetSuggestions)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin, roleWaiter))
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/kitchen", orderHandler.GetKitchenQueue)
		orderRoutes.GET("/messaging", orderHandler.GetMessaging)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.POST("/:id/complete", orderHandler.CompleteSale)
		orderRoutes.POST("/:id/cancel", orderHandler.CancelOrder)
		orderRoutes.GET("/:id/whatsapp", orderHandler.GetOrderMessages)
	}
}

// SetupSalesRoutes sets up the sales ledger and report routes.
func SetupSalesRoutes(authenticatedGroup *gin.RouterGroup, salesHandler *handlers.SalesHandler) {
	salesRoutes := authenticatedGroup.Group("/sales")
	salesRoutes.Use(middleware.RoleAuthMiddleware(roleAdmin))
	{
		salesRoutes.GET("", salesHandler.GetSales)
		salesRoutes.GET("/report", salesHandler.GetSalesReport)
		salesRoutes.GET("/report/summary", salesHandler.GetSalesReportSummary)
		salesRoutes.GET("/:id", salesHandler.GetSaleByID)
	}
	authenticatedGroup.GET("/sales/dashboard", middleware.RoleAuthMiddleware(roleAdmin, roleWaiter), salesHandler.GetDashboardSummary)
}

// SetupAssistantRoutes sets up the chat assistant routes.
func SetupAssistantRoutes(authenticatedGroup *gin.RouterGroup, assistantHandler *handlers.AssistantHandler) {
	authenticatedGroup.POST("/assistant/query", middleware.RoleAuthMiddleware(roleAdmin, roleWaiter), assistantHandler.Query)
}
