package router

import (
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/advisor"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/handlers"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/middleware"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Options are the collaborators the services are built on.
type Options struct {
	Tokens           *utils.JWTManager
	Journal          repositories.SaleJournal
	Publisher        notifications.Publisher
	Advisor          *advisor.Fallback
	PhoneCountryCode string
}

// Services is the wired service layer.
type Services struct {
	Auth      services.AuthService
	Inventory services.InventoryService
	Menu      services.MenuService
	Tables    services.TableService
	Orders    services.OrderService
	Sales     services.SalesService
	Assistant services.AssistantService
	Messaging services.MessagingService
}

// NewServices initializes the repositories and the services on top of them.
func NewServices(opts Options) *Services {
	if opts.Journal == nil {
		opts.Journal = repositories.NopJournal{}
	}
	if opts.Publisher == nil {
		opts.Publisher = notifications.NopPublisher{}
	}
	if opts.Advisor == nil {
		opts.Advisor = advisor.NewFallback(advisor.Disabled{}, 0)
	}

	// Initialize Repositories
	authRepo := repositories.NewAuthRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	movementRepo := repositories.NewInventoryMovementRepository()
	menuRepo := repositories.NewMenuRepository(models.DefaultCustomizationCatalog())
	tableRepo := repositories.NewTableRepository()
	orderRepo := repositories.NewOrderRepository()
	draftRepo := repositories.NewDraftRepository()
	saleRepo := repositories.NewSaleRepository()

	// Stock, tables and orders change together under one lock.
	state := &sync.Mutex{}

	// Initialize Services
	svc := &Services{
		Auth:      services.NewAuthService(authRepo, opts.Tokens),
		Inventory: services.NewInventoryService(state, inventoryRepo, movementRepo, opts.Journal, opts.Publisher),
		Menu:      services.NewMenuService(menuRepo, inventoryRepo, opts.Publisher),
		Tables:    services.NewTableService(state, tableRepo, orderRepo, opts.Publisher),
		Orders: services.NewOrderService(services.OrderServiceDeps{
			State:     state,
			Orders:    orderRepo,
			Drafts:    draftRepo,
			Menu:      menuRepo,
			Tables:    tableRepo,
			Inventory: inventoryRepo,
			Movements: movementRepo,
			Sales:     saleRepo,
			Journal:   opts.Journal,
			Publisher: opts.Publisher,
		}),
		Sales:     services.NewSalesService(saleRepo, orderRepo, tableRepo, inventoryRepo),
		Messaging: services.NewMessagingService(orderRepo, opts.PhoneCountryCode),
	}
	svc.Assistant = services.NewAssistantService(opts.Advisor, menuRepo, tableRepo, inventoryRepo, draftRepo, svc.Sales)
	return svc
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svc *Services, tokens middleware.TokenValidator) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	inventoryHandler := handlers.NewInventoryHandler(svc.Inventory)
	menuHandler := handlers.NewMenuHandler(svc.Menu, svc.Assistant)
	tableHandler := handlers.NewTableHandler(svc.Tables)
	draftHandler := handlers.NewDraftHandler(svc.Orders, svc.Assistant)
	orderHandler := handlers.NewOrderHandler(svc.Orders, svc.Messaging)
	salesHandler := handlers.NewSalesHandler(svc.Sales, svc.Assistant)
	assistantHandler := handlers.NewAssistantHandler(svc.Assistant)

	apiV1 := engine.Group("/api/v1")

	// Login is the only public route.
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupTableRoutes(authenticated, tableHandler)
		SetupDraftRoutes(authenticated, draftHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupSalesRoutes(authenticated, salesHandler)
		SetupAssistantRoutes(authenticated, assistantHandler)
	}
}

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/register", middleware.RoleAuthMiddleware(roleAdmin), authHandler.RegisterUser)
	group.GET("/users", middleware.RoleAuthMiddleware(roleAdmin), authHandler.ListUsers)
}
