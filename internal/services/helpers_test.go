package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/shopspring/decimal"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (p *recordingPublisher) Publish(e notifications.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []notifications.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.Kind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}

func (p *recordingPublisher) count(kind notifications.Kind) int {
	n := 0
	for _, k := range p.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

// failingJournal rejects every write once fail is set.
type failingJournal struct {
	fail  bool
	sales int
}

var errJournalDown = errors.New("journal unavailable")

func (j *failingJournal) RecordSale(*models.Sale, []models.InventoryMovement) error {
	if j.fail {
		return errJournalDown
	}
	j.sales++
	return nil
}

func (j *failingJournal) RecordMovement(*models.InventoryMovement) error {
	if j.fail {
		return errJournalDown
	}
	return nil
}

type testEnv struct {
	publisher *recordingPublisher
	journal   *failingJournal

	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.InventoryMovementRepository
	menuRepo      repositories.MenuRepository
	tableRepo     repositories.TableRepository
	orderRepo     repositories.OrderRepository
	draftRepo     repositories.DraftRepository
	saleRepo      repositories.SaleRepository

	inventory InventoryService
	menu      MenuService
	tables    TableService
	orders    OrderService
	sales     SalesService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		publisher:     &recordingPublisher{},
		journal:       &failingJournal{},
		inventoryRepo: repositories.NewInventoryRepository(),
		movementRepo:  repositories.NewInventoryMovementRepository(),
		menuRepo:      repositories.NewMenuRepository(models.DefaultCustomizationCatalog()),
		tableRepo:     repositories.NewTableRepository(),
		orderRepo:     repositories.NewOrderRepository(),
		draftRepo:     repositories.NewDraftRepository(),
		saleRepo:      repositories.NewSaleRepository(),
	}
	state := &sync.Mutex{}
	env.inventory = NewInventoryService(state, env.inventoryRepo, env.movementRepo, env.journal, env.publisher)
	env.menu = NewMenuService(env.menuRepo, env.inventoryRepo, env.publisher)
	env.tables = NewTableService(state, env.tableRepo, env.orderRepo, env.publisher)
	env.orders = NewOrderService(OrderServiceDeps{
		State:     state,
		Orders:    env.orderRepo,
		Drafts:    env.draftRepo,
		Menu:      env.menuRepo,
		Tables:    env.tableRepo,
		Inventory: env.inventoryRepo,
		Movements: env.movementRepo,
		Sales:     env.saleRepo,
		Journal:   env.journal,
		Publisher: env.publisher,
	})
	env.sales = NewSalesService(env.saleRepo, env.orderRepo, env.tableRepo, env.inventoryRepo)
	return env
}

func (env *testEnv) addInventory(t *testing.T, name string, stock float64, unit models.InventoryUnit, threshold float64) *models.InventoryItem {
	t.Helper()
	item, err := env.inventory.AddItem(CreateInventoryItemRequest{Name: name, Stock: stock, Unit: string(unit), AlertThreshold: threshold})
	if err != nil {
		t.Fatalf("AddItem(%s) error = %v", name, err)
	}
	return item
}

func (env *testEnv) addMenuItem(t *testing.T, req MenuItemRequest) *models.MenuItem {
	t.Helper()
	item, err := env.menu.CreateMenuItem(req)
	if err != nil {
		t.Fatalf("CreateMenuItem(%s) error = %v", req.Name, err)
	}
	return item
}

func (env *testEnv) addTable(t *testing.T, name string) *models.Table {
	t.Helper()
	table, err := env.tables.AddTable(CreateTableRequest{Name: name, Capacity: 4})
	if err != nil {
		t.Fatalf("AddTable(%s) error = %v", name, err)
	}
	return table
}

func (env *testEnv) stockOf(t *testing.T, id string) float64 {
	t.Helper()
	item, err := env.inventory.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem(%s) error = %v", id, err)
	}
	return item.Stock
}

func (env *testEnv) tableStatus(t *testing.T, id string) models.TableStatus {
	t.Helper()
	table, err := env.tables.GetTable(id)
	if err != nil {
		t.Fatalf("GetTable(%s) error = %v", id, err)
	}
	return table.Status
}

// dineIn places a dine-in order with quantity units of menuItemID.
func (env *testEnv) dineIn(t *testing.T, tableID, menuItemID string, quantity int) *models.Order {
	t.Helper()
	order, err := env.orders.CreateOrder(CreateOrderRequest{
		OrderType:   string(models.OrderTypeDineIn),
		Destination: models.Destination{TableID: &tableID},
		Items:       []OrderLineRequest{{MenuItemID: menuItemID, Quantity: quantity}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	return order
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func strPtr(s string) *string { return &s }
