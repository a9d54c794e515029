package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

// CreateDraftRequest starts composing an order.
type CreateDraftRequest struct {
	OrderType string `json:"order_type" binding:"required"`
}

// AddItemRequest appends a menu item to a draft. Customization is optional.
type AddItemRequest struct {
	MenuItemID    string                `json:"menu_item_id" binding:"required"`
	Customization *CustomizationRequest `json:"customization"`
}

// MaxLineQuantity is the largest quantity a single order line may carry.
const MaxLineQuantity = 999

// UpdateItemQuantityRequest changes a line's quantity by Delta.
type UpdateItemQuantityRequest struct {
	Delta int `json:"delta"`
}

// SetFlavorSlotRequest writes a single flavor slot. An empty flavor clears it.
type SetFlavorSlotRequest struct {
	Flavor string `json:"flavor"`
}

// PlaceDraftRequest turns a draft into an open order.
type PlaceDraftRequest struct {
	Destination models.Destination `json:"destination"`
}

// OrderLineRequest is one line of a directly created order.
type OrderLineRequest struct {
	MenuItemID    string                `json:"menu_item_id" binding:"required"`
	Quantity      int                   `json:"quantity"`
	Customization *CustomizationRequest `json:"customization"`
}

// CreateOrderRequest creates an open order in one call.
type CreateOrderRequest struct {
	OrderType   string             `json:"order_type" binding:"required"`
	Destination models.Destination `json:"destination"`
	Items       []OrderLineRequest `json:"items"`
}

// TransitionStatusRequest moves an order to a new status. Completing requires a payment method.
type TransitionStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	PaymentMethod *string `json:"payment_method"`
}

// CompleteSaleRequest takes payment for an order.
type CompleteSaleRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// KitchenTicket is an open order as shown on the kitchen monitor.
type KitchenTicket struct {
	Order          models.Order `json:"order"`
	TableName      string       `json:"table_name,omitempty"`
	ElapsedSeconds int64        `json:"elapsed_seconds"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateDraft(orderType string) (*models.Draft, error)
	GetDraft(draftID string) (*models.Draft, error)
	DiscardDraft(draftID string) error
	AddItem(draftID string, req AddItemRequest) (*models.Draft, error)
	UpdateItemQuantity(draftID, instanceID string, delta int) (*models.Draft, error)
	SetItemCustomization(draftID, instanceID string, req CustomizationRequest) (*models.Draft, error)
	SetFlavorSlot(draftID, instanceID string, slot int, flavor string) (*models.Draft, error)
	PlaceDraft(draftID string, destination models.Destination) (*models.Order, error)

	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetOrder(orderID string) (*models.Order, error)
	ListOrders(filters models.OrderFilters) ([]models.Order, error)
	ActiveOrders() ([]models.Order, error)
	TransitionStatus(orderID string, req TransitionStatusRequest) (*models.Order, *models.Sale, error)
	CompleteSale(orderID string, paymentMethod string) (*models.Sale, error)
	CancelOrder(orderID string) (*models.Order, error)
	KitchenQueue() ([]KitchenTicket, error)
}

// legalTransitions lists the statuses reachable from each non-terminal status.
var legalTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusOpen:  {models.OrderStatusReady, models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusReady: {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// --- orderService Implementation ---
type orderService struct {
	state         *sync.Mutex
	orderRepo     repositories.OrderRepository
	draftRepo     repositories.DraftRepository
	menuRepo      repositories.MenuRepository
	tableRepo     repositories.TableRepository
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.InventoryMovementRepository
	saleRepo      repositories.SaleRepository
	journal       repositories.SaleJournal
	publisher     notifications.Publisher
}

// OrderServiceDeps groups the collaborators of the order engine.
type OrderServiceDeps struct {
	State     *sync.Mutex
	Orders    repositories.OrderRepository
	Drafts    repositories.DraftRepository
	Menu      repositories.MenuRepository
	Tables    repositories.TableRepository
	Inventory repositories.InventoryRepository
	Movements repositories.InventoryMovementRepository
	Sales     repositories.SaleRepository
	Journal   repositories.SaleJournal
	Publisher notifications.Publisher
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(d OrderServiceDeps) OrderService {
	return &orderService{
		state:         d.State,
		orderRepo:     d.Orders,
		draftRepo:     d.Drafts,
		menuRepo:      d.Menu,
		tableRepo:     d.Tables,
		inventoryRepo: d.Inventory,
		movementRepo:  d.Movements,
		saleRepo:      d.Sales,
		journal:       d.Journal,
		publisher:     d.Publisher,
	}
}

// --- Drafts ---

func (s *orderService) CreateDraft(orderType string) (*models.Draft, error) {
	if !models.IsValidOrderType(orderType) {
		return nil, fmt.Errorf("%w: invalid order type '%s'", ErrValidation, orderType)
	}
	now := timeNow()
	draft := &models.Draft{
		OrderType: models.OrderType(orderType),
		Items:     []models.OrderItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.draftRepo.Create(draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (s *orderService) GetDraft(draftID string) (*models.Draft, error) {
	return s.getDraft(draftID)
}

func (s *orderService) getDraft(draftID string) (*models.Draft, error) {
	draft, err := s.draftRepo.GetByID(draftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrDraftNotFound, draftID)
		}
		return nil, fmt.Errorf("failed to get draft %s: %w", draftID, err)
	}
	return draft, nil
}

func (s *orderService) DiscardDraft(draftID string) error {
	if err := s.draftRepo.Delete(draftID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %s", ErrDraftNotFound, draftID)
		}
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	return nil
}

// AddItem appends a snapshot of the menu item with a fresh instance id and quantity 1.
func (s *orderService) AddItem(draftID string, req AddItemRequest) (*models.Draft, error) {
	s.state.Lock()
	defer s.state.Unlock()

	draft, err := s.getDraft(draftID)
	if err != nil {
		return nil, err
	}
	line, err := s.newLine(req.MenuItemID, 1, req.Customization)
	if err != nil {
		return nil, err
	}

	draft.Items = append(draft.Items, line)
	return s.saveDraft(draft)
}

// UpdateItemQuantity adds delta to the line's quantity and removes the line when it drops to zero or below.
func (s *orderService) UpdateItemQuantity(draftID, instanceID string, delta int) (*models.Draft, error) {
	s.state.Lock()
	defer s.state.Unlock()

	draft, err := s.getDraft(draftID)
	if err != nil {
		return nil, err
	}
	idx, err := findLine(draft.Items, instanceID)
	if err != nil {
		return nil, err
	}

	current := draft.Items[idx].Quantity
	if delta > MaxLineQuantity-current {
		return nil, fmt.Errorf("%w: a line can hold at most %d units", ErrValidation, MaxLineQuantity)
	}
	newQuantity := current + delta
	if newQuantity <= 0 {
		draft.Items = append(draft.Items[:idx], draft.Items[idx+1:]...)
	} else {
		draft.Items[idx].Quantity = newQuantity
	}
	return s.saveDraft(draft)
}

func (s *orderService) SetItemCustomization(draftID, instanceID string, req CustomizationRequest) (*models.Draft, error) {
	s.state.Lock()
	defer s.state.Unlock()

	draft, err := s.getDraft(draftID)
	if err != nil {
		return nil, err
	}
	idx, err := findLine(draft.Items, instanceID)
	if err != nil {
		return nil, err
	}

	custom, err := buildCustomization(draft.Items[idx].MenuItem, s.menuRepo.GetCatalog(), req)
	if err != nil {
		return nil, err
	}
	draft.Items[idx].Customization = custom
	return s.saveDraft(draft)
}

// SetFlavorSlot writes one flavor slot; slot is zero based.
func (s *orderService) SetFlavorSlot(draftID, instanceID string, slot int, flavor string) (*models.Draft, error) {
	s.state.Lock()
	defer s.state.Unlock()

	draft, err := s.getDraft(draftID)
	if err != nil {
		return nil, err
	}
	idx, err := findLine(draft.Items, instanceID)
	if err != nil {
		return nil, err
	}

	custom, err := setFlavorSlot(draft.Items[idx], s.menuRepo.GetCatalog(), slot, flavor)
	if err != nil {
		return nil, err
	}
	draft.Items[idx].Customization = custom
	return s.saveDraft(draft)
}

// PlaceDraft creates an open order from the draft and discards the draft.
func (s *orderService) PlaceDraft(draftID string, destination models.Destination) (*models.Order, error) {
	s.state.Lock()
	defer s.state.Unlock()

	draft, err := s.getDraft(draftID)
	if err != nil {
		return nil, err
	}
	order, err := s.createOrderLocked(draft.OrderType, destination, draft.Items)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Delete(draftID); err != nil {
		utils.LogError(err, "Failed to remove placed draft", map[string]interface{}{"draft_id": draftID})
	}
	return order, nil
}

func (s *orderService) saveDraft(draft *models.Draft) (*models.Draft, error) {
	draft.UpdatedAt = timeNow()
	if err := s.draftRepo.Update(draft); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrDraftNotFound, draft.ID)
		}
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return draft, nil
}

func (s *orderService) newLine(menuItemID string, quantity int, custom *CustomizationRequest) (models.OrderItem, error) {
	menuItem, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.OrderItem{}, fmt.Errorf("%w: id %s", ErrMenuItemNotFound, menuItemID)
		}
		return models.OrderItem{}, fmt.Errorf("failed to get menu item %s: %w", menuItemID, err)
	}

	customization := defaultCustomization(*menuItem)
	if custom != nil {
		customization, err = buildCustomization(*menuItem, s.menuRepo.GetCatalog(), *custom)
		if err != nil {
			return models.OrderItem{}, err
		}
	}
	return models.OrderItem{
		MenuItem:      menuItem.Clone(),
		InstanceID:    repositories.NewID(),
		Quantity:      quantity,
		Customization: customization,
	}, nil
}

func findLine(items []models.OrderItem, instanceID string) (int, error) {
	for i := range items {
		if items[i].InstanceID == instanceID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: instance %s", ErrOrderItemNotFound, instanceID)
}

// --- Orders ---

func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if !models.IsValidOrderType(req.OrderType) {
		return nil, fmt.Errorf("%w: invalid order type '%s'", ErrValidation, req.OrderType)
	}

	s.state.Lock()
	defer s.state.Unlock()

	items := make([]models.OrderItem, 0, len(req.Items))
	for i, lineReq := range req.Items {
		quantity := lineReq.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: item %d has a negative quantity", ErrValidation, i+1)
		}
		if quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: item %d exceeds %d units", ErrValidation, i+1, MaxLineQuantity)
		}
		line, err := s.newLine(lineReq.MenuItemID, quantity, lineReq.Customization)
		if err != nil {
			return nil, err
		}
		items = append(items, line)
	}
	return s.createOrderLocked(models.OrderType(req.OrderType), req.Destination, items)
}

// validateDestination checks that exactly the fields required by the order type are present.
func validateDestination(orderType models.OrderType, dest models.Destination) (models.Destination, error) {
	out := models.Destination{}
	switch orderType {
	case models.OrderTypeDineIn:
		if dest.Delivery != nil || dest.ToGo != nil {
			return out, fmt.Errorf("%w: a dine-in order takes only a table", ErrValidation)
		}
		if dest.TableID == nil || strings.TrimSpace(*dest.TableID) == "" {
			return out, fmt.Errorf("%w: a table is required for dine-in orders", ErrValidation)
		}
		id := strings.TrimSpace(*dest.TableID)
		out.TableID = &id
	case models.OrderTypeDelivery:
		if dest.TableID != nil || dest.ToGo != nil {
			return out, fmt.Errorf("%w: a delivery order takes only delivery info", ErrValidation)
		}
		if dest.Delivery == nil {
			return out, fmt.Errorf("%w: delivery info is required", ErrValidation)
		}
		info := models.DeliveryInfo{
			Name:    strings.TrimSpace(dest.Delivery.Name),
			Phone:   strings.TrimSpace(dest.Delivery.Phone),
			Address: strings.TrimSpace(dest.Delivery.Address),
		}
		if info.Name == "" || info.Phone == "" || info.Address == "" {
			return out, fmt.Errorf("%w: delivery orders need name, phone and address", ErrValidation)
		}
		out.Delivery = &info
	case models.OrderTypeToGo:
		if dest.TableID != nil || dest.Delivery != nil {
			return out, fmt.Errorf("%w: a to-go order takes only pickup info", ErrValidation)
		}
		if dest.ToGo == nil || strings.TrimSpace(dest.ToGo.Name) == "" {
			return out, fmt.Errorf("%w: a customer name is required for to-go orders", ErrValidation)
		}
		info := models.ToGoInfo{Name: strings.TrimSpace(dest.ToGo.Name), Phone: strings.TrimSpace(dest.ToGo.Phone)}
		out.ToGo = &info
	default:
		return out, fmt.Errorf("%w: invalid order type '%s'", ErrValidation, orderType)
	}
	return out, nil
}

// createOrderLocked validates everything before the first write. Callers hold the state lock.
func (s *orderService) createOrderLocked(orderType models.OrderType, destination models.Destination, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}
	dest, err := validateDestination(orderType, destination)
	if err != nil {
		return nil, err
	}

	var table *models.Table
	if orderType == models.OrderTypeDineIn {
		table, err = s.tableRepo.GetByID(*dest.TableID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %s", ErrTableNotFound, *dest.TableID)
			}
			return nil, fmt.Errorf("failed to get table: %w", err)
		}
		if table.Status != models.TableStatusAvailable {
			return nil, fmt.Errorf("%w: %w: table '%s' is %s", ErrValidation, ErrTableNotAvailable, table.Name, table.Status)
		}
		if active, err := activeOrderForTable(s.orderRepo, table.ID); err != nil {
			return nil, err
		} else if active != nil {
			return nil, fmt.Errorf("%w: %w: table '%s' already has order %s", ErrValidation, ErrTableNotAvailable, table.Name, active.ID)
		}
	}

	now := timeNow()
	order := &models.Order{
		ID:          repositories.NewID(),
		OrderType:   orderType,
		Destination: dest,
		Items:       models.CloneOrderItems(items),
		Status:      models.OrderStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if table != nil {
		table.Status = models.TableStatusOccupied
		table.UpdatedAt = now
		if err := s.tableRepo.Update(table); err != nil {
			if delErr := s.orderRepo.DeleteOrder(order.ID); delErr != nil {
				utils.LogError(delErr, "Failed to roll back order after table update failure", map[string]interface{}{"order_id": order.ID})
			}
			return nil, fmt.Errorf("failed to occupy table: %w", err)
		}
	}

	utils.LogInfo("Order created", map[string]interface{}{
		"order_id": order.ID, "order_type": string(order.OrderType), "items": len(order.Items),
	})
	s.publisher.Publish(notifications.NewEvent(notifications.KindOrderCreated, notifications.SeveritySuccess,
		"Orden creada con éxito", map[string]interface{}{
			"order_id": order.ID, "order_type": string(order.OrderType), "total": order.Total().String(),
		}))
	return order, nil
}

func (s *orderService) GetOrder(orderID string) (*models.Order, error) {
	return s.getOrder(orderID)
}

func (s *orderService) getOrder(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(filters models.OrderFilters) ([]models.Order, error) {
	if filters.OrderType != nil && !models.IsValidOrderType(string(*filters.OrderType)) {
		return nil, fmt.Errorf("%w: invalid order type '%s'", ErrValidation, *filters.OrderType)
	}
	if filters.Status != nil && !models.IsValidOrderStatus(string(*filters.Status)) {
		return nil, fmt.Errorf("%w: invalid order status '%s'", ErrValidation, *filters.Status)
	}
	return s.orderRepo.GetOrders(filters)
}

// ActiveOrders returns open and ready orders, oldest first.
func (s *orderService) ActiveOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{})
	if err != nil {
		return nil, err
	}
	active := []models.Order{}
	for _, o := range orders {
		if !o.Status.IsTerminal() {
			active = append(active, o)
		}
	}
	return active, nil
}

// TransitionStatus applies a status change. Reaching completed runs CompleteSale and returns the sale.
func (s *orderService) TransitionStatus(orderID string, req TransitionStatusRequest) (*models.Order, *models.Sale, error) {
	if !models.IsValidOrderStatus(req.Status) {
		return nil, nil, fmt.Errorf("%w: invalid order status '%s'", ErrValidation, req.Status)
	}

	switch target := models.OrderStatus(req.Status); target {
	case models.OrderStatusCompleted:
		if req.PaymentMethod == nil || *req.PaymentMethod == "" {
			return nil, nil, fmt.Errorf("%w: a payment method is required to complete an order", ErrValidation)
		}
		sale, err := s.CompleteSale(orderID, *req.PaymentMethod)
		if err != nil {
			return nil, nil, err
		}
		order := sale.Order.Clone()
		return &order, sale, nil
	case models.OrderStatusCancelled:
		order, err := s.CancelOrder(orderID)
		return order, nil, err
	default:
		order, err := s.moveTo(orderID, target)
		return order, nil, err
	}
}

// moveTo handles transitions without side effects on other entities.
func (s *orderService) moveTo(orderID string, target models.OrderStatus) (*models.Order, error) {
	s.state.Lock()
	defer s.state.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	order.Status = target
	order.UpdatedAt = timeNow()
	if err := s.orderRepo.UpdateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if target == models.OrderStatusReady {
		s.publisher.Publish(notifications.NewEvent(notifications.KindOrderReady, notifications.SeverityInfo,
			fmt.Sprintf("Orden %s marcada como lista!", shortID(order.ID)),
			map[string]interface{}{"order_id": order.ID, "order_type": string(order.OrderType)}))
	}
	return order, nil
}

// CompleteSale takes payment for an open or ready order: it deducts recipe stock (saturating at zero),
// records the sale, removes the order and releases its table. Everything is checked before the first
// write, so either all of it happens or none of it does. Completing the same order twice fails with
// ErrOrderNotFound.
func (s *orderService) CompleteSale(orderID string, paymentMethod string) (*models.Sale, error) {
	if !models.IsValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: invalid payment method '%s'", ErrValidation, paymentMethod)
	}

	s.state.Lock()
	defer s.state.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, models.OrderStatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusCompleted)
	}

	now := timeNow()
	snapshot := order.Clone()
	snapshot.Status = models.OrderStatusCompleted
	snapshot.UpdatedAt = now

	sale := &models.Sale{
		ID:            repositories.NewID(),
		Order:         snapshot,
		Total:         snapshot.Total(),
		Timestamp:     now,
		PaymentMethod: models.PaymentMethod(paymentMethod),
	}

	changes, err := s.planDeductions(snapshot, sale.ID)
	if err != nil {
		return nil, err
	}
	movements := make([]models.InventoryMovement, len(changes))
	for i, c := range changes {
		movements[i] = c.movement
	}

	if err := s.journal.RecordSale(sale, movements); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	// Nothing below can fail on the in-memory store while the state lock is held.
	for _, c := range changes {
		if err := applyStockChange(s.inventoryRepo, s.movementRepo, c); err != nil {
			utils.LogError(err, "Failed to apply stock deduction", map[string]interface{}{"sale_id": sale.ID})
		}
	}
	if _, err := s.saleRepo.Append(sale); err != nil {
		utils.LogError(err, "Failed to append sale", map[string]interface{}{"sale_id": sale.ID})
	}
	if err := s.orderRepo.DeleteOrder(order.ID); err != nil {
		utils.LogError(err, "Failed to remove completed order", map[string]interface{}{"order_id": order.ID})
	}
	s.releaseTable(order)

	utils.LogInfo("Sale completed", map[string]interface{}{
		"sale_id": sale.ID, "order_id": order.ID, "total": sale.Total.String(), "payment_method": paymentMethod,
	})
	s.publisher.Publish(notifications.NewEvent(notifications.KindSaleCompleted, notifications.SeveritySuccess,
		"Venta completada con éxito", map[string]interface{}{
			"sale_id": sale.ID, "order_id": order.ID, "total": sale.Total.String(), "payment_method": paymentMethod,
		}))
	for _, c := range changes {
		publishStockAlerts(s.publisher, c)
	}

	out := sale.Clone()
	return &out, nil
}

// planDeductions sums recipe consumption per inventory item, in first-use order.
// The current recipe of the menu item is used; lines whose menu item was deleted fall back to their snapshot.
func (s *orderService) planDeductions(order models.Order, saleID string) ([]stockChange, error) {
	totals := map[string]float64{}
	var ids []string
	for _, line := range order.Items {
		recipe := line.Recipe
		if current, err := s.menuRepo.GetByID(line.ID); err == nil {
			recipe = current.Recipe
		}
		for _, ing := range recipe {
			if _, seen := totals[ing.InventoryItemID]; !seen {
				ids = append(ids, ing.InventoryItemID)
			}
			totals[ing.InventoryItemID] += ing.Quantity * float64(line.Quantity)
		}
	}

	changes := make([]stockChange, 0, len(ids))
	for _, invID := range ids {
		item, err := s.inventoryRepo.GetByID(invID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				utils.LogWarn("Recipe references missing inventory item, skipping deduction", map[string]interface{}{
					"inventory_item_id": invID, "sale_id": saleID,
				})
				continue
			}
			return nil, fmt.Errorf("failed to read inventory item %s: %w", invID, err)
		}
		changes = append(changes, planStockChange(*item, models.MovementTypeSale, -totals[invID], &saleID, nil))
	}
	return changes, nil
}

// CancelOrder moves an open or ready order to cancelled and frees its table. Stock is not touched.
func (s *orderService) CancelOrder(orderID string) (*models.Order, error) {
	s.state.Lock()
	defer s.state.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, models.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusCancelled)
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = timeNow()
	if err := s.orderRepo.UpdateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	s.releaseTable(order)

	s.publisher.Publish(notifications.NewEvent(notifications.KindOrderCancelled, notifications.SeverityWarning,
		fmt.Sprintf("Orden %s cancelada", shortID(order.ID)), map[string]interface{}{"order_id": order.ID}))
	return order, nil
}

// releaseTable marks the order's table available once no other active order uses it.
func (s *orderService) releaseTable(order *models.Order) {
	if order.OrderType != models.OrderTypeDineIn || order.Destination.TableID == nil {
		return
	}
	tableID := *order.Destination.TableID
	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		utils.LogWarn("Table of finished order not found", map[string]interface{}{"table_id": tableID, "order_id": order.ID})
		return
	}
	active, err := activeOrderForTable(s.orderRepo, tableID)
	if err != nil {
		utils.LogError(err, "Failed to check table orders", map[string]interface{}{"table_id": tableID})
		return
	}
	if active != nil && active.ID != order.ID {
		return
	}
	if table.Status == models.TableStatusAvailable {
		return
	}
	table.Status = models.TableStatusAvailable
	table.UpdatedAt = timeNow()
	if err := s.tableRepo.Update(table); err != nil {
		utils.LogError(err, "Failed to release table", map[string]interface{}{"table_id": tableID})
	}
}

// KitchenQueue lists open orders oldest first with the time they have been waiting.
func (s *orderService) KitchenQueue() ([]KitchenTicket, error) {
	status := models.OrderStatusOpen
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{Status: &status})
	if err != nil {
		return nil, err
	}
	now := timeNow()
	tickets := make([]KitchenTicket, 0, len(orders))
	for _, o := range orders {
		t := KitchenTicket{Order: o, ElapsedSeconds: int64(now.Sub(o.CreatedAt) / time.Second)}
		if o.Destination.TableID != nil {
			if table, err := s.tableRepo.GetByID(*o.Destination.TableID); err == nil {
				t.TableName = table.Name
			}
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// shortID is the tail of an id as printed on tickets.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
