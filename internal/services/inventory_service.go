package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

// --- DTOs ---

// CreateInventoryItemRequest is used to add an ingredient to the inventory.
type CreateInventoryItemRequest struct {
	Name           string  `json:"name" binding:"required"`
	Stock          float64 `json:"stock"`
	Unit           string  `json:"unit" binding:"required"`
	CostPerUnit    float64 `json:"cost_per_unit"`
	AlertThreshold float64 `json:"alert_threshold"`
}

// UpdateInventoryItemRequest edits an ingredient. Nil fields are left unchanged.
type UpdateInventoryItemRequest struct {
	Name           *string  `json:"name"`
	Stock          *float64 `json:"stock"`
	Unit           *string  `json:"unit"`
	CostPerUnit    *float64 `json:"cost_per_unit"`
	AlertThreshold *float64 `json:"alert_threshold"`
}

// AdjustStockRequest is a manual stock adjustment. In "add" mode Value may be negative (waste, loss).
type AdjustStockRequest struct {
	Mode   string  `json:"mode" binding:"required"`
	Value  float64 `json:"value"`
	Reason *string `json:"reason"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	AddItem(req CreateInventoryItemRequest) (*models.InventoryItem, error)
	UpdateItem(itemID string, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	GetItem(itemID string) (*models.InventoryItem, error)
	ListItems() ([]models.InventoryItem, error)
	LowStock() ([]models.InventoryItem, error)
	AdjustStock(itemID string, req AdjustStockRequest) (*models.InventoryItem, error)
	Deduct(itemID string, amount float64, reference string) (*models.InventoryItem, error)
	GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, error)
}

type inventoryService struct {
	state     *sync.Mutex
	itemRepo  repositories.InventoryRepository
	mvRepo    repositories.InventoryMovementRepository
	journal   repositories.SaleJournal
	publisher notifications.Publisher
}

// NewInventoryService creates a new instance of InventoryService.
// state is the lock shared with the other services that mutate stock.
func NewInventoryService(
	state *sync.Mutex,
	ir repositories.InventoryRepository,
	mr repositories.InventoryMovementRepository,
	journal repositories.SaleJournal,
	publisher notifications.Publisher,
) InventoryService {
	return &inventoryService{state: state, itemRepo: ir, mvRepo: mr, journal: journal, publisher: publisher}
}

func validateQuantity(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrValidation, field)
	}
	return nil
}

func (s *inventoryService) AddItem(req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !models.IsValidInventoryUnit(req.Unit) {
		return nil, fmt.Errorf("%w: unsupported unit '%s'", ErrValidation, req.Unit)
	}
	for field, v := range map[string]float64{"stock": req.Stock, "cost_per_unit": req.CostPerUnit, "alert_threshold": req.AlertThreshold} {
		if err := validateQuantity(field, v); err != nil {
			return nil, err
		}
		if v < 0 && field != "stock" {
			return nil, fmt.Errorf("%w: %s cannot be negative", ErrValidation, field)
		}
	}

	s.state.Lock()
	defer s.state.Unlock()

	if err := s.checkNameFree(name, ""); err != nil {
		return nil, err
	}

	now := timeNow()
	item := &models.InventoryItem{
		Name:           name,
		Stock:          math.Max(req.Stock, 0),
		Unit:           models.InventoryUnit(req.Unit),
		CostPerUnit:    req.CostPerUnit,
		AlertThreshold: req.AlertThreshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	item.ID = repositories.NewID()

	initial := models.InventoryMovement{
		ID:              repositories.NewID(),
		InventoryItemID: item.ID,
		MovementType:    models.MovementTypeInitial,
		Requested:       req.Stock,
		Quantity:        item.Stock,
		NewStock:        item.Stock,
		MovementDate:    now,
	}
	if err := s.journal.RecordMovement(&initial); err != nil {
		return nil, fmt.Errorf("failed to journal initial stock: %w", err)
	}

	if _, err := s.itemRepo.Create(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: inventory item '%s' already exists", ErrNameConflict, name)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	if _, err := s.mvRepo.CreateMovement(&initial); err != nil {
		return nil, fmt.Errorf("failed to record initial movement: %w", err)
	}

	utils.LogInfo("Inventory item added", map[string]interface{}{"item_id": item.ID, "name": item.Name})
	s.publisher.Publish(notifications.NewEvent(notifications.KindInventoryItemAdded, notifications.SeveritySuccess,
		fmt.Sprintf("Ingrediente '%s' añadido al inventario", item.Name),
		map[string]interface{}{"inventory_item_id": item.ID}))
	return item, nil
}

func (s *inventoryService) UpdateItem(itemID string, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	s.state.Lock()
	defer s.state.Unlock()

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		if err := s.checkNameFree(name, item.ID); err != nil {
			return nil, err
		}
		item.Name = name
	}
	if req.Unit != nil {
		if !models.IsValidInventoryUnit(*req.Unit) {
			return nil, fmt.Errorf("%w: unsupported unit '%s'", ErrValidation, *req.Unit)
		}
		item.Unit = models.InventoryUnit(*req.Unit)
	}
	if req.CostPerUnit != nil {
		if err := validateQuantity("cost_per_unit", *req.CostPerUnit); err != nil {
			return nil, err
		}
		if *req.CostPerUnit < 0 {
			return nil, fmt.Errorf("%w: cost_per_unit cannot be negative", ErrValidation)
		}
		item.CostPerUnit = *req.CostPerUnit
	}
	if req.AlertThreshold != nil {
		if err := validateQuantity("alert_threshold", *req.AlertThreshold); err != nil {
			return nil, err
		}
		if *req.AlertThreshold < 0 {
			return nil, fmt.Errorf("%w: alert_threshold cannot be negative", ErrValidation)
		}
		item.AlertThreshold = *req.AlertThreshold
	}

	var change *stockChange
	if req.Stock != nil {
		if err := validateQuantity("stock", *req.Stock); err != nil {
			return nil, err
		}
		if *req.Stock != item.Stock {
			c := planStockChange(*item, models.MovementTypeSet, *req.Stock, nil, utils.NewNullString("direct edit"))
			change = &c
			item.Stock = c.item.Stock
		}
	}
	item.UpdatedAt = timeNow()

	if change != nil {
		if err := s.journal.RecordMovement(&change.movement); err != nil {
			return nil, fmt.Errorf("failed to journal stock edit: %w", err)
		}
	}
	if err := s.itemRepo.Update(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: inventory item '%s' already exists", ErrNameConflict, item.Name)
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	if change != nil {
		if _, err := s.mvRepo.CreateMovement(&change.movement); err != nil {
			return nil, fmt.Errorf("failed to record movement: %w", err)
		}
		s.notifyStockChange(*change)
	}
	return item, nil
}

func (s *inventoryService) checkNameFree(name, exceptID string) error {
	items, err := s.itemRepo.List()
	if err != nil {
		return fmt.Errorf("failed to list inventory: %w", err)
	}
	for _, it := range items {
		if it.ID != exceptID && strings.EqualFold(it.Name, name) {
			return fmt.Errorf("%w: inventory item '%s' already exists", ErrNameConflict, name)
		}
	}
	return nil
}

func (s *inventoryService) GetItem(itemID string) (*models.InventoryItem, error) {
	return s.getItem(itemID)
}

func (s *inventoryService) getItem(itemID string) (*models.InventoryItem, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrInventoryItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get inventory item %s: %w", itemID, err)
	}
	return item, nil
}

func (s *inventoryService) ListItems() ([]models.InventoryItem, error) {
	return s.itemRepo.List()
}

func (s *inventoryService) LowStock() ([]models.InventoryItem, error) {
	items, err := s.itemRepo.List()
	if err != nil {
		return nil, err
	}
	low := []models.InventoryItem{}
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

// AdjustStock applies a manual add/set adjustment. The result is clamped at zero.
func (s *inventoryService) AdjustStock(itemID string, req AdjustStockRequest) (*models.InventoryItem, error) {
	if err := validateQuantity("value", req.Value); err != nil {
		return nil, err
	}
	mode := models.StockAdjustMode(strings.ToLower(req.Mode))
	if mode != models.AdjustModeAdd && mode != models.AdjustModeSet {
		return nil, fmt.Errorf("%w: mode must be 'add' or 'set', got '%s'", ErrValidation, req.Mode)
	}

	s.state.Lock()
	defer s.state.Unlock()

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}

	var change stockChange
	if mode == models.AdjustModeSet {
		change = planStockChange(*item, models.MovementTypeSet, req.Value, nil, req.Reason)
	} else {
		change = planStockChange(*item, models.MovementTypeAdjustment, req.Value, nil, req.Reason)
	}

	if err := s.journal.RecordMovement(&change.movement); err != nil {
		return nil, fmt.Errorf("failed to journal stock adjustment: %w", err)
	}
	if err := applyStockChange(s.itemRepo, s.mvRepo, change); err != nil {
		return nil, err
	}
	s.notifyStockChange(change)

	out := change.item
	return &out, nil
}

// Deduct removes amount from the item's stock, saturating at zero.
func (s *inventoryService) Deduct(itemID string, amount float64, reference string) (*models.InventoryItem, error) {
	if err := validateQuantity("amount", amount); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: deduction amount cannot be negative", ErrValidation)
	}

	s.state.Lock()
	defer s.state.Unlock()

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}
	change := planStockChange(*item, models.MovementTypeSale, -amount, utils.NewNullString(reference), nil)
	if err := s.journal.RecordMovement(&change.movement); err != nil {
		return nil, fmt.Errorf("failed to journal deduction: %w", err)
	}
	if err := applyStockChange(s.itemRepo, s.mvRepo, change); err != nil {
		return nil, err
	}
	s.notifyStockChange(change)

	out := change.item
	return &out, nil
}

func (s *inventoryService) GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, error) {
	if filters.MovementType != nil {
		switch *filters.MovementType {
		case models.MovementTypeSale, models.MovementTypeAdjustment, models.MovementTypeSet, models.MovementTypeInitial:
		default:
			return nil, fmt.Errorf("%w: unknown movement type '%s'", ErrValidation, *filters.MovementType)
		}
	}
	return s.mvRepo.GetMovements(filters)
}

func (s *inventoryService) notifyStockChange(c stockChange) {
	s.publisher.Publish(notifications.NewEvent(notifications.KindStockAdjusted, notifications.SeverityInfo,
		fmt.Sprintf("Stock de '%s' actualizado a %.2f %s", c.item.Name, c.item.Stock, c.item.Unit),
		map[string]interface{}{"inventory_item_id": c.item.ID, "previous_stock": c.movement.PreviousStock, "new_stock": c.item.Stock}))
	publishStockAlerts(s.publisher, c)
}

// --- stock change helpers shared with the order engine ---

// stockChange is a planned, clamped change of one item's stock and the movement recording it.
type stockChange struct {
	item     models.InventoryItem
	movement models.InventoryMovement
}

// shortfall reports whether the change asked to remove more than was in stock.
func (c stockChange) shortfall() bool {
	return c.movement.MovementType == models.MovementTypeSale && -c.movement.Requested > c.movement.PreviousStock
}

// crossedThreshold reports whether the change took the item from above its alert threshold to at or below it.
func (c stockChange) crossedThreshold() bool {
	return c.movement.PreviousStock > c.item.AlertThreshold && c.item.IsLowStock()
}

// planStockChange computes the new stock without touching storage.
// For MovementTypeSet value is the target stock, otherwise it is a delta. The result never goes below zero.
func planStockChange(item models.InventoryItem, mvType models.MovementType, value float64, reference, reason *string) stockChange {
	previous := item.Stock
	next := previous + value
	if mvType == models.MovementTypeSet {
		next = value
	}
	if next < 0 {
		next = 0
	}

	now := timeNow()
	item.Stock = next
	item.UpdatedAt = now

	return stockChange{
		item: item,
		movement: models.InventoryMovement{
			ID:              repositories.NewID(),
			InventoryItemID: item.ID,
			MovementType:    mvType,
			Requested:       value,
			Quantity:        next - previous,
			PreviousStock:   previous,
			NewStock:        next,
			Reference:       reference,
			Reason:          reason,
			MovementDate:    now,
		},
	}
}

// applyStockChange stores a planned change. Callers hold the state lock.
func applyStockChange(itemRepo repositories.InventoryRepository, mvRepo repositories.InventoryMovementRepository, c stockChange) error {
	item := c.item
	if err := itemRepo.Update(&item); err != nil {
		return fmt.Errorf("failed to update stock for %s: %w", item.ID, err)
	}
	mv := c.movement
	if _, err := mvRepo.CreateMovement(&mv); err != nil {
		return fmt.Errorf("failed to record movement for %s: %w", item.ID, err)
	}
	return nil
}

func publishStockAlerts(publisher notifications.Publisher, c stockChange) {
	if c.shortfall() {
		publisher.Publish(notifications.NewEvent(notifications.KindStockShortfall, notifications.SeverityWarning,
			fmt.Sprintf("Stock insuficiente de '%s': se pidieron %.2f %s y solo había %.2f", c.item.Name, -c.movement.Requested, c.item.Unit, c.movement.PreviousStock),
			map[string]interface{}{"inventory_item_id": c.item.ID, "requested": -c.movement.Requested, "available": c.movement.PreviousStock}))
	}
	if c.crossedThreshold() {
		publisher.Publish(notifications.NewEvent(notifications.KindLowStock, notifications.SeverityWarning,
			fmt.Sprintf("Stock bajo de '%s': quedan %.2f %s", c.item.Name, c.item.Stock, c.item.Unit),
			map[string]interface{}{"inventory_item_id": c.item.ID, "stock": c.item.Stock, "alert_threshold": c.item.AlertThreshold}))
	}
}
