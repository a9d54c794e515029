package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

// --- DTOs ---

// CreateTableRequest is used to add a table to the floor.
type CreateTableRequest struct {
	Name     string           `json:"name" binding:"required"`
	Capacity int              `json:"capacity" binding:"required"`
	Position *models.Position `json:"position"`
}

// UpdateTableRequest edits a table. Status is changed through SetStatus only.
type UpdateTableRequest struct {
	Name     *string          `json:"name"`
	Capacity *int             `json:"capacity"`
	Position *models.Position `json:"position"`
}

// UpdateTableStatusRequest is a manual status override.
type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- TableService Interface ---
type TableService interface {
	AddTable(req CreateTableRequest) (*models.Table, error)
	UpdateTable(tableID string, req UpdateTableRequest) (*models.Table, error)
	DeleteTable(tableID string) error
	SetStatus(tableID string, status string) (*models.Table, error)
	GetTable(tableID string) (*models.Table, error)
	ListTables(status *models.TableStatus) ([]models.Table, error)
}

type tableService struct {
	state     *sync.Mutex
	tableRepo repositories.TableRepository
	orderRepo repositories.OrderRepository
	publisher notifications.Publisher
}

// NewTableService creates a new instance of TableService.
func NewTableService(
	state *sync.Mutex,
	tr repositories.TableRepository,
	or repositories.OrderRepository,
	publisher notifications.Publisher,
) TableService {
	return &tableService{state: state, tableRepo: tr, orderRepo: or, publisher: publisher}
}

func (s *tableService) AddTable(req CreateTableRequest) (*models.Table, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: table name is required", ErrValidation)
	}
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}

	s.state.Lock()
	defer s.state.Unlock()

	now := timeNow()
	table := &models.Table{
		Name:      name,
		Capacity:  req.Capacity,
		Status:    models.TableStatusAvailable,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.tableRepo.Create(table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: table '%s' already exists", ErrNameConflict, name)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s.publisher.Publish(notifications.NewEvent(notifications.KindTableSaved, notifications.SeveritySuccess,
		fmt.Sprintf("Mesa '%s' creada", table.Name), map[string]interface{}{"table_id": table.ID}))
	out := table.Clone()
	return &out, nil
}

func (s *tableService) UpdateTable(tableID string, req UpdateTableRequest) (*models.Table, error) {
	s.state.Lock()
	defer s.state.Unlock()

	table, err := s.getTable(tableID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: table name cannot be empty", ErrValidation)
		}
		table.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
		}
		table.Capacity = *req.Capacity
	}
	if req.Position != nil {
		p := *req.Position
		table.Position = &p
	}
	table.UpdatedAt = timeNow()

	if err := s.tableRepo.Update(table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: table '%s' already exists", ErrNameConflict, table.Name)
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	s.publisher.Publish(notifications.NewEvent(notifications.KindTableSaved, notifications.SeverityInfo,
		fmt.Sprintf("Mesa '%s' actualizada", table.Name), map[string]interface{}{"table_id": table.ID}))
	return table, nil
}

// DeleteTable removes a table unless it is occupied.
func (s *tableService) DeleteTable(tableID string) error {
	s.state.Lock()
	defer s.state.Unlock()

	table, err := s.getTable(tableID)
	if err != nil {
		return err
	}
	active, err := activeOrderForTable(s.orderRepo, tableID)
	if err != nil {
		return err
	}
	if table.Status == models.TableStatusOccupied || active != nil {
		return fmt.Errorf("%w: %w: cannot delete table '%s' while it is occupied", ErrValidation, ErrTableOccupied, table.Name)
	}

	if err := s.tableRepo.Delete(tableID); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	utils.LogInfo("Table deleted", map[string]interface{}{"table_id": tableID, "name": table.Name})
	s.publisher.Publish(notifications.NewEvent(notifications.KindTableDeleted, notifications.SeveritySuccess,
		fmt.Sprintf("Mesa '%s' eliminada", table.Name), map[string]interface{}{"table_id": tableID}))
	return nil
}

// SetStatus is the manual override. Only the order engine may mark a table occupied,
// and a table serving an active order cannot be moved off occupied by hand.
func (s *tableService) SetStatus(tableID string, status string) (*models.Table, error) {
	if !models.IsValidTableStatus(status) {
		return nil, fmt.Errorf("%w: invalid table status '%s'", ErrValidation, status)
	}
	newStatus := models.TableStatus(status)
	if newStatus == models.TableStatusOccupied {
		return nil, fmt.Errorf("%w: tables become occupied only when a dine-in order is created", ErrValidation)
	}

	s.state.Lock()
	defer s.state.Unlock()

	table, err := s.getTable(tableID)
	if err != nil {
		return nil, err
	}
	active, err := activeOrderForTable(s.orderRepo, tableID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("%w: %w: table '%s' has active order %s", ErrValidation, ErrTableOccupied, table.Name, active.ID)
	}
	if table.Status == newStatus {
		return table, nil
	}

	previous := table.Status
	table.Status = newStatus
	table.UpdatedAt = timeNow()
	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to update table status: %w", err)
	}
	s.publisher.Publish(notifications.NewEvent(notifications.KindTableStatusChanged, notifications.SeverityInfo,
		fmt.Sprintf("Mesa '%s' ahora está %s", table.Name, table.Status),
		map[string]interface{}{"table_id": table.ID, "from": string(previous), "to": string(table.Status)}))
	return table, nil
}

func (s *tableService) GetTable(tableID string) (*models.Table, error) {
	return s.getTable(tableID)
}

func (s *tableService) getTable(tableID string) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrTableNotFound, tableID)
		}
		return nil, fmt.Errorf("failed to get table %s: %w", tableID, err)
	}
	return table, nil
}

func (s *tableService) ListTables(status *models.TableStatus) ([]models.Table, error) {
	if status != nil && !models.IsValidTableStatus(string(*status)) {
		return nil, fmt.Errorf("%w: invalid table status '%s'", ErrValidation, *status)
	}
	tables, err := s.tableRepo.List()
	if err != nil {
		return nil, err
	}
	if status == nil {
		return tables, nil
	}
	filtered := []models.Table{}
	for _, t := range tables {
		if t.Status == *status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// activeOrderForTable returns the open or ready dine-in order bound to the table, if any.
func activeOrderForTable(orderRepo repositories.OrderRepository, tableID string) (*models.Order, error) {
	orders, err := orderRepo.GetOrders(models.OrderFilters{TableID: &tableID})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for table %s: %w", tableID, err)
	}
	for i := range orders {
		if !orders[i].Status.IsTerminal() {
			return &orders[i], nil
		}
	}
	return nil, nil
}
