package repositories

import (
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// InventoryMovementRepository defines the storage operations for stock movements.
// Movements are append-only.
type InventoryMovementRepository interface {
	CreateMovement(movement *models.InventoryMovement) (string, error)
	GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, error)
}

type inventoryMovementRepository struct {
	mu        sync.RWMutex
	movements []models.InventoryMovement
}

// NewInventoryMovementRepository creates an empty in-memory InventoryMovementRepository.
func NewInventoryMovementRepository() InventoryMovementRepository {
	return &inventoryMovementRepository{}
}

func (r *inventoryMovementRepository) CreateMovement(movement *models.InventoryMovement) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if movement.ID == "" {
		movement.ID = NewID()
	}
	r.movements = append(r.movements, *movement)
	return movement.ID, nil
}

// GetMovements returns matching movements, newest first.
func (r *inventoryMovementRepository) GetMovements(filters models.MovementFilters) ([]models.InventoryMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.InventoryMovement{}
	for i := len(r.movements) - 1; i >= 0; i-- {
		mv := r.movements[i]
		if filters.InventoryItemID != nil && mv.InventoryItemID != *filters.InventoryItemID {
			continue
		}
		if filters.MovementType != nil && mv.MovementType != *filters.MovementType {
			continue
		}
		if filters.Reference != nil && (mv.Reference == nil || *mv.Reference != *filters.Reference) {
			continue
		}
		out = append(out, mv)
	}
	return out, nil
}
