package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// InventoryRepository defines the storage operations for inventory items.
type InventoryRepository interface {
	Create(item *models.InventoryItem) (string, error)
	GetByID(itemID string) (*models.InventoryItem, error)
	List() ([]models.InventoryItem, error)
	Update(item *models.InventoryItem) error
}

type inventoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.InventoryItem
}

// NewInventoryRepository creates an empty in-memory InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{items: make(map[string]models.InventoryItem)}
}

func (r *inventoryRepository) Create(item *models.InventoryItem) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return "", ErrDuplicateKey
		}
	}
	if item.ID == "" {
		item.ID = NewID()
	}
	r.items[item.ID] = *item
	return item.ID, nil
}

func (r *inventoryRepository) GetByID(itemID string) (*models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *inventoryRepository) List() ([]models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *inventoryRepository) Update(item *models.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.items {
		if id != item.ID && strings.EqualFold(existing.Name, item.Name) {
			return ErrDuplicateKey
		}
	}
	r.items[item.ID] = *item
	return nil
}
