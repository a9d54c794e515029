package repositories

import (
	"sort"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// MenuRepository defines the storage operations for menu items and the customization catalog.
type MenuRepository interface {
	Create(item *models.MenuItem) (string, error)
	GetByID(itemID string) (*models.MenuItem, error)
	List() ([]models.MenuItem, error)
	Update(item *models.MenuItem) error
	Delete(itemID string) error

	GetCatalog() models.CustomizationCatalog
	SetCatalog(catalog models.CustomizationCatalog)
}

type menuRepository struct {
	mu      sync.RWMutex
	items   map[string]models.MenuItem
	order   []string // insertion order, used for stable listing
	catalog models.CustomizationCatalog
}

// NewMenuRepository creates an in-memory MenuRepository seeded with the given catalog.
func NewMenuRepository(catalog models.CustomizationCatalog) MenuRepository {
	return &menuRepository{
		items:   make(map[string]models.MenuItem),
		catalog: catalog.Clone(),
	}
}

func (r *menuRepository) Create(item *models.MenuItem) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = NewID()
	}
	if _, exists := r.items[item.ID]; exists {
		return "", ErrDuplicateKey
	}
	r.items[item.ID] = item.Clone()
	r.order = append(r.order, item.ID)
	return item.ID, nil
}

func (r *menuRepository) GetByID(itemID string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	out := item.Clone()
	return &out, nil
}

// List returns menu items grouped by category, keeping insertion order inside a category.
func (r *menuRepository) List() ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id].Clone())
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Category < items[j].Category })
	return items, nil
}

func (r *menuRepository) Update(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *menuRepository) Delete(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.items, itemID)
	for i, id := range r.order {
		if id == itemID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *menuRepository) GetCatalog() models.CustomizationCatalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog.Clone()
}

func (r *menuRepository) SetCatalog(catalog models.CustomizationCatalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = catalog.Clone()
}
