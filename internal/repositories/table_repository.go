package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// TableRepository defines the storage operations for restaurant tables.
type TableRepository interface {
	Create(table *models.Table) (string, error)
	GetByID(tableID string) (*models.Table, error)
	List() ([]models.Table, error)
	Update(table *models.Table) error
	Delete(tableID string) error
}

type tableRepository struct {
	mu     sync.RWMutex
	tables map[string]models.Table
}

// NewTableRepository creates an empty in-memory TableRepository.
func NewTableRepository() TableRepository {
	return &tableRepository{tables: make(map[string]models.Table)}
}

func (r *tableRepository) Create(table *models.Table) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tables {
		if strings.EqualFold(existing.Name, table.Name) {
			return "", ErrDuplicateKey
		}
	}
	if table.ID == "" {
		table.ID = NewID()
	}
	r.tables[table.ID] = table.Clone()
	return table.ID, nil
}

func (r *tableRepository) GetByID(tableID string) (*models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[tableID]
	if !ok {
		return nil, ErrNotFound
	}
	out := t.Clone()
	return &out, nil
}

func (r *tableRepository) List() ([]models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]models.Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t.Clone())
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

func (r *tableRepository) Update(table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[table.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.tables {
		if id != table.ID && strings.EqualFold(existing.Name, table.Name) {
			return ErrDuplicateKey
		}
	}
	r.tables[table.ID] = table.Clone()
	return nil
}

func (r *tableRepository) Delete(tableID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[tableID]; !ok {
		return ErrNotFound
	}
	delete(r.tables, tableID)
	return nil
}
