package repositories

import (
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// SaleRepository is the append-only sales history.
type SaleRepository interface {
	Append(sale *models.Sale) (string, error)
	GetByID(saleID string) (*models.Sale, error)
	// List returns sales in the order they were recorded.
	List() ([]models.Sale, error)
	// Recent returns up to n sales, newest first.
	Recent(n int) ([]models.Sale, error)
}

type saleRepository struct {
	mu    sync.RWMutex
	sales []models.Sale
}

// NewSaleRepository creates an empty in-memory SaleRepository.
func NewSaleRepository() SaleRepository {
	return &saleRepository{}
}

func (r *saleRepository) Append(sale *models.Sale) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = NewID()
	}
	r.sales = append(r.sales, sale.Clone())
	return sale.ID, nil
}

func (r *saleRepository) GetByID(saleID string) (*models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sales {
		if s.ID == saleID {
			out := s.Clone()
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *saleRepository) List() ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Sale, len(r.sales))
	for i, s := range r.sales {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *saleRepository) Recent(n int) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Sale{}
	for i := len(r.sales) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.sales[i].Clone())
	}
	return out, nil
}
