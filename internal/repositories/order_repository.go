package repositories

import (
	"sort"
	"sync"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// OrderRepository defines the storage operations for orders.
// Completed orders are removed from it; cancelled orders stay with their terminal status.
type OrderRepository interface {
	CreateOrder(order *models.Order) (string, error)
	GetOrderByID(orderID string) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	UpdateOrder(order *models.Order) error
	DeleteOrder(orderID string) error
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewOrderRepository creates an empty in-memory OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{orders: make(map[string]models.Order)}
}

func (r *orderRepository) CreateOrder(order *models.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = NewID()
	}
	if _, exists := r.orders[order.ID]; exists {
		return "", ErrDuplicateKey
	}
	r.orders[order.ID] = order.Clone()
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	out := order.Clone()
	return &out, nil
}

// GetOrders returns matching orders, oldest first.
func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range r.orders {
		if filters.OrderType != nil && o.OrderType != *filters.OrderType {
			continue
		}
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		if filters.TableID != nil && (o.Destination.TableID == nil || *o.Destination.TableID != *filters.TableID) {
			continue
		}
		orders = append(orders, o.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders, nil
}

func (r *orderRepository) UpdateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return ErrNotFound
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *orderRepository) DeleteOrder(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[orderID]; !ok {
		return ErrNotFound
	}
	delete(r.orders, orderID)
	return nil
}
