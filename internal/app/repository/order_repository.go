package repository

import (
	"errors"
	"sync"

	"github.com/threadz/threadz-backend/internal/app/model"
)

// ErrOrderNotFound is returned when no order exists for an ID.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository stores confirmed orders for the lifetime of the
// process so tracking pages can look them up after the cart is gone.
type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id string) (*model.Order, error)
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

func NewOrderRepository() OrderRepository {
	return &orderRepository{
		orders: make(map[string]*model.Order),
	}
}

func (r *orderRepository) Create(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return errors.New("duplicate order id")
	}

	copied := *order
	copied.Items = append([]model.CartItem(nil), order.Items...)
	r.orders[order.ID] = &copied
	return nil
}

func (r *orderRepository) FindByID(id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}

	copied := *order
	copied.Items = append([]model.CartItem(nil), order.Items...)
	return &copied, nil
}
