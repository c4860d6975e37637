package repository

import (
	"sync"

	"github.com/threadz/threadz-backend/internal/app/model"
)

// CartRepository stores cart rows per session in insertion order.
// All operations are keyed by session ID; one session can never see
// another session's rows.
type CartRepository interface {
	FindBySessionID(sessionID string) []model.CartItem
	FindItem(sessionID, itemID string) (*model.CartItem, bool)
	Append(sessionID string, item model.CartItem)
	Update(sessionID string, item model.CartItem) bool
	Delete(sessionID, itemID string) bool
	DeleteBySessionID(sessionID string)
}

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string][]model.CartItem
}

func NewCartRepository() CartRepository {
	return &cartRepository{
		carts: make(map[string][]model.CartItem),
	}
}

func (r *cartRepository) FindBySessionID(sessionID string) []model.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[sessionID]
	copied := make([]model.CartItem, len(items))
	copy(copied, items)
	return copied
}

func (r *cartRepository) FindItem(sessionID, itemID string) (*model.CartItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.carts[sessionID] {
		if item.ID == itemID {
			copied := item
			return &copied, true
		}
	}
	return nil, false
}

func (r *cartRepository) Append(sessionID string, item model.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = append(r.carts[sessionID], item)
}

// Update replaces the row with the same ID, keeping its position.
func (r *cartRepository) Update(sessionID string, item model.CartItem) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[sessionID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return true
		}
	}
	return false
}

func (r *cartRepository) Delete(sessionID, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[sessionID]
	for i := range items {
		if items[i].ID == itemID {
			r.carts[sessionID] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

func (r *cartRepository) DeleteBySessionID(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}
