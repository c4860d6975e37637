package service

import (
	"errors"

	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/pkg/logger"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartService owns the session cart: merge-by-id additions, quantity
// updates, removal and the derived total. The total is recomputed from
// the rows on every read, never cached.
type CartService interface {
	GetItems(sessionID string) []model.CartItem
	Total(sessionID string) int
	AddItem(sessionID string, item model.CartItem) error
	AddProduct(sessionID, productID string, quantity int) error
	UpdateQuantity(sessionID, itemID string, quantity int) error
	RemoveItem(sessionID, itemID string)
	Clear(sessionID string)
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  CatalogService
}

func NewCartService(cartRepo repository.CartRepository, catalog CatalogService) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

func (s *cartService) GetItems(sessionID string) []model.CartItem {
	return s.cartRepo.FindBySessionID(sessionID)
}

func (s *cartService) Total(sessionID string) int {
	return model.CartTotal(s.cartRepo.FindBySessionID(sessionID))
}

// AddItem merges by item ID: an existing row has the quantity summed
// onto it, otherwise the item is appended as a new row.
func (s *cartService) AddItem(sessionID string, item model.CartItem) error {
	if item.ID == "" {
		return ErrCartItemNotFound
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	if existing, ok := s.cartRepo.FindItem(sessionID, item.ID); ok {
		existing.Quantity += item.Quantity
		s.cartRepo.Update(sessionID, *existing)
		logger.Debug("Merged cart item", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    item.ID,
			"quantity":   existing.Quantity,
		})
		return nil
	}

	s.cartRepo.Append(sessionID, item)
	logger.Info("Cart item added", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    item.ID,
		"quantity":   item.Quantity,
	})
	return nil
}

// AddProduct resolves a catalog product and adds it to the cart.
func (s *cartService) AddProduct(sessionID, productID string, quantity int) error {
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return err
	}

	return s.AddItem(sessionID, model.CartItem{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.Image,
		Quantity:  quantity,
		Kind:      model.ItemKindCatalog,
	})
}

// UpdateQuantity sets the quantity for an existing row. Values below 1
// are clamped to 1: decrementing at quantity 1 is a no-op, it never
// removes or zeroes the row.
func (s *cartService) UpdateQuantity(sessionID, itemID string, quantity int) error {
	item, ok := s.cartRepo.FindItem(sessionID, itemID)
	if !ok {
		logger.Warn("Cart item not found for update", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
		})
		return ErrCartItemNotFound
	}

	if quantity < 1 {
		quantity = 1
	}

	item.Quantity = quantity
	s.cartRepo.Update(sessionID, *item)
	logger.Debug("Cart item quantity updated", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    itemID,
		"quantity":   quantity,
	})
	return nil
}

// RemoveItem removes the row if present; a missing row is a no-op.
func (s *cartService) RemoveItem(sessionID, itemID string) {
	if s.cartRepo.Delete(sessionID, itemID) {
		logger.Info("Cart item removed", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
		})
	}
}

func (s *cartService) Clear(sessionID string) {
	s.cartRepo.DeleteBySessionID(sessionID)
	logger.Info("Cart cleared", map[string]interface{}{
		"session_id": sessionID,
	})
}
