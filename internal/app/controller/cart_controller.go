package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/service"
	apperrors "github.com/threadz/threadz-backend/internal/errors"
	"github.com/threadz/threadz-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCartRequest covers both ways into the cart: a catalog product
// reference (product_id) or a full design item payload. Exactly one of
// the two shapes must be supplied.
type AddToCartRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Item      *model.CartItem `json:"item"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to cart request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	items := ctrl.cartService.GetItems(sessionID)
	total := model.CartTotal(items)

	log.Info("Cart fetched successfully", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
		"total":      total,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
		"total": total,
	})
}

// AddToCart adds a catalog product or a generated design to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to cart request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.ProductID == "" && req.Item == nil {
		log.Warn("Add to cart request names neither product nor item", map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Provide a product_id or an item")
		return
	}

	var err error
	if req.ProductID != "" {
		log.Debug("Adding catalog product to cart", map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		})
		err = ctrl.cartService.AddProduct(sessionID, req.ProductID, req.Quantity)
	} else {
		log.Debug("Adding item to cart", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    req.Item.ID,
			"quantity":   req.Item.Quantity,
		})
		err = ctrl.cartService.AddItem(sessionID, *req.Item)
	}

	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"session_id": sessionID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item payload missing an ID", map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Item must have an id")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	items := ctrl.cartService.GetItems(sessionID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
		"items":   items,
		"total":   model.CartTotal(items),
	})
}

// UpdateCartItem updates a cart item's quantity
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to cart request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	itemID := c.Param("id")

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(sessionID, itemID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for update", map[string]interface{}{
				"session_id": sessionID,
				"item_id":    itemID,
			})
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
		})
		apperrors.InternalError(c, "Failed to update cart item")
		return
	}

	log.Info("Cart item updated successfully", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    itemID,
		"quantity":   req.Quantity,
	})

	items := ctrl.cartService.GetItems(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"items":   items,
		"total":   model.CartTotal(items),
	})
}

// RemoveFromCart removes an item from the cart. Removing an item that
// is not in the cart is fine and returns the cart unchanged.
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to cart request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	itemID := c.Param("id")

	ctrl.cartService.RemoveItem(sessionID, itemID)

	items := ctrl.cartService.GetItems(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
		"items":   items,
		"total":   model.CartTotal(items),
	})
}

// ClearCart empties the session's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to cart request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	ctrl.cartService.Clear(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
