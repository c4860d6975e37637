package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadz/threadz-backend/internal/app/service"
	apperrors "github.com/threadz/threadz-backend/internal/errors"
	"github.com/threadz/threadz-backend/internal/middleware"
)

type OrderController struct {
	trackingService service.TrackingService
}

func NewOrderController(trackingService service.TrackingService) *OrderController {
	return &OrderController{
		trackingService: trackingService,
	}
}

// GetTracking returns the delivery timeline for an order
// GET /api/v1/orders/:id/tracking
func (ctrl *OrderController) GetTracking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID := c.Param("id")

	order, milestones, err := ctrl.trackingService.Track(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found for tracking", map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch tracking", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to fetch tracking")
		return
	}

	log.Info("Tracking fetched successfully", map[string]interface{}{
		"order_id": orderID,
	})

	c.JSON(http.StatusOK, gin.H{
		"order":      order,
		"milestones": milestones,
	})
}
