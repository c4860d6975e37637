package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/internal/app/service"
)

func setupOrderControllerTest(t *testing.T) (*gin.Engine, repository.OrderRepository) {
	t.Helper()

	orderRepo := repository.NewOrderRepository()
	trackingService := service.NewTrackingService(orderRepo)
	orderController := NewOrderController(trackingService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders/:id/tracking", orderController.GetTracking)

	return router, orderRepo
}

func TestOrderController_GetTracking_Success(t *testing.T) {
	router, orderRepo := setupOrderControllerTest(t)

	require.NoError(t, orderRepo.Create(&model.Order{
		ID:          "ORDER-ABCD1234",
		Items:       []model.CartItem{{ID: "tee-black", UnitPrice: 899, Quantity: 1}},
		TotalAmount: 899,
		Contact:     model.ContactInfo{Name: "Asha Rao", Email: "asha@example.com"},
		CreatedAt:   time.Now(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders/ORDER-ABCD1234/tracking", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	milestones, ok := response["milestones"].([]interface{})
	require.True(t, ok)
	assert.Len(t, milestones, 5)

	first, ok := milestones[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Order Confirmed", first["title"])
	assert.Equal(t, "completed", first["status"])
	assert.Equal(t, "Today", first["date_label"])
}

func TestOrderController_GetTracking_NotFound(t *testing.T) {
	router, _ := setupOrderControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/ORDER-MISSING/tracking", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_NOT_FOUND", response["error"])
}
