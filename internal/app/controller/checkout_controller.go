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

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type SubmitContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	WantsUpdates bool   `json:"wants_updates"`
}

type SubmitPaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Zip        string `json:"zip" binding:"required"`
}

type GoBackRequest struct {
	To model.Stage `json:"to" binding:"required"`
}

// GetState returns the session's checkout snapshot
// GET /api/v1/checkout
func (ctrl *CheckoutController) GetState(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	state, err := ctrl.checkoutService.State(sessionID)
	if err != nil {
		ctrl.respondCheckoutError(c, sessionID, "fetch checkout state", err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// EnterReview moves the session to the cart review screen
// POST /api/v1/checkout/review
func (ctrl *CheckoutController) EnterReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	if err := ctrl.checkoutService.EnterReview(sessionID); err != nil {
		ctrl.respondCheckoutError(c, sessionID, "enter cart review", err)
		return
	}

	log.Info("Session entered cart review", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"stage": model.StageCartReview,
	})
}

// BeginCheckout advances cart review into contact capture
// POST /api/v1/checkout/begin
func (ctrl *CheckoutController) BeginCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	if err := ctrl.checkoutService.BeginCheckout(sessionID); err != nil {
		ctrl.respondCheckoutError(c, sessionID, "begin checkout", err)
		return
	}

	log.Info("Checkout started", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"stage": model.StageContactCapture,
	})
}

// SubmitContact stores contact info and advances to payment
// POST /api/v1/checkout/contact
func (ctrl *CheckoutController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	contact := model.ContactInfo{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		WantsUpdates: req.WantsUpdates,
	}

	if err := ctrl.checkoutService.SubmitContact(sessionID, contact); err != nil {
		ctrl.respondCheckoutError(c, sessionID, "submit contact info", err)
		return
	}

	log.Info("Contact info submitted", map[string]interface{}{
		"session_id": sessionID,
	})

	c.JSON(http.StatusOK, gin.H{
		"stage": model.StageCheckout,
	})
}

// SubmitPayment runs the mock payment and confirms the order
// POST /api/v1/checkout/payment
func (ctrl *CheckoutController) SubmitPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.CheckoutIncompletePayment, "Every payment field must be filled in")
		return
	}

	payment := model.PaymentInfo{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
		Zip:        req.Zip,
	}

	order, err := ctrl.checkoutService.SubmitPayment(c.Request.Context(), sessionID, payment)
	if err != nil {
		ctrl.respondCheckoutError(c, sessionID, "submit payment", err)
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   order.ID,
		"total":      order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"stage": model.StageTracking,
		"order": order,
	})
}

// GoBack returns the session to browsing or cart review
// POST /api/v1/checkout/back
func (ctrl *CheckoutController) GoBack(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		log.Warn("No session bound to checkout request", nil)
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")
		return
	}

	var req GoBackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid go back request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.checkoutService.Back(sessionID, req.To); err != nil {
		ctrl.respondCheckoutError(c, sessionID, "go back", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stage": req.To,
	})
}

// respondCheckoutError maps checkout service errors to HTTP responses.
func (ctrl *CheckoutController) respondCheckoutError(c *gin.Context, sessionID, action string, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		log.Warn("Session not found for checkout action", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.NotFound(c, apperrors.SessionNotFound, "Session not found")

	case errors.Is(err, service.ErrEmptyCart):
		log.Warn("Checkout action rejected: cart is empty", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")

	case errors.Is(err, service.ErrInvalidContact):
		log.Warn("Checkout action rejected: invalid contact info", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.BadRequest(c, apperrors.CheckoutInvalidContact, "Contact info needs a name and an email or mobile")

	case errors.Is(err, service.ErrIncompletePayment):
		log.Warn("Checkout action rejected: incomplete payment info", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.BadRequest(c, apperrors.CheckoutIncompletePayment, "Every payment field must be filled in")

	case errors.Is(err, service.ErrInvalidStage):
		log.Warn("Checkout action rejected: wrong stage", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.Conflict(c, apperrors.CheckoutInvalidStage, "That step is not available right now")

	default:
		log.Error("Checkout action failed", err, map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
		})
		apperrors.InternalError(c, "Failed to "+action)
	}
}
