package service

import (
	"context"
	"errors"

	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/pkg/logger"
	"github.com/threadz/threadz-backend/pkg/payment/mockpay"
	"github.com/threadz/threadz-backend/pkg/util"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidContact    = errors.New("contact info requires a name and an email or mobile")
	ErrIncompletePayment = errors.New("every payment field must be filled in")
	ErrInvalidStage      = errors.New("operation not allowed in current stage")
)

// CheckoutState is the snapshot of a session's position in the flow,
// consumed by the view layer.
type CheckoutState struct {
	Stage       model.Stage        `json:"stage"`
	Items       []model.CartItem   `json:"items"`
	Total       int                `json:"total"`
	Contact     *model.ContactInfo `json:"contact,omitempty"`
	Payment     *model.PaymentInfo `json:"payment,omitempty"`
	LastOrderID string             `json:"last_order_id,omitempty"`
}

// CheckoutService sequences a session's cart through the linear
// browsing → cart_review → contact_capture → checkout → processing →
// tracking progression. Transitions forward are guarded; going back
// never clears the cart.
type CheckoutService interface {
	State(sessionID string) (*CheckoutState, error)
	EnterReview(sessionID string) error
	BeginCheckout(sessionID string) error
	SubmitContact(sessionID string, contact model.ContactInfo) error
	SubmitPayment(ctx context.Context, sessionID string, payment model.PaymentInfo) (*model.Order, error)
	Back(sessionID string, to model.Stage) error
}

type checkoutService struct {
	sessionRepo repository.SessionRepository
	orderRepo   repository.OrderRepository
	cartService CartService
	payClient   *mockpay.Client
}

func NewCheckoutService(
	sessionRepo repository.SessionRepository,
	orderRepo repository.OrderRepository,
	cartService CartService,
	payClient *mockpay.Client,
) CheckoutService {
	return &checkoutService{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
		cartService: cartService,
		payClient:   payClient,
	}
}

func (s *checkoutService) State(sessionID string) (*CheckoutState, error) {
	session, err := s.findSession(sessionID)
	if err != nil {
		return nil, err
	}

	items := s.cartService.GetItems(sessionID)
	return &CheckoutState{
		Stage:       session.Stage,
		Items:       items,
		Total:       model.CartTotal(items),
		Contact:     session.Contact,
		Payment:     session.Payment,
		LastOrderID: session.LastOrderID,
	}, nil
}

// EnterReview moves the session onto the cart review screen. Allowed
// from any stage; reviewing an empty cart is fine, checking out is not.
func (s *checkoutService) EnterReview(sessionID string) error {
	session, err := s.findSession(sessionID)
	if err != nil {
		return err
	}

	session.Stage = model.StageCartReview
	return s.sessionRepo.Update(session)
}

// BeginCheckout advances cart review into contact capture, guarded by
// a non-empty cart.
func (s *checkoutService) BeginCheckout(sessionID string) error {
	session, err := s.findSession(sessionID)
	if err != nil {
		return err
	}

	if len(s.cartService.GetItems(sessionID)) == 0 {
		logger.Warn("Cannot begin checkout: cart is empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return ErrEmptyCart
	}

	session.Stage = model.StageContactCapture
	return s.sessionRepo.Update(session)
}

// SubmitContact validates and stores contact info, then advances to
// the payment screen with the payment name/email pre-filled.
func (s *checkoutService) SubmitContact(sessionID string, contact model.ContactInfo) error {
	session, err := s.findSession(sessionID)
	if err != nil {
		return err
	}

	if session.Stage != model.StageContactCapture {
		return ErrInvalidStage
	}

	if !contact.Valid() {
		logger.Warn("Invalid contact info submitted", map[string]interface{}{
			"session_id": sessionID,
		})
		return ErrInvalidContact
	}

	session.Contact = &contact
	session.Payment = &model.PaymentInfo{
		Name:  contact.Name,
		Email: contact.Email,
	}
	session.Stage = model.StageCheckout

	logger.Info("Contact captured", map[string]interface{}{
		"session_id":    sessionID,
		"wants_updates": contact.WantsUpdates,
	})
	return s.sessionRepo.Update(session)
}

// SubmitPayment runs the mock payment and confirms the order: the
// session enters processing, the simulated processor approves after
// its fixed delay, an order is minted, the cart is cleared and the
// session lands on tracking. The payment step itself cannot decline.
func (s *checkoutService) SubmitPayment(ctx context.Context, sessionID string, payment model.PaymentInfo) (*model.Order, error) {
	session, err := s.findSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Stage != model.StageCheckout {
		return nil, ErrInvalidStage
	}

	if !payment.Complete() {
		logger.Warn("Incomplete payment info submitted", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, ErrIncompletePayment
	}

	items := s.cartService.GetItems(sessionID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	total := model.CartTotal(items)

	session.Stage = model.StageProcessing
	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}

	orderID := util.NewOrderID()
	approval, err := s.payClient.Approve(ctx, mockpay.ApproveRequest{
		OrderID:   orderID,
		Amount:    total,
		ItemCount: len(items),
	})
	if err != nil {
		// Only context cancellation lands here; the session stays in
		// processing and the cart is untouched.
		logger.Error("Payment simulation interrupted", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   orderID,
		})
		return nil, err
	}

	order := &model.Order{
		ID:          orderID,
		Items:       items,
		TotalAmount: total,
		Provider:    approval.Provider,
		PaymentTID:  approval.TID,
		Contact:     *session.Contact,
		CreatedAt:   approval.ApprovedAt,
	}
	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to record order", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   orderID,
		})
		return nil, err
	}

	s.cartService.Clear(sessionID)

	session.Stage = model.StageTracking
	session.LastOrderID = orderID
	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}

	logger.Info("Order confirmed", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   orderID,
		"total":      total,
		"item_count": len(items),
	})
	return order, nil
}

// Back returns the session to browsing or cart review. The cart is
// never cleared by going back.
func (s *checkoutService) Back(sessionID string, to model.Stage) error {
	if to != model.StageBrowsing && to != model.StageCartReview {
		return ErrInvalidStage
	}

	session, err := s.findSession(sessionID)
	if err != nil {
		return err
	}

	session.Stage = to
	return s.sessionRepo.Update(session)
}

func (s *checkoutService) findSession(sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
