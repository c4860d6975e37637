package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/pkg/payment/mockpay"
)

func setupCheckoutServiceTest(t *testing.T) (CheckoutService, CartService, repository.OrderRepository, string) {
	t.Helper()

	sessionRepo := repository.NewSessionRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	cartService := NewCartService(cartRepo, NewCatalogService())

	payClient, err := mockpay.NewClient(mockpay.Config{
		Provider: "mockpay",
		Delay:    0, // no simulated delay in tests
	})
	require.NoError(t, err)

	checkoutService := NewCheckoutService(sessionRepo, orderRepo, cartService, payClient)

	session := sessionRepo.Create()
	return checkoutService, cartService, orderRepo, session.ID
}

func validContact() model.ContactInfo {
	return model.ContactInfo{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Mobile: "9876543210",
	}
}

func validPayment() model.PaymentInfo {
	return model.PaymentInfo{
		CardNumber: "4111111111111111",
		Expiry:     "12/27",
		CVV:        "123",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Address:    "12 MG Road",
		City:       "Bengaluru",
		Zip:        "560001",
	}
}

// advanceToPayment walks a session with a filled cart up to the payment
// screen.
func advanceToPayment(t *testing.T, checkout CheckoutService, cart CartService, sessionID string) {
	t.Helper()
	require.NoError(t, cart.AddProduct(sessionID, "tee-black", 2))
	require.NoError(t, checkout.EnterReview(sessionID))
	require.NoError(t, checkout.BeginCheckout(sessionID))
	require.NoError(t, checkout.SubmitContact(sessionID, validContact()))
}

func TestCheckoutService_State_NewSession(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	state, err := checkout.State(sessionID)
	require.NoError(t, err)

	assert.Equal(t, model.StageBrowsing, state.Stage)
	assert.Len(t, state.Items, 0)
	assert.Equal(t, 0, state.Total)
	assert.Nil(t, state.Contact)
	assert.Nil(t, state.Payment)
}

func TestCheckoutService_State_UnknownSession(t *testing.T) {
	checkout, _, _, _ := setupCheckoutServiceTest(t)

	_, err := checkout.State("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCheckoutService_EnterReview_EmptyCartAllowed(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	require.NoError(t, checkout.EnterReview(sessionID))

	state, err := checkout.State(sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StageCartReview, state.Stage)
}

func TestCheckoutService_BeginCheckout_EmptyCartRejected(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	require.NoError(t, checkout.EnterReview(sessionID))
	err := checkout.BeginCheckout(sessionID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutService_BeginCheckout_Success(t *testing.T) {
	checkout, cart, _, sessionID := setupCheckoutServiceTest(t)

	require.NoError(t, cart.AddProduct(sessionID, "tee-black", 1))
	require.NoError(t, checkout.EnterReview(sessionID))
	require.NoError(t, checkout.BeginCheckout(sessionID))

	state, err := checkout.State(sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StageContactCapture, state.Stage)
}

func TestCheckoutService_SubmitContact_WrongStage(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	err := checkout.SubmitContact(sessionID, validContact())
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestCheckoutService_SubmitContact_RequiresNameAndReachability(t *testing.T) {
	checkout, cart, _, sessionID := setupCheckoutServiceTest(t)

	require.NoError(t, cart.AddProduct(sessionID, "tee-black", 1))
	require.NoError(t, checkout.EnterReview(sessionID))
	require.NoError(t, checkout.BeginCheckout(sessionID))

	err := checkout.SubmitContact(sessionID, model.ContactInfo{Name: "Asha Rao"})
	assert.ErrorIs(t, err, ErrInvalidContact)

	err = checkout.SubmitContact(sessionID, model.ContactInfo{Email: "asha@example.com"})
	assert.ErrorIs(t, err, ErrInvalidContact)

	// Name plus either channel is enough
	err = checkout.SubmitContact(sessionID, model.ContactInfo{Name: "Asha Rao", Mobile: "9876543210"})
	assert.NoError(t, err)
}

func TestCheckoutService_SubmitContact_PrefillsPayment(t *testing.T) {
	checkout, cart, _, sessionID := setupCheckoutServiceTest(t)
	advanceToPayment(t, checkout, cart, sessionID)

	state, err := checkout.State(sessionID)
	require.NoError(t, err)

	assert.Equal(t, model.StageCheckout, state.Stage)
	require.NotNil(t, state.Payment)
	assert.Equal(t, "Asha Rao", state.Payment.Name)
	assert.Equal(t, "asha@example.com", state.Payment.Email)
}

func TestCheckoutService_SubmitPayment_IncompleteRejected(t *testing.T) {
	checkout, cart, _, sessionID := setupCheckoutServiceTest(t)
	advanceToPayment(t, checkout, cart, sessionID)

	payment := validPayment()
	payment.CVV = ""

	_, err := checkout.SubmitPayment(context.Background(), sessionID, payment)
	assert.ErrorIs(t, err, ErrIncompletePayment)

	// Cart untouched by the rejection
	assert.Len(t, cart.GetItems(sessionID), 1)
}

func TestCheckoutService_SubmitPayment_WrongStage(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	_, err := checkout.SubmitPayment(context.Background(), sessionID, validPayment())
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestCheckoutService_SubmitPayment_Success(t *testing.T) {
	checkout, cart, orderRepo, sessionID := setupCheckoutServiceTest(t)
	advanceToPayment(t, checkout, cart, sessionID)

	order, err := checkout.SubmitPayment(context.Background(), sessionID, validPayment())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1798, order.TotalAmount) // 2 x 899
	assert.Equal(t, "mockpay", order.Provider)
	assert.NotEmpty(t, order.PaymentTID)
	assert.Equal(t, "Asha Rao", order.Contact.Name)
	assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Minute)

	// Order is persisted and retrievable
	stored, err := orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, stored.TotalAmount)

	// Cart cleared, session lands on tracking
	assert.Len(t, cart.GetItems(sessionID), 0)

	state, err := checkout.State(sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StageTracking, state.Stage)
	assert.Equal(t, order.ID, state.LastOrderID)
}

func TestCheckoutService_SubmitPayment_CancelledContext(t *testing.T) {
	sessionRepo := repository.NewSessionRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	cartService := NewCartService(cartRepo, NewCatalogService())

	payClient, err := mockpay.NewClient(mockpay.Config{
		Provider: "mockpay",
		Delay:    time.Minute, // long enough that cancellation wins
	})
	require.NoError(t, err)

	checkout := NewCheckoutService(sessionRepo, orderRepo, cartService, payClient)
	sessionID := sessionRepo.Create().ID
	advanceToPayment(t, checkout, cartService, sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = checkout.SubmitPayment(ctx, sessionID, validPayment())
	assert.ErrorIs(t, err, context.Canceled)

	// Interrupted payment leaves the cart intact
	assert.Len(t, cartService.GetItems(sessionID), 1)
}

func TestCheckoutService_Back_NeverClearsCart(t *testing.T) {
	checkout, cart, _, sessionID := setupCheckoutServiceTest(t)
	advanceToPayment(t, checkout, cart, sessionID)

	require.NoError(t, checkout.Back(sessionID, model.StageCartReview))

	state, err := checkout.State(sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StageCartReview, state.Stage)
	assert.Len(t, state.Items, 1)

	require.NoError(t, checkout.Back(sessionID, model.StageBrowsing))
	assert.Len(t, cart.GetItems(sessionID), 1)
}

func TestCheckoutService_Back_OnlyToBrowsingOrReview(t *testing.T) {
	checkout, _, _, sessionID := setupCheckoutServiceTest(t)

	err := checkout.Back(sessionID, model.StageCheckout)
	assert.ErrorIs(t, err, ErrInvalidStage)

	err = checkout.Back(sessionID, model.StageProcessing)
	assert.ErrorIs(t, err, ErrInvalidStage)
}
