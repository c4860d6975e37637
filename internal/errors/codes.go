package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Design generation (DESIGN_) ====================
	DesignEmptyPrompt = "DESIGN_EMPTY_PROMPT"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutInvalidStage      = "CHECKOUT_INVALID_STAGE"
	CheckoutInvalidContact    = "CHECKOUT_INVALID_CONTACT"
	CheckoutIncompletePayment = "CHECKOUT_INCOMPLETE_PAYMENT"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND"

	// ==================== Session (SESSION_) ====================
	SessionNotFound = "SESSION_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
)
