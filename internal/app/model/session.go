package model

import "time"

// Session is the server-side state of one browser session: checkout
// stage, captured contact info and payment prefill. The cart rows
// themselves live in the cart repository keyed by session ID. Nothing
// survives session expiry.
type Session struct {
	ID          string       `json:"id"`
	Stage       Stage        `json:"stage"`
	Contact     *ContactInfo `json:"contact,omitempty"`
	Payment     *PaymentInfo `json:"payment,omitempty"`
	LastOrderID string       `json:"last_order_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	LastActive  time.Time    `json:"last_active"`
}
