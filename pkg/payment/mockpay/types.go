package mockpay

import "time"

// ApproveRequest describes the payment to simulate.
type ApproveRequest struct {
	OrderID   string
	Amount    int
	ItemCount int
}

// ApproveResponse is the synthetic approval record.
type ApproveResponse struct {
	AID        string    // approval identifier
	TID        string    // transaction identifier
	Provider   string
	Amount     int
	ApprovedAt time.Time
}
