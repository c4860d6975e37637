package model

import (
	"strings"
	"time"
)

// Stage is one state in the linear checkout progression.
type Stage string

const (
	StageBrowsing       Stage = "browsing"
	StageCartReview     Stage = "cart_review"
	StageContactCapture Stage = "contact_capture"
	StageCheckout       Stage = "checkout"
	StageProcessing     Stage = "processing"
	StageTracking       Stage = "tracking"
)

// ContactInfo captures who the order is for and how to reach them.
type ContactInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	WantsUpdates bool   `json:"wants_updates"`
}

// Valid reports whether the contact info can gate checkout:
// a name plus at least one of email or mobile.
func (c ContactInfo) Valid() bool {
	if strings.TrimSpace(c.Name) == "" {
		return false
	}
	return strings.TrimSpace(c.Email) != "" || strings.TrimSpace(c.Mobile) != ""
}

// PaymentInfo is the mock payment form. No checksum or format
// validation is applied, only presence of every field.
type PaymentInfo struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Zip        string `json:"zip"`
}

// Complete reports whether every payment field is non-empty.
func (p PaymentInfo) Complete() bool {
	fields := []string{
		p.CardNumber, p.Expiry, p.CVV, p.Name,
		p.Email, p.Address, p.City, p.Zip,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Order exists only from the payment-confirmation transition onward;
// until then the order is implicit in the cart contents.
type Order struct {
	ID          string      `json:"id"`
	Items       []CartItem  `json:"items"`
	TotalAmount int         `json:"total_amount"`
	Provider    string      `json:"provider,omitempty"`
	PaymentTID  string      `json:"payment_tid,omitempty"`
	Contact     ContactInfo `json:"contact"`
	CreatedAt   time.Time   `json:"created_at"`
}

// MilestoneStatus marks where a tracking milestone sits relative to now.
type MilestoneStatus string

const (
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneCurrent   MilestoneStatus = "current"
	MilestonePending   MilestoneStatus = "pending"
)

// Milestone is one step of the fixed delivery timeline.
type Milestone struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      MilestoneStatus `json:"status"`
	DayOffset   int             `json:"day_offset"`
	DateLabel   string          `json:"date_label"`
}
