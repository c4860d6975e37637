package model

// Design is a priced, described apparel artwork. It is produced either
// by the remote generation path or the local fallback heuristic and
// only becomes a CartItem when explicitly added.
type Design struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	UnitPrice    int      `json:"unit_price"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Style        string   `json:"style"`
	Colors       []string `json:"colors"`
	SourcePrompt string   `json:"source_prompt"`
}

// CartItem converts the design into a cart line entry.
func (d Design) CartItem() CartItem {
	return CartItem{
		ID:             d.ID,
		Name:           d.Title,
		UnitPrice:      d.UnitPrice,
		Image:          d.Image,
		Quantity:       1,
		Kind:           ItemKindAIGenerated,
		Description:    d.Description,
		Style:          d.Style,
		Colors:         d.Colors,
		OriginalPrompt: d.SourcePrompt,
	}
}

// AttemptOutcome classifies the result of one model-generation attempt
type AttemptOutcome string

const (
	AttemptSucceeded     AttemptOutcome = "succeeded"
	AttemptRateLimited   AttemptOutcome = "rate_limited"
	AttemptModelNotFound AttemptOutcome = "model_not_found"
	AttemptMalformed     AttemptOutcome = "malformed_response"
	AttemptFailed        AttemptOutcome = "failed"
)

// Attempt records one candidate model and how its attempt ended.
// Attempts are recorded in exactly the order they were issued.
type Attempt struct {
	Model   string         `json:"model"`
	Outcome AttemptOutcome `json:"outcome"`
}

// GenerationResult carries the design plus how it was obtained.
// Design is always non-nil: exhaustion of every candidate is absorbed
// by the fallback path.
type GenerationResult struct {
	Design   *Design   `json:"design"`
	Attempts []Attempt `json:"attempts"`
	Fallback bool      `json:"fallback"`
}
