package model

// ItemKind distinguishes catalog products from AI-generated designs
type ItemKind string

const (
	ItemKindCatalog     ItemKind = "catalog"
	ItemKindAIGenerated ItemKind = "ai-generated"
)

// CartItem is one purchasable line entry. Identity is ID: adding an
// item with an existing ID merges by summing quantities, it never
// creates a second row.
type CartItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	UnitPrice      int      `json:"unit_price"`
	Image          string   `json:"image,omitempty"`
	Quantity       int      `json:"quantity"`
	Size           string   `json:"size,omitempty"`
	Color          string   `json:"color,omitempty"`
	Kind           ItemKind `json:"kind,omitempty"`
	Description    string   `json:"description,omitempty"`
	Style          string   `json:"style,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	OriginalPrompt string   `json:"original_prompt,omitempty"`
}

// Subtotal returns the line total for this item.
func (i CartItem) Subtotal() int {
	return i.UnitPrice * i.Quantity
}

// CartTotal sums unit price times quantity over the given items.
func CartTotal(items []CartItem) int {
	var total int
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
