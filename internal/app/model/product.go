package model

// Product is a fixed catalog entry. The catalog is static for the
// lifetime of the process.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Image string `json:"image,omitempty"`
}
