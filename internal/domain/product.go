package domain

// Product is a catalog record as served by the upstream API.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	MainImage   string  `json:"mainImage,omitempty"`
	Category    string  `json:"category,omitempty"`
}
