package models

// CartItem is one line in the cart, keyed by product ID.
type CartItem struct {
	ProductID   int     `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
	ProductCode string  `json:"productCode"`
}

// Cart aggregates are always recomputed from Items, never mutated directly.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartSummary distinguishes distinct line items (ItemCount) from summed
// quantities (TotalItems).
type CartSummary struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
	ItemCount  int     `json:"itemCount"`
}
