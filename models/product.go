package models

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ProductCode string  `json:"productCode"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	ProductCode string  `json:"productCode"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity"`
}

type UpdateProductRequest struct {
	ID          int      `json:"id"`
	Name        *string  `json:"name,omitempty"`
	ProductCode *string  `json:"productCode,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}
