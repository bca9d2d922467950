package httphandler

type (
	Product struct {
		ID       int     `json:"id"`
		Code     string  `json:"code"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
		Stock    int     `json:"stock"`
	}

	CatalogPage struct {
		Items      []Product `json:"items"`
		Page       int       `json:"page"`
		TotalPages int       `json:"total_pages"`
		TotalItems int       `json:"total_items"`
	}
)

type (
	CartItem struct {
		ProductID int     `json:"product_id"`
		Code      string  `json:"code"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
		Quantity  int     `json:"quantity"`
	}

	CartTotals struct {
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
		Total    float64 `json:"total"`
	}

	Cart struct {
		Items  []CartItem `json:"items"`
		Totals CartTotals `json:"totals"`
	}

	AddCartItem struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	UpdateCartItem struct {
		Quantity int `json:"quantity"`
	}
)

type Notification struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

type ProductActivity struct {
	Code string `json:"code"`
	Adds int64  `json:"adds"`
}
