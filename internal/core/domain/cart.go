package domain

import "time"

type (
	// A CartItem holds a snapshot of the product taken at add time,
	// so the cart stays meaningful across catalog reloads.
	CartItem struct {
		ProductID int     `json:"id"`
		Code      string  `json:"code"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
		Quantity  int     `json:"quantity"`
	}

	CartTotals struct {
		Subtotal float64
		Shipping float64
		Total    float64
	}
)

type CartEventKind string

const (
	CartEventAdded       CartEventKind = "added"
	CartEventRemoved     CartEventKind = "removed"
	CartEventQuantitySet CartEventKind = "quantity_set"
	CartEventCleared     CartEventKind = "cleared"
)

type CartEvent struct {
	Kind       CartEventKind
	ProductID  int
	Code       string
	Name       string
	Quantity   int
	UnitPrice  float64
	Subtotal   float64
	OccurredAt time.Time
}
