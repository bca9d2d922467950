package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// CategoryAll bypasses category filtering.
const CategoryAll = "All"

type (
	Product struct {
		ID       int
		Code     string
		Name     string
		Category string
		Price    float64
		Stock    int
	}

	CatalogQuery struct {
		Category string
		Search   string
		Page     int
	}

	CatalogPage struct {
		Items      []Product
		Page       int
		TotalPages int
		TotalItems int
	}
)
