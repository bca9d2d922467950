package service

import (
	"fmt"
	"strings"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
)

var _ port.CatalogProvider = (*CatalogService)(nil)

// PageSize is the fixed number of products per catalog page.
const PageSize = 20

// A CatalogService serves read-only views over the product list loaded
// at startup. All methods are pure functions of the loaded catalog.
type CatalogService struct {
	products []domain.Product
	byID     map[int]int
}

func NewCatalogService(products []domain.Product) CatalogService {
	byID := make(map[int]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return CatalogService{products, byID}
}

// Page returns the slice of the catalog visible for the given filter
// state. An out-of-range page yields an empty item list, not an error:
// keeping the page within bounds is the caller's job.
func (s CatalogService) Page(q domain.CatalogQuery) domain.CatalogPage {
	filtered := s.filter(q.Category, q.Search)

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	var items []domain.Product
	start := (q.Page - 1) * PageSize
	if start >= 0 && start < len(filtered) {
		end := min(start+PageSize, len(filtered))
		items = append(items, filtered[start:end]...)
	}

	return domain.CatalogPage{
		Items:      items,
		Page:       q.Page,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}
}

func (s CatalogService) Product(id int) (domain.Product, error) {
	const op = "CatalogService.Product"

	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: id %d: %w",
			op, id, domain.ErrProductNotFound)
	}
	return s.products[i], nil
}

// Categories lists the distinct categories in first-seen order,
// prefixed with the "All" pseudo-category.
func (s CatalogService) Categories() []string {
	categories := []string{domain.CategoryAll}
	seen := make(map[string]struct{})
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

func (s CatalogService) filter(category, search string) []domain.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	var filtered []domain.Product
	for _, p := range s.products {
		if category != "" && category != domain.CategoryAll &&
			p.Category != category {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// matches reports whether the lowercased query occurs in the product's
// name, code or category.
func matches(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Code), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
