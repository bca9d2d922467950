package service_test

import (
	"fmt"
	"testing"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProducts(n int) []domain.Product {
	ps := make([]domain.Product, n)
	for i := range ps {
		category := "Food"
		if i%3 == 0 {
			category = "Medicine"
		}
		ps[i] = domain.Product{
			ID:       i + 1,
			Code:     fmt.Sprintf("PDR.%05d", i+1),
			Name:     fmt.Sprintf("Item %d", i+1),
			Category: category,
			Price:    float64(10 * (i + 1)),
			Stock:    i,
		}
	}
	return ps
}

func TestCatalogService(t *testing.T) {
	t.Run("FirstPage", func(t *testing.T) {
		s := service.NewCatalogService(makeProducts(45))

		page := s.Page(domain.CatalogQuery{Category: "All", Page: 1})
		require.Len(t, page.Items, service.PageSize)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 45, page.TotalItems)
		assert.Equal(t, 1, page.Items[0].ID)
	})

	t.Run("PagesCoverFilteredListExactly", func(t *testing.T) {
		s := service.NewCatalogService(makeProducts(45))

		var ids []int
		first := s.Page(domain.CatalogQuery{Category: "All", Page: 1})
		for p := 1; p <= first.TotalPages; p++ {
			page := s.Page(domain.CatalogQuery{Category: "All", Page: p})
			for _, item := range page.Items {
				ids = append(ids, item.ID)
			}
		}

		require.Len(t, ids, 45)
		for i, id := range ids {
			assert.Equal(t, i+1, id)
		}
	})

	t.Run("OutOfRangePageIsEmpty", func(t *testing.T) {
		s := service.NewCatalogService(makeProducts(5))

		page := s.Page(domain.CatalogQuery{Category: "All", Page: 2})
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("EmptyCatalogHasOnePage", func(t *testing.T) {
		s := service.NewCatalogService(nil)

		page := s.Page(domain.CatalogQuery{Category: "All", Page: 1})
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.Zero(t, page.TotalItems)
	})

	t.Run("CategoryFilterIsExact", func(t *testing.T) {
		s := service.NewCatalogService(makeProducts(30))

		page := s.Page(domain.CatalogQuery{Category: "Medicine", Page: 1})
		require.NotEmpty(t, page.Items)
		for _, item := range page.Items {
			assert.Equal(t, "Medicine", item.Category)
		}

		none := s.Page(domain.CatalogQuery{Category: "medicine", Page: 1})
		assert.Empty(t, none.Items)
	})

	t.Run("SearchMatchesAnyField", func(t *testing.T) {
		s := service.NewCatalogService([]domain.Product{
			{ID: 1, Code: "ABC123", Name: "Dog Leash", Category: "Accessories"},
			{ID: 2, Code: "X9", Name: "Cat Food", Category: "Food"},
			{ID: 3, Code: "Z1", Name: "Shampoo", Category: "Medicine"},
		})

		byName := s.Page(domain.CatalogQuery{Category: "All", Search: "leash", Page: 1})
		require.Len(t, byName.Items, 1)
		assert.Equal(t, 1, byName.Items[0].ID)

		byCode := s.Page(domain.CatalogQuery{Category: "All", Search: "abc", Page: 1})
		require.Len(t, byCode.Items, 1)

		byCategory := s.Page(domain.CatalogQuery{Category: "All", Search: "FOOD", Page: 1})
		require.Len(t, byCategory.Items, 1)
		assert.Equal(t, 2, byCategory.Items[0].ID)
	})

	t.Run("ProductLookup", func(t *testing.T) {
		s := service.NewCatalogService(makeProducts(3))

		p, err := s.Product(2)
		require.NoError(t, err)
		assert.Equal(t, "Item 2", p.Name)

		_, err = s.Product(99)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("Categories", func(t *testing.T) {
		s := service.NewCatalogService([]domain.Product{
			{ID: 1, Category: "Food"},
			{ID: 2, Category: "Medicine"},
			{ID: 3, Category: "Food"},
		})

		assert.Equal(t, []string{"All", "Food", "Medicine"}, s.Categories())
	})
}
