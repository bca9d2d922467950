package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
)

// GET /v1/products?category=&q=&page= (200 OK)
// GET /v1/categories (200 OK)

type CatalogHandler struct {
	catalog port.CatalogProvider
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := domain.CatalogQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Page:     1,
	}
	if q.Category == "" {
		q.Category = domain.CategoryAll
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		q.Page = page
	}

	page := h.catalog.Page(q)
	writeJSON(w, log, toCatalogPage(page))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	writeJSON(w, log, h.catalog.Categories())
}

func toCatalogPage(page domain.CatalogPage) CatalogPage {
	items := make([]Product, len(page.Items))
	for i, p := range page.Items {
		items[i] = Product{
			ID:       p.ID,
			Code:     p.Code,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Stock:    p.Stock,
		}
	}
	return CatalogPage{
		Items:      items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
