package httphandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
	"github.com/pawdoc/petshop/internal/core/service"
)

// GET    /v1/cart                 (200 OK)
// POST   /v1/cart/items JSON      (200 OK, 400, 404, 409)
// PATCH  /v1/cart/items/{id} JSON (200 OK, 400)
// DELETE /v1/cart/items/{id}      (200 OK)
// DELETE /v1/cart                 (200 OK)

type CartHandler struct {
	catalog  port.CatalogProvider
	cart     CartStore
	notifier port.Notifier
}

type CartStore interface {
	port.CartAccessor
	port.CartMutator
}

func RegisterCart(
	mux *http.ServeMux,
	catalog port.CatalogProvider,
	cart CartStore,
	notifier port.Notifier,
) {
	h := CartHandler{catalog, cart, notifier}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	h.writeCart(w, slog.With("op", op))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		log.Warn("unknown product", "productID", req.ProductID)
		return
	}

	// Out-of-stock is a caller-side policy, reported through the
	// notifier rather than failing inside the cart store.
	if p.Stock <= 0 {
		h.notifier.Error("This product is out of stock",
			service.WithTitle("Cannot Add to Cart"))
		http.Error(w, "product is out of stock", http.StatusConflict)
		return
	}

	h.cart.Add(r.Context(), p, req.Quantity)
	h.notifier.Success(fmt.Sprintf("%s added to cart!", p.Name),
		service.WithTitle("Added to Cart"))

	log.Info("item added", "productID", p.ID, "qty", req.Quantity)
	h.writeCart(w, log)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQty(r.Context(), id, req.Quantity)
	h.writeCart(w, log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.cart.Remove(r.Context(), id)
	h.writeCart(w, log)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	h.cart.Clear(r.Context())
	h.writeCart(w, log)
}

func (h CartHandler) writeCart(w http.ResponseWriter, log *slog.Logger) {
	writeJSON(w, log, toCart(h.cart.Items(), h.cart.Totals()))
}

func toCart(items []domain.CartItem, totals domain.CartTotals) Cart {
	cart := Cart{
		Items: make([]CartItem, len(items)),
		Totals: CartTotals{
			Subtotal: totals.Subtotal,
			Shipping: totals.Shipping,
			Total:    totals.Total,
		},
	}
	for i, item := range items {
		cart.Items[i] = CartItem{
			ProductID: item.ProductID,
			Code:      item.Code,
			Name:      item.Name,
			Price:     item.Price,
			Stock:     item.Stock,
			Quantity:  item.Quantity,
		}
	}
	return cart
}
