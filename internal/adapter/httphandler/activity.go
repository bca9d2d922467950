package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawdoc/petshop/internal/core/port"
)

// GET /v1/products/{id}/activity (200 OK, 204 No content, 404)

type ActivityHandler struct {
	catalog  port.CatalogProvider
	activity port.ActivityReader
}

func RegisterActivity(
	mux *http.ServeMux,
	catalog port.CatalogProvider,
	activity port.ActivityReader,
) {
	h := ActivityHandler{catalog, activity}
	mux.HandleFunc("GET /v1/products/{id}/activity", h.GetActivity)
}

func (h ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	const op = "ActivityHandler.GetActivity"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.catalog.Product(id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	adds, err := h.activity.ProductAdds(p.Code)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		log.Warn("no activity data", "code", p.Code, "err", err)
		return
	}

	writeJSON(w, log, ProductActivity{Code: p.Code, Adds: adds})
}
