package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/pawdoc/petshop/internal/core/domain"
)

func encodeItems(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	return json.Marshal(items)
}

// decodeItems treats a corrupt payload as an empty cart. That is the
// persistence contract: stale or hand-edited snapshots must never
// prevent startup.
func decodeItems(op string, payload []byte) []domain.CartItem {
	if len(payload) == 0 {
		return nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.Warn("discarding unreadable cart snapshot", "op", op, "err", err)
		return nil
	}
	return items
}
