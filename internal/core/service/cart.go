package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
)

var _ port.CartAccessor = (*CartService)(nil)
var _ port.CartMutator = (*CartService)(nil)

// maxQuantity bounds a line when the stock ceiling is unknown.
const maxQuantity = 9999

// A CartService owns the cart line items and is the single writer of
// the persisted snapshot. Mutations are total: persistence and event
// emission failures are logged, never surfaced. Events are produced
// after the lock is released, so a slow broker cannot stall cart
// access.
type CartService struct {
	mu      sync.Mutex
	items   []domain.CartItem
	storage port.CartStorage
	events  port.CartEventsProducer
}

// NewCartService restores the persisted snapshot through storage.
// Any read failure degrades to an empty cart.
func NewCartService(
	ctx context.Context,
	storage port.CartStorage,
	events port.CartEventsProducer,
) *CartService {
	const op = "NewCartService"

	items, err := storage.ReadCart(ctx)
	if err != nil {
		slog.Warn("starting with empty cart", "op", op, "err", err)
		items = nil
	}
	return &CartService{items: items, storage: storage, events: events}
}

func (s *CartService) Add(ctx context.Context, p domain.Product, qty int) {
	s.mu.Lock()

	var line domain.CartItem
	if i := s.index(p.ID); i >= 0 {
		l := &s.items[i]
		l.Quantity = min(l.Quantity+qty, ceiling(l.Stock))
		line = *l
	} else {
		limit := qty
		if p.Stock > 0 {
			limit = p.Stock
		}
		line = domain.CartItem{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Quantity:  min(qty, limit),
		}
		s.items = append(s.items, line)
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.produce(ctx, s.event(domain.CartEventAdded, line))
}

func (s *CartService) Remove(ctx context.Context, productID int) {
	s.mu.Lock()

	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	line := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
	s.mu.Unlock()

	s.produce(ctx, s.event(domain.CartEventRemoved, line))
}

func (s *CartService) UpdateQty(ctx context.Context, productID, qty int) {
	s.mu.Lock()

	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	line := &s.items[i]
	line.Quantity = max(1, min(qty, ceiling(line.Stock)))
	updated := *line
	s.persist(ctx)
	s.mu.Unlock()

	s.produce(ctx, s.event(domain.CartEventQuantitySet, updated))
}

func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persist(ctx)
	s.mu.Unlock()

	s.produce(ctx, domain.CartEvent{
		Kind:       domain.CartEventCleared,
		OccurredAt: time.Now(),
	})
}

func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *CartService) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t domain.CartTotals
	for _, line := range s.items {
		t.Subtotal += line.Price * float64(line.Quantity)
	}
	t.Total = t.Subtotal + t.Shipping
	return t
}

// index returns the position of the line for productID, or -1.
// At most one line exists per product.
func (s *CartService) index(productID int) int {
	return slices.IndexFunc(s.items, func(i domain.CartItem) bool {
		return i.ProductID == productID
	})
}

func ceiling(stock int) int {
	if stock > 0 {
		return stock
	}
	return maxQuantity
}

// persist writes the full snapshot. Callers hold the mutex.
func (s *CartService) persist(ctx context.Context) {
	const op = "CartService.persist"

	err := s.storage.WriteCart(ctx, s.items)
	if err != nil {
		slog.Error("failed to persist cart", "op", op, "err", err)
	}
}

func (s *CartService) event(
	kind domain.CartEventKind, line domain.CartItem,
) domain.CartEvent {
	return domain.CartEvent{
		Kind:       kind,
		ProductID:  line.ProductID,
		Code:       line.Code,
		Name:       line.Name,
		Quantity:   line.Quantity,
		UnitPrice:  line.Price,
		Subtotal:   line.Price * float64(line.Quantity),
		OccurredAt: time.Now(),
	}
}

func (s *CartService) produce(ctx context.Context, evt domain.CartEvent) {
	const op = "CartService.produce"

	if s.events == nil {
		return
	}
	err := s.events.ProduceCartEvent(ctx, evt)
	if err != nil {
		slog.Error("failed to produce cart event", "op", op, "err", err)
	}
}
