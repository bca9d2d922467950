package port

import (
	"context"

	"github.com/pawdoc/petshop/internal/core/domain"
)

// Inbound ports: what the HTTP layer requires from the core.

type CatalogProvider interface {
	Page(domain.CatalogQuery) domain.CatalogPage
	Product(id int) (domain.Product, error)
	Categories() []string
}

type CartAccessor interface {
	Items() []domain.CartItem
	Totals() domain.CartTotals
}

type CartMutator interface {
	Add(ctx context.Context, p domain.Product, qty int)
	Remove(ctx context.Context, productID int)
	UpdateQty(ctx context.Context, productID, qty int)
	Clear(ctx context.Context)
}

type Notifier interface {
	Add(domain.Notification) string
	Success(message string, opts ...NotifyOpt) string
	Error(message string, opts ...NotifyOpt) string
	Warning(message string, opts ...NotifyOpt) string
	Info(message string, opts ...NotifyOpt) string
	Remove(id string)
	Clear()
	Notifications() []domain.Notification
}

// NotifyOpt overrides a default field of the notification being added.
type NotifyOpt func(*domain.Notification)

// Outbound ports: what the core requires from the adapters.

type CartStorage interface {
	ReadCart(context.Context) ([]domain.CartItem, error)
	WriteCart(context.Context, []domain.CartItem) error
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}

type ActivityReader interface {
	ProductAdds(code string) (int64, error)
}
