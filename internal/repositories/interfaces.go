package repositories

import (
	"context"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for
// dependency injection. The concrete registry owns the platform client and is
// constructed once at application start.
type Registry interface {
	Close(ctx context.Context) error

	Orders() OrderRepository
	Products() ProductRepository
}

// RepositoryError wraps low-level persistence failures with the
// categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// OrderCreateResult reports the identifiers generated by atomic order
// creation.
type OrderCreateResult struct {
	OrderID     string
	OrderNumber string
}

// OrderRepository persists orders. CreateOrder is the remote atomic
// operation: in a single transaction it validates stock for every line item,
// decrements it, allocates the order number, and inserts the header together
// with all line items — or fails with no partial effects.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (OrderCreateResult, error)
	FindByID(ctx context.Context, orderID string) (domain.Order, error)
}

// ProductRepository reads current catalog data, used to refresh a cart's
// price basis immediately before submission.
type ProductRepository interface {
	ListByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
}
