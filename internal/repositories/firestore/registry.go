package firestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/config"
	pfirestore "github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/firestore"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
)

// Registry is the Firestore-backed implementation of repositories.Registry.
// It owns the provider lifecycle; Close tears down the shared client.
type Registry struct {
	provider *pfirestore.Provider
	orders   *OrderRepository
	products *ProductRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry wires the repositories over one shared provider.
func NewRegistry(cfg config.FirestoreConfig, opts ...pfirestore.ProviderOption) (*Registry, error) {
	provider := pfirestore.NewProvider(cfg, opts...)

	orders, err := NewOrderRepository(provider, OrderRepositoryCollections{
		Orders:   cfg.OrdersCollection,
		Products: cfg.ProductsCollection,
		Counters: cfg.CountersCollection,
	})
	if err != nil {
		return nil, fmt.Errorf("build order repository: %w", err)
	}
	products, err := NewProductRepository(provider, cfg.ProductsCollection)
	if err != nil {
		return nil, fmt.Errorf("build product repository: %w", err)
	}

	return &Registry{
		provider: provider,
		orders:   orders,
		products: products,
	}, nil
}

// Close releases the underlying Firestore client.
func (r *Registry) Close(ctx context.Context) error {
	if r == nil || r.provider == nil {
		return errors.New("registry not initialised")
	}
	return r.provider.Close(ctx)
}

// Orders returns the order repository.
func (r *Registry) Orders() repositories.OrderRepository {
	if r == nil {
		return nil
	}
	return r.orders
}

// Products returns the product repository.
func (r *Registry) Products() repositories.ProductRepository {
	if r == nil {
		return nil
	}
	return r.products
}
