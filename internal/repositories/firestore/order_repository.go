package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
	pfirestore "github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/firestore"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
)

// OrderRepository persists orders in Firestore. Order creation runs in a
// single transaction covering stock validation, stock decrement, order number
// allocation, and the order insert, so a failure leaves no partial effects.
type OrderRepository struct {
	provider *pfirestore.Provider
	orders   *pfirestore.BaseRepository[orderDocument]
	products *pfirestore.BaseRepository[productDocument]
	counters *pfirestore.BaseRepository[counterDocument]
}

// OrderRepositoryCollections names the collections the repository touches.
type OrderRepositoryCollections struct {
	Orders   string
	Products string
	Counters string
}

// NewOrderRepository constructs an OrderRepository over the shared provider.
func NewOrderRepository(provider *pfirestore.Provider, collections OrderRepositoryCollections) (*OrderRepository, error) {
	if provider == nil {
		return nil, errors.New("order repository requires firestore provider")
	}
	if collections.Orders == "" || collections.Products == "" || collections.Counters == "" {
		return nil, errors.New("order repository requires collection names")
	}
	return &OrderRepository{
		provider: provider,
		orders:   pfirestore.NewBaseRepository[orderDocument](provider, collections.Orders, nil),
		products: pfirestore.NewBaseRepository[productDocument](provider, collections.Products, nil),
		counters: pfirestore.NewBaseRepository[counterDocument](provider, collections.Counters, nil),
	}, nil
}

// CreateOrder atomically creates the order. Firestore requires all reads
// before writes inside a transaction, so the counter and every stock document
// are read first, then the counter bump, stock decrements, and order insert
// are staged together.
func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) (repositories.OrderCreateResult, error) {
	if r == nil || r.provider == nil {
		return repositories.OrderCreateResult{}, errors.New("order repository not initialised")
	}
	if normalizedID(order.ID) == "" {
		return repositories.OrderCreateResult{}, repositories.NewOrderError(repositories.OrderErrorInvalidInput, "order create: order id is required", nil)
	}
	if len(order.Items) == 0 {
		return repositories.OrderCreateResult{}, repositories.NewOrderError(repositories.OrderErrorInvalidInput, "order create: at least one item is required", nil)
	}

	requirements, err := aggregateStockRequirements(order.Items)
	if err != nil {
		return repositories.OrderCreateResult{}, err
	}

	year := order.CreatedAt.UTC().Year()
	var result repositories.OrderCreateResult

	err = r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef, err := r.orders.DocumentRef(ctx, order.ID)
		if err != nil {
			return err
		}
		counterRef, err := r.counters.DocumentRef(ctx, orderCounterID(year))
		if err != nil {
			return err
		}

		sequence, err := r.nextSequence(tx, counterRef)
		if err != nil {
			return err
		}

		type stockUpdate struct {
			ref      *firestore.DocumentRef
			newStock int
		}
		updates := make([]stockUpdate, 0, len(requirements))
		for _, req := range requirements {
			productRef, err := r.products.DocumentRef(ctx, req.productID)
			if err != nil {
				return err
			}
			snap, err := tx.Get(productRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return repositories.NewOrderError(repositories.OrderErrorProductNotFound, fmt.Sprintf("product %s not found", req.productID), err)
				}
				return err
			}
			var product productDocument
			if err := snap.DataTo(&product); err != nil {
				return fmt.Errorf("decode product %s: %w", req.productID, err)
			}
			if !product.Active {
				return repositories.NewOrderError(repositories.OrderErrorProductNotFound, fmt.Sprintf("product %s is no longer available", req.productID), nil)
			}
			if product.Stock < req.quantity {
				// The message wording is load-bearing: storefront clients that
				// predate the structured code match on this exact phrase.
				return repositories.NewOrderError(repositories.OrderErrorInsufficientStock, fmt.Sprintf("Insufficient stock for product %s", req.productID), nil)
			}
			updates = append(updates, stockUpdate{ref: productRef, newStock: product.Stock - req.quantity})
		}

		if err := tx.Set(counterRef, counterDocument{Value: sequence}); err != nil {
			return err
		}
		for _, update := range updates {
			if err := tx.Update(update.ref, []firestore.Update{{Path: "stock", Value: update.newStock}}); err != nil {
				return err
			}
		}

		doc := newOrderDocument(order)
		doc.OrderNumber = formatOrderNumber(year, sequence)
		if err := tx.Create(orderRef, doc); err != nil {
			if status.Code(err) == codes.AlreadyExists {
				return repositories.NewOrderError(repositories.OrderErrorInvalidInput, fmt.Sprintf("order %s already exists", order.ID), err)
			}
			return err
		}

		result = repositories.OrderCreateResult{OrderID: order.ID, OrderNumber: doc.OrderNumber}
		return nil
	})
	if err != nil {
		return repositories.OrderCreateResult{}, wrapOrderError("orders.create", err)
	}
	return result, nil
}

// FindByID loads a single order.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (domain.Order, error) {
	if r == nil || r.provider == nil {
		return domain.Order{}, errors.New("order repository not initialised")
	}
	orderID = normalizedID(orderID)
	if orderID == "" {
		return domain.Order{}, repositories.NewOrderError(repositories.OrderErrorInvalidInput, "order find: order id is required", nil)
	}

	doc, err := r.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, wrapOrderError("orders.find", err)
	}
	return doc.Data.toDomain(doc.ID), nil
}

type stockRequirement struct {
	productID string
	quantity  int
}

// aggregateStockRequirements sums quantities per product, preserving first
// occurrence order. A cart may legitimately carry the same product on several
// lines; validating and decrementing per line would read the same initial
// stock twice and let the combined quantity oversell, with the later write
// clobbering the earlier decrement. Each product is therefore read, checked,
// and written exactly once against the combined quantity.
func aggregateStockRequirements(items []domain.OrderLineItem) ([]stockRequirement, error) {
	requirements := make([]stockRequirement, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		productID := normalizedID(item.ProductID)
		if productID == "" {
			return nil, repositories.NewOrderError(repositories.OrderErrorInvalidInput, "order create: item without product id", nil)
		}
		if item.Quantity <= 0 {
			return nil, repositories.NewOrderError(repositories.OrderErrorInvalidInput, fmt.Sprintf("order create: quantity for %s must be positive", productID), nil)
		}
		if pos, ok := index[productID]; ok {
			requirements[pos].quantity += item.Quantity
			continue
		}
		index[productID] = len(requirements)
		requirements = append(requirements, stockRequirement{productID: productID, quantity: item.Quantity})
	}
	return requirements, nil
}

func (r *OrderRepository) nextSequence(tx *firestore.Transaction, counterRef *firestore.DocumentRef) (int64, error) {
	snap, err := tx.Get(counterRef)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 1, nil
		}
		return 0, err
	}
	var counter counterDocument
	if err := snap.DataTo(&counter); err != nil {
		return 0, fmt.Errorf("decode order counter: %w", err)
	}
	return counter.Value + 1, nil
}

func wrapOrderError(op string, err error) error {
	if err == nil {
		return nil
	}
	var orderErr *repositories.OrderError
	if errors.As(err, &orderErr) {
		if orderErr.Op == "" {
			orderErr.Op = op
		}
		return orderErr
	}
	return pfirestore.WrapError(op, err)
}
