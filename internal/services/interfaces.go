package services

import (
	"context"
	"time"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// CheckoutService is the storefront-facing contract of the checkout core:
// quoting totals during the checkout steps and submitting the final order.
type CheckoutService interface {
	// QuoteTotals prices the current checkout state. Region may be nil while
	// the shipping step is incomplete; shipping is then quoted as zero and the
	// caller re-quotes once a destination is chosen.
	QuoteTotals(ctx context.Context, cmd QuoteTotalsCommand) domain.CheckoutTotals

	// RefreshCart reloads the catalog price basis and bilingual names for
	// every cart line so the submission uses current data.
	RefreshCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)

	// SubmitOrder converts the cart and computed totals into the normalized
	// payload and invokes the remote atomic order creation.
	SubmitOrder(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error)
}

// QuoteTotalsCommand carries the inputs of a totals computation.
type QuoteTotalsCommand struct {
	Subtotal      domain.Millimes
	Region        *domain.Governorate
	PaymentMethod domain.PaymentMethod
	Wholesale     bool
	Discount      domain.Millimes
}

// SubmitOrderCommand bundles everything the submission adapter needs.
type SubmitOrderCommand struct {
	Cart          domain.Cart
	Address       domain.Address
	PaymentMethod domain.PaymentMethod
	Totals        domain.CheckoutTotals
	Account       domain.AccountContext
	Note          string
}

// SubmitOrderResult reports the identifiers of the created order.
type SubmitOrderResult struct {
	OrderID     string
	OrderNumber string
}

// OrderEventPublisher publishes order domain events for downstream consumers
// (confirmation mails, admin dashboards). Publishing is best effort and never
// fails a submission.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// OrderEvent captures metadata for emitted order domain events.
type OrderEvent struct {
	Type        string
	OrderID     string
	OrderNumber string
	UserID      string
	Wholesale   bool
	Total       domain.Millimes
	OccurredAt  time.Time
}
