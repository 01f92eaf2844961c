package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
)

const (
	orderIDPrefix     = "ord_"
	orderEventCreated = "order.created"
)

var (
	// ErrCheckoutInvalidInput indicates the caller supplied invalid input
	// parameters such as an empty cart or a missing shipping region.
	ErrCheckoutInvalidInput = errors.New("checkout: invalid input")
	// ErrCheckoutInsufficientStock indicates the remote order creation found a
	// line item quantity above the stock on hand. The buyer should adjust
	// quantities rather than retry blindly.
	ErrCheckoutInsufficientStock = errors.New("checkout: insufficient stock")
	// ErrCheckoutProductUnavailable indicates a referenced product disappeared
	// from the catalog between cart and submission.
	ErrCheckoutProductUnavailable = errors.New("checkout: product unavailable")
	// ErrCheckoutSubmitFailed covers network failures and unclassified remote
	// errors; the buyer is invited to retry manually.
	ErrCheckoutSubmitFailed = errors.New("checkout: submission failed")
)

// legacyInsufficientStockMarker is the free-text marker the platform's
// original order-creation procedure embedded in failure messages. Matching on
// it is a compatibility shim only; the structured OrderError code is the
// authoritative signal and this string is consulted solely for errors that
// carry no code.
const legacyInsufficientStockMarker = "insufficient stock"

// CheckoutServiceDeps wires the dependencies required by the checkout service.
type CheckoutServiceDeps struct {
	Orders      repositories.OrderRepository
	Products    repositories.ProductRepository
	Calculator  *TotalsCalculator
	Events      OrderEventPublisher
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(ctx context.Context, event string, fields map[string]any)
}

type checkoutService struct {
	orders     repositories.OrderRepository
	products   repositories.ProductRepository
	calculator *TotalsCalculator
	events     OrderEventPublisher
	validate   *validator.Validate
	now        func() time.Time
	newID      func() string
	logger     func(ctx context.Context, event string, fields map[string]any)
}

// NewCheckoutService constructs a CheckoutService validating required
// dependencies.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Orders == nil {
		return nil, errors.New("checkout service: order repository is required")
	}
	if deps.Calculator == nil {
		return nil, errors.New("checkout service: totals calculator is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return orderIDPrefix + ulid.Make().String()
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &checkoutService{
		orders:     deps.Orders,
		products:   deps.Products,
		calculator: deps.Calculator,
		events:     deps.Events,
		validate:   validator.New(),
		now: func() time.Time {
			return clock().UTC()
		},
		newID:  idGen,
		logger: logger,
	}, nil
}

// QuoteTotals prices the current checkout state; see TotalsCalculator.
func (s *checkoutService) QuoteTotals(_ context.Context, cmd QuoteTotalsCommand) domain.CheckoutTotals {
	return s.calculator.Calculate(cmd.Subtotal, cmd.Region, cmd.PaymentMethod, cmd.Wholesale, cmd.Discount)
}

// RefreshCart reloads current catalog data for every line. Lines whose
// product vanished or was deactivated are dropped; quantities are preserved.
func (s *checkoutService) RefreshCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if s.products == nil || len(cart.Lines) == 0 {
		return cart, nil
	}

	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		s.logger(ctx, "checkout.refresh_failed", map[string]any{"error": err.Error()})
		return domain.Cart{}, ErrCheckoutSubmitFailed
	}

	refreshed := domain.Cart{Lines: make([]domain.CartLine, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok || !product.Active {
			s.logger(ctx, "checkout.line_dropped", map[string]any{"productId": line.ProductID})
			continue
		}
		line.Price = product.Price
		line.Name = product.Name
		line.ImageRef = product.ImageRef
		refreshed.Lines = append(refreshed.Lines, line)
	}
	return refreshed, nil
}

// SubmitOrder builds the normalized order payload and invokes the remote
// atomic order creation. The sequence resolver -> calculator -> adapter is
// strictly sequential; callers must not pass a totals snapshot computed
// before the final shipping-region selection, and must disable the submit
// action while a submission is in flight.
func (s *checkoutService) SubmitOrder(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := s.validateSubmission(cmd); err != nil {
		return SubmitOrderResult{}, err
	}

	now := s.now()
	items := buildLineItems(cmd.Cart, cmd.Account.Wholesale)

	totals := cmd.Totals
	totals.Total = RecomputeTotal(totals)

	order := domain.Order{
		ID:            s.newID(),
		UserID:        strings.TrimSpace(cmd.Account.UserID),
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: cmd.PaymentMethod,
		Wholesale:     cmd.Account.Wholesale,
		Address:       cmd.Address,
		Note:          strings.TrimSpace(cmd.Note),
		Totals:        totals,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !cmd.Account.Registered() && cmd.Account.Guest != nil {
		guest := *cmd.Account.Guest
		order.Guest = &guest
	}

	result, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return SubmitOrderResult{}, s.translateOrderError(ctx, err)
	}

	s.publishCreated(ctx, order, result)

	return SubmitOrderResult{OrderID: result.OrderID, OrderNumber: result.OrderNumber}, nil
}

func (s *checkoutService) validateSubmission(cmd SubmitOrderCommand) error {
	if len(cmd.Cart.Lines) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrCheckoutInvalidInput)
	}
	for _, line := range cmd.Cart.Lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("%w: cart line without product", ErrCheckoutInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity for %s must be positive", ErrCheckoutInvalidInput, line.ProductID)
		}
		if line.Price.RetailPrice < 0 {
			return fmt.Errorf("%w: negative price for %s", ErrCheckoutInvalidInput, line.ProductID)
		}
	}
	if !cmd.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrCheckoutInvalidInput, cmd.PaymentMethod)
	}
	if strings.TrimSpace(string(cmd.Address.Governorate)) == "" {
		return fmt.Errorf("%w: shipping region is required", ErrCheckoutInvalidInput)
	}
	if cmd.Totals.Subtotal < 0 || cmd.Totals.ShippingFee < 0 || cmd.Totals.CODFee < 0 || cmd.Totals.Discount < 0 {
		return fmt.Errorf("%w: negative totals component", ErrCheckoutInvalidInput)
	}

	if !cmd.Account.Registered() {
		guest := cmd.Account.Guest
		if guest == nil || (strings.TrimSpace(guest.Email) == "" && strings.TrimSpace(guest.Phone) == "") {
			return fmt.Errorf("%w: guest orders need an email or phone contact", ErrCheckoutInvalidInput)
		}
		if err := s.validate.Var(strings.TrimSpace(guest.Email), "omitempty,email"); err != nil {
			return fmt.Errorf("%w: malformed guest email", ErrCheckoutInvalidInput)
		}
		if err := s.validate.Var(strings.TrimSpace(guest.Phone), "omitempty,min=8,max=20"); err != nil {
			return fmt.Errorf("%w: malformed guest phone", ErrCheckoutInvalidInput)
		}
	}
	return nil
}

// buildLineItems resolves the applicable unit price per line and captures the
// immutable product snapshot the order will display forever.
func buildLineItems(cart domain.Cart, wholesale bool) []domain.OrderLineItem {
	items := make([]domain.OrderLineItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		unit := line.Price.UnitPrice(wholesale)
		items = append(items, domain.OrderLineItem{
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			UnitPrice:        unit,
			TotalPrice:       unit.MulQuantity(line.Quantity),
			IsWholesalePrice: wholesale && line.Price.WholesalePrice != nil,
			Snapshot: domain.ProductSnapshot{
				ProductID: line.ProductID,
				Name:      line.Name,
				ImageRef:  line.ImageRef,
			},
		})
	}
	return items
}

// translateOrderError maps repository failures onto the checkout error
// taxonomy. The structured OrderError code decides first; the legacy
// message-marker shim applies only to errors without a code.
func (s *checkoutService) translateOrderError(ctx context.Context, err error) error {
	var orderErr *repositories.OrderError
	if errors.As(err, &orderErr) {
		switch orderErr.Code {
		case repositories.OrderErrorInsufficientStock:
			return ErrCheckoutInsufficientStock
		case repositories.OrderErrorProductNotFound:
			return ErrCheckoutProductUnavailable
		case repositories.OrderErrorInvalidInput:
			return ErrCheckoutInvalidInput
		}
	} else if strings.Contains(strings.ToLower(err.Error()), legacyInsufficientStockMarker) {
		return ErrCheckoutInsufficientStock
	}

	s.logger(ctx, "checkout.submit_failed", map[string]any{"error": err.Error()})
	return fmt.Errorf("%w: %s", ErrCheckoutSubmitFailed, err.Error())
}

func (s *checkoutService) publishCreated(ctx context.Context, order domain.Order, result repositories.OrderCreateResult) {
	if s.events == nil {
		return
	}
	event := OrderEvent{
		Type:        orderEventCreated,
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		UserID:      order.UserID,
		Wholesale:   order.Wholesale,
		Total:       order.Totals.Total,
		OccurredAt:  s.now(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logger(ctx, "checkout.event_publish_failed", map[string]any{
			"orderId": result.OrderID,
			"error":   err.Error(),
		})
	}
}
