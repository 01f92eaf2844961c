package domain

import (
	"strings"
	"time"
)

// BilingualText carries the Arabic and French renderings of a storefront
// string. Product snapshots store both so an order keeps displaying correctly
// in either language after the catalog changes.
type BilingualText struct {
	Ar string
	Fr string
}

// In returns the rendering for the given language ("ar" or "fr"), falling
// back to the other language when one side is empty.
func (t BilingualText) In(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ar":
		if t.Ar != "" {
			return t.Ar
		}
		return t.Fr
	default:
		if t.Fr != "" {
			return t.Fr
		}
		return t.Ar
	}
}

// PaymentMethod enumerates the supported means of payment at checkout.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodOnlineGateway  PaymentMethod = "online_gateway"
)

// Valid reports whether the method belongs to the closed enumeration.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCashOnDelivery, PaymentMethodBankTransfer, PaymentMethodOnlineGateway:
		return true
	}
	return false
}

// OrderStatus models the order lifecycle maintained by the admin console.
// Checkout only ever creates orders in OrderStatusPending.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// PaymentStatus tracks settlement independently of fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusDelivered:  {OrderStatusRefunded},
}

// CanTransition reports whether the order status machine allows moving from
// one status to another. Cancelled and refunded are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Address is the delivery destination captured at checkout. Billing is always
// identical to shipping; no separate billing address is modelled.
type Address struct {
	Recipient   string
	Line1       string
	Line2       string
	City        string
	Governorate Governorate
	PostalCode  string
	Phone       string
}

// GuestContact identifies an unregistered buyer on an order.
type GuestContact struct {
	Email string
	Phone string
}

// AccountContext describes the buyer at submission time: either a registered
// platform user (UserID set) or a guest (Guest set), plus the wholesale
// eligibility decided by the out-of-scope approval workflow.
type AccountContext struct {
	UserID    string
	Wholesale bool
	Guest     *GuestContact
}

// Registered reports whether the context belongs to a signed-in user.
func (a AccountContext) Registered() bool {
	return strings.TrimSpace(a.UserID) != ""
}

// ProductPriceFields is the price basis a cart line carries for one product.
// WholesalePrice is nil when the product has no wholesale offer.
type ProductPriceFields struct {
	RetailPrice    Millimes
	WholesalePrice *Millimes
	CompareAtPrice *Millimes
}

// UnitPrice resolves the applicable unit price. The wholesale price applies
// only when the account is wholesale-eligible and the product defines one.
func (p ProductPriceFields) UnitPrice(wholesale bool) Millimes {
	if wholesale && p.WholesalePrice != nil {
		return *p.WholesalePrice
	}
	return p.RetailPrice
}

// CartLine is one position of the cart snapshot handed to checkout.
type CartLine struct {
	ProductID string
	Quantity  int
	Price     ProductPriceFields
	Name      BilingualText
	ImageRef  string
}

// Cart is the ordered list of lines presented for submission.
type Cart struct {
	Lines []CartLine
}

// CheckoutTotals is the immutable totals snapshot shown at review time and
// re-derived by the submission adapter. Total is never negative.
type CheckoutTotals struct {
	Subtotal    Millimes
	ShippingFee Millimes
	CODFee      Millimes
	Discount    Millimes
	Total       Millimes
}

// ProductSnapshot freezes product identity on an order line at creation time,
// independent of later catalog renames, re-pricing, or deletion.
type ProductSnapshot struct {
	ProductID string
	Name      BilingualText
	ImageRef  string
}

// OrderLineItem is the persisted form of a cart line.
type OrderLineItem struct {
	ProductID        string
	Quantity         int
	UnitPrice        Millimes
	TotalPrice       Millimes
	Snapshot         ProductSnapshot
	IsWholesalePrice bool
}

// Order is the order header plus its line items as stored by the platform.
type Order struct {
	ID            string
	OrderNumber   string
	UserID        string
	Guest         *GuestContact
	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	Wholesale     bool
	Address       Address
	Note          string
	Totals        CheckoutTotals
	Items         []OrderLineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
