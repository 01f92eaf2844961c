package firestore

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

type bilingualDocument struct {
	Ar string `firestore:"ar,omitempty"`
	Fr string `firestore:"fr,omitempty"`
}

func newBilingualDocument(text domain.BilingualText) bilingualDocument {
	return bilingualDocument{Ar: text.Ar, Fr: text.Fr}
}

func (d bilingualDocument) toDomain() domain.BilingualText {
	return domain.BilingualText{Ar: d.Ar, Fr: d.Fr}
}

type addressDocument struct {
	Recipient   string `firestore:"recipient"`
	Line1       string `firestore:"line1"`
	Line2       string `firestore:"line2,omitempty"`
	City        string `firestore:"city"`
	Governorate string `firestore:"governorate"`
	PostalCode  string `firestore:"postalCode,omitempty"`
	Phone       string `firestore:"phone"`
}

func newAddressDocument(addr domain.Address) addressDocument {
	return addressDocument{
		Recipient:   addr.Recipient,
		Line1:       addr.Line1,
		Line2:       addr.Line2,
		City:        addr.City,
		Governorate: string(addr.Governorate),
		PostalCode:  addr.PostalCode,
		Phone:       addr.Phone,
	}
}

func (d addressDocument) toDomain() domain.Address {
	return domain.Address{
		Recipient:   d.Recipient,
		Line1:       d.Line1,
		Line2:       d.Line2,
		City:        d.City,
		Governorate: domain.Governorate(d.Governorate),
		PostalCode:  d.PostalCode,
		Phone:       d.Phone,
	}
}

type guestContactDocument struct {
	Email string `firestore:"email,omitempty"`
	Phone string `firestore:"phone,omitempty"`
}

// totalsDocument mirrors the platform's order schema. Tax is always zero for
// now but stays in the document so the schema matches reporting queries.
type totalsDocument struct {
	Subtotal    int64 `firestore:"subtotal"`
	ShippingFee int64 `firestore:"shippingFee"`
	CODFee      int64 `firestore:"codFee"`
	Discount    int64 `firestore:"discount"`
	Tax         int64 `firestore:"tax"`
	Total       int64 `firestore:"total"`
}

func newTotalsDocument(totals domain.CheckoutTotals) totalsDocument {
	return totalsDocument{
		Subtotal:    int64(totals.Subtotal),
		ShippingFee: int64(totals.ShippingFee),
		CODFee:      int64(totals.CODFee),
		Discount:    int64(totals.Discount),
		Total:       int64(totals.Total),
	}
}

func (d totalsDocument) toDomain() domain.CheckoutTotals {
	return domain.CheckoutTotals{
		Subtotal:    domain.Millimes(d.Subtotal),
		ShippingFee: domain.Millimes(d.ShippingFee),
		CODFee:      domain.Millimes(d.CODFee),
		Discount:    domain.Millimes(d.Discount),
		Total:       domain.Millimes(d.Total),
	}
}

type orderItemDocument struct {
	ProductID        string            `firestore:"productId"`
	Quantity         int               `firestore:"quantity"`
	UnitPrice        int64             `firestore:"unitPrice"`
	TotalPrice       int64             `firestore:"totalPrice"`
	Name             bilingualDocument `firestore:"name"`
	ImageRef         string            `firestore:"imageRef,omitempty"`
	IsWholesalePrice bool              `firestore:"isWholesalePrice"`
}

func newOrderItemDocument(item domain.OrderLineItem) orderItemDocument {
	return orderItemDocument{
		ProductID:        item.ProductID,
		Quantity:         item.Quantity,
		UnitPrice:        int64(item.UnitPrice),
		TotalPrice:       int64(item.TotalPrice),
		Name:             newBilingualDocument(item.Snapshot.Name),
		ImageRef:         item.Snapshot.ImageRef,
		IsWholesalePrice: item.IsWholesalePrice,
	}
}

func (d orderItemDocument) toDomain() domain.OrderLineItem {
	return domain.OrderLineItem{
		ProductID:        d.ProductID,
		Quantity:         d.Quantity,
		UnitPrice:        domain.Millimes(d.UnitPrice),
		TotalPrice:       domain.Millimes(d.TotalPrice),
		Snapshot: domain.ProductSnapshot{
			ProductID: d.ProductID,
			Name:      d.Name.toDomain(),
			ImageRef:  d.ImageRef,
		},
		IsWholesalePrice: d.IsWholesalePrice,
	}
}

type orderDocument struct {
	OrderNumber   string                `firestore:"orderNumber"`
	UserID        string                `firestore:"userId,omitempty"`
	Guest         *guestContactDocument `firestore:"guest,omitempty"`
	Status        string                `firestore:"status"`
	PaymentStatus string                `firestore:"paymentStatus"`
	PaymentMethod string                `firestore:"paymentMethod"`
	Wholesale     bool                  `firestore:"wholesale"`
	Address       addressDocument       `firestore:"address"`
	Note          string                `firestore:"note,omitempty"`
	Totals        totalsDocument        `firestore:"totals"`
	Items         []orderItemDocument   `firestore:"items"`
	CreatedAt     time.Time             `firestore:"createdAt"`
	UpdatedAt     time.Time             `firestore:"updatedAt"`
}

func newOrderDocument(order domain.Order) orderDocument {
	doc := orderDocument{
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		Wholesale:     order.Wholesale,
		Address:       newAddressDocument(order.Address),
		Note:          order.Note,
		Totals:        newTotalsDocument(order.Totals),
		Items:         make([]orderItemDocument, 0, len(order.Items)),
		CreatedAt:     order.CreatedAt.UTC(),
		UpdatedAt:     order.UpdatedAt.UTC(),
	}
	if order.Guest != nil {
		doc.Guest = &guestContactDocument{Email: order.Guest.Email, Phone: order.Guest.Phone}
	}
	for _, item := range order.Items {
		doc.Items = append(doc.Items, newOrderItemDocument(item))
	}
	return doc
}

func (d orderDocument) toDomain(id string) domain.Order {
	order := domain.Order{
		ID:            id,
		OrderNumber:   d.OrderNumber,
		UserID:        d.UserID,
		Status:        domain.OrderStatus(d.Status),
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		PaymentMethod: domain.PaymentMethod(d.PaymentMethod),
		Wholesale:     d.Wholesale,
		Address:       d.Address.toDomain(),
		Note:          d.Note,
		Totals:        d.Totals.toDomain(),
		Items:         make([]domain.OrderLineItem, 0, len(d.Items)),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Guest != nil {
		order.Guest = &domain.GuestContact{Email: d.Guest.Email, Phone: d.Guest.Phone}
	}
	for _, item := range d.Items {
		order.Items = append(order.Items, item.toDomain())
	}
	return order
}

type productDocument struct {
	Name           bilingualDocument `firestore:"name"`
	ImageRef       string            `firestore:"imageRef,omitempty"`
	RetailPrice    int64             `firestore:"retailPrice"`
	WholesalePrice *int64            `firestore:"wholesalePrice,omitempty"`
	CompareAtPrice *int64            `firestore:"compareAtPrice,omitempty"`
	Stock          int               `firestore:"stock"`
	Active         bool              `firestore:"active"`
}

func (d productDocument) toDomain(id string) domain.Product {
	product := domain.Product{
		ID:       id,
		Name:     d.Name.toDomain(),
		ImageRef: d.ImageRef,
		Price: domain.ProductPriceFields{
			RetailPrice: domain.Millimes(d.RetailPrice),
		},
		Stock:  d.Stock,
		Active: d.Active,
	}
	if d.WholesalePrice != nil {
		price := domain.Millimes(*d.WholesalePrice)
		product.Price.WholesalePrice = &price
	}
	if d.CompareAtPrice != nil {
		price := domain.Millimes(*d.CompareAtPrice)
		product.Price.CompareAtPrice = &price
	}
	return product
}

type counterDocument struct {
	Value int64 `firestore:"value"`
}

// formatOrderNumber renders the customer-facing order number, e.g.
// GH-2026-000123 for the 123rd order of 2026.
func formatOrderNumber(year int, sequence int64) string {
	return fmt.Sprintf("GH-%d-%06d", year, sequence)
}

// orderCounterID names the per-year counter document.
func orderCounterID(year int) string {
	return fmt.Sprintf("orders-%d", year)
}

func normalizedID(id string) string {
	return strings.TrimSpace(id)
}
