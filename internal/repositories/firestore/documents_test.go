package firestore

import (
	"errors"
	"testing"
	"time"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
)

func TestFormatOrderNumber(t *testing.T) {
	if got := formatOrderNumber(2026, 1); got != "GH-2026-000001" {
		t.Fatalf("number = %q", got)
	}
	if got := formatOrderNumber(2026, 123456); got != "GH-2026-123456" {
		t.Fatalf("number = %q", got)
	}
	if got := orderCounterID(2026); got != "orders-2026" {
		t.Fatalf("counter id = %q", got)
	}
}

func TestNewOrderDocument(t *testing.T) {
	wholesale := domain.Millimes(40_000)
	created := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	order := domain.Order{
		ID:            "ord_01",
		UserID:        "user-1",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: domain.PaymentMethodCashOnDelivery,
		Wholesale:     true,
		Address: domain.Address{
			Recipient:   "Oussama Trabelsi",
			Line1:       "12 Rue de Marseille",
			City:        "Tunis",
			Governorate: domain.GovernorateTunis,
			Phone:       "21612345",
		},
		Totals: domain.CheckoutTotals{Subtotal: 80_000, ShippingFee: 4_000, CODFee: 2_000, Total: 86_000},
		Items: []domain.OrderLineItem{
			{
				ProductID:  "prod-1",
				Quantity:   2,
				UnitPrice:  wholesale,
				TotalPrice: 80_000,
				Snapshot: domain.ProductSnapshot{
					ProductID: "prod-1",
					Name:      domain.BilingualText{Ar: "قميص", Fr: "Chemise"},
					ImageRef:  "images/prod-1.jpg",
				},
				IsWholesalePrice: true,
			},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	doc := newOrderDocument(order)
	if doc.Guest != nil {
		t.Fatal("registered order must not carry guest contact")
	}
	if len(doc.Items) != 1 || doc.Items[0].Name.Fr != "Chemise" || !doc.Items[0].IsWholesalePrice {
		t.Fatalf("unexpected items %+v", doc.Items)
	}
	if doc.Totals.Total != 86_000 {
		t.Fatalf("total = %d", doc.Totals.Total)
	}

	back := doc.toDomain("ord_01")
	if back.ID != "ord_01" || back.Address.Governorate != domain.GovernorateTunis {
		t.Fatalf("round trip order %+v", back)
	}
	if back.Items[0].Snapshot.Name.Ar == "" {
		t.Fatal("snapshot name lost")
	}

	order.UserID = ""
	order.Guest = &domain.GuestContact{Email: "buyer@example.tn", Phone: "21698765"}
	guestDoc := newOrderDocument(order)
	if guestDoc.Guest == nil || guestDoc.Guest.Email != "buyer@example.tn" {
		t.Fatalf("guest contact not mapped: %+v", guestDoc.Guest)
	}
}

func TestProductDocumentToDomain(t *testing.T) {
	wholesale := int64(40_000)
	doc := productDocument{
		Name:           bilingualDocument{Fr: "Chemise"},
		RetailPrice:    50_000,
		WholesalePrice: &wholesale,
		Stock:          7,
		Active:         true,
	}
	product := doc.toDomain("prod-1")
	if product.ID != "prod-1" || product.Price.RetailPrice != 50_000 {
		t.Fatalf("product %+v", product)
	}
	if product.Price.WholesalePrice == nil || *product.Price.WholesalePrice != 40_000 {
		t.Fatal("wholesale price lost")
	}

	doc.WholesalePrice = nil
	if got := doc.toDomain("prod-1").Price.WholesalePrice; got != nil {
		t.Fatalf("expected nil wholesale price, got %v", got)
	}
}

func TestWrapOrderErrorStampsOp(t *testing.T) {
	orderErr := repositories.NewOrderError(repositories.OrderErrorInsufficientStock, "Insufficient stock for product prod-1", nil)
	wrapped := wrapOrderError("orders.create", orderErr)

	var typed *repositories.OrderError
	if !errors.As(wrapped, &typed) {
		t.Fatalf("expected OrderError, got %T", wrapped)
	}
	if typed.Op != "orders.create" {
		t.Fatalf("op = %q", typed.Op)
	}
	if typed.Code != repositories.OrderErrorInsufficientStock {
		t.Fatalf("code = %q", typed.Code)
	}

	if wrapOrderError("orders.create", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
