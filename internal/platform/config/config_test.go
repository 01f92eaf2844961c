package config

import (
	"testing"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Firestore.OrdersCollection != "orders" {
		t.Fatalf("orders collection = %q", cfg.Firestore.OrdersCollection)
	}
	if cfg.Firestore.ProductsCollection != "products" {
		t.Fatalf("products collection = %q", cfg.Firestore.ProductsCollection)
	}
	if cfg.PubSub.OrderEventsTopic != "order-events" {
		t.Fatalf("topic = %q", cfg.PubSub.OrderEventsTopic)
	}
	if cfg.Checkout.CODFee != domain.Millimes(2_000) {
		t.Fatalf("cod fee = %d", cfg.Checkout.CODFee)
	}
	if cfg.Checkout.WholesaleFreeShipping != domain.Millimes(500_000) {
		t.Fatalf("free shipping threshold = %d", cfg.Checkout.WholesaleFreeShipping)
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv("CHECKOUT_COD_FEE", "3.500")
	t.Setenv("CHECKOUT_WHOLESALE_FREE_SHIPPING_OVER", "750.000")
	t.Setenv("FIRESTORE_ORDERS_COLLECTION", "orders_v2")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "ghalinino-staging")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Checkout.CODFee != domain.Millimes(3_500) {
		t.Fatalf("cod fee = %d", cfg.Checkout.CODFee)
	}
	if cfg.Checkout.WholesaleFreeShipping != domain.Millimes(750_000) {
		t.Fatalf("threshold = %d", cfg.Checkout.WholesaleFreeShipping)
	}
	if cfg.Firestore.OrdersCollection != "orders_v2" {
		t.Fatalf("orders collection = %q", cfg.Firestore.OrdersCollection)
	}
	if cfg.Firestore.ProjectID != "ghalinino-staging" {
		t.Fatalf("firestore project = %q", cfg.Firestore.ProjectID)
	}
	if cfg.PubSub.ProjectID != "ghalinino-staging" {
		t.Fatalf("pubsub project = %q", cfg.PubSub.ProjectID)
	}
}

func TestLoadFileRejectsBadAmount(t *testing.T) {
	t.Setenv("CHECKOUT_COD_FEE", "two dinars")
	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected parse error")
	}
}
