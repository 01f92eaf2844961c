package firestore

import (
	"errors"
	"testing"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
)

func TestAggregateStockRequirementsMergesDuplicateLines(t *testing.T) {
	items := []domain.OrderLineItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
		{ProductID: "prod-1", Quantity: 2},
	}

	requirements, err := aggregateStockRequirements(items)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(requirements))
	}
	if requirements[0].productID != "prod-1" || requirements[0].quantity != 4 {
		t.Fatalf("prod-1 requirement = %+v", requirements[0])
	}
	if requirements[1].productID != "prod-2" || requirements[1].quantity != 1 {
		t.Fatalf("prod-2 requirement = %+v", requirements[1])
	}
}

func TestAggregateStockRequirementsCombinedQuantityDecidesSufficiency(t *testing.T) {
	// Two lines of 2 against a stock of 3: each line fits on its own, so a
	// per-line check would pass and oversell. The aggregated requirement of 4
	// is what the transaction compares against the stock document.
	items := []domain.OrderLineItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-1", Quantity: 2},
	}

	requirements, err := aggregateStockRequirements(items)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(requirements))
	}
	stock := 3
	if stock >= requirements[0].quantity {
		t.Fatalf("combined quantity %d must exceed stock %d", requirements[0].quantity, stock)
	}
}

func TestAggregateStockRequirementsRejectsMalformedItems(t *testing.T) {
	cases := []struct {
		name  string
		items []domain.OrderLineItem
	}{
		{"empty product id", []domain.OrderLineItem{{ProductID: "  ", Quantity: 1}}},
		{"zero quantity", []domain.OrderLineItem{{ProductID: "prod-1", Quantity: 0}}},
		{"negative quantity", []domain.OrderLineItem{{ProductID: "prod-1", Quantity: -2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := aggregateStockRequirements(tc.items)
			var orderErr *repositories.OrderError
			if !errors.As(err, &orderErr) {
				t.Fatalf("expected OrderError, got %v", err)
			}
			if orderErr.Code != repositories.OrderErrorInvalidInput {
				t.Fatalf("code = %q", orderErr.Code)
			}
		})
	}
}
