package services

import (
	"math/rand"
	"testing"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

func mustCalculator(t *testing.T) *TotalsCalculator {
	t.Helper()
	calc, err := NewTotalsCalculator(TotalsCalculatorDeps{Rates: mustShippingRates(t)})
	if err != nil {
		t.Fatalf("NewTotalsCalculator: %v", err)
	}
	return calc
}

func regionPtr(g domain.Governorate) *domain.Governorate {
	return &g
}

func TestCalculateRetailCODGrandTunis(t *testing.T) {
	calc := mustCalculator(t)

	totals := calc.Calculate(150_000, regionPtr(domain.GovernorateTunis), domain.PaymentMethodCashOnDelivery, false, 0)

	if totals.ShippingFee != 5_000 {
		t.Errorf("shipping fee = %s, want 5.000", totals.ShippingFee)
	}
	if totals.CODFee != 2_000 {
		t.Errorf("cod fee = %s, want 2.000", totals.CODFee)
	}
	if totals.Total != 157_000 {
		t.Errorf("total = %s, want 157.000", totals.Total)
	}
}

func TestCalculateWholesaleOverThreshold(t *testing.T) {
	calc := mustCalculator(t)

	totals := calc.Calculate(600_000, regionPtr(domain.GovernorateSfax), domain.PaymentMethodBankTransfer, true, 0)

	if totals.ShippingFee != 0 {
		t.Errorf("shipping fee = %s, want 0.000", totals.ShippingFee)
	}
	if totals.CODFee != 0 {
		t.Errorf("cod fee = %s, want 0.000", totals.CODFee)
	}
	if totals.Total != 600_000 {
		t.Errorf("total = %s, want 600.000", totals.Total)
	}
}

func TestCalculateWholesaleUnderThresholdSouth(t *testing.T) {
	calc := mustCalculator(t)

	totals := calc.Calculate(300_000, regionPtr(domain.GovernorateGabes), domain.PaymentMethodBankTransfer, true, 0)

	if totals.ShippingFee != 8_000 {
		t.Errorf("shipping fee = %s, want 8.000", totals.ShippingFee)
	}
	if totals.Total != 308_000 {
		t.Errorf("total = %s, want 308.000", totals.Total)
	}
}

func TestCalculateCODFeeExclusivity(t *testing.T) {
	calc := mustCalculator(t)
	region := regionPtr(domain.GovernorateAriana)

	cases := []struct {
		method domain.PaymentMethod
		want   domain.Millimes
	}{
		{domain.PaymentMethodCashOnDelivery, 2_000},
		{domain.PaymentMethodBankTransfer, 0},
		{domain.PaymentMethodOnlineGateway, 0},
	}
	for _, tc := range cases {
		totals := calc.Calculate(50_000, region, tc.method, false, 0)
		if totals.CODFee != tc.want {
			t.Errorf("cod fee for %s = %s, want %s", tc.method, totals.CODFee, tc.want)
		}
	}
}

func TestCalculateNilRegionSkipsShipping(t *testing.T) {
	calc := mustCalculator(t)

	totals := calc.Calculate(90_000, nil, domain.PaymentMethodOnlineGateway, false, 0)
	if totals.ShippingFee != 0 {
		t.Errorf("shipping fee without region = %s, want 0.000", totals.ShippingFee)
	}
	if totals.Total != 90_000 {
		t.Errorf("total = %s, want 90.000", totals.Total)
	}
}

func TestCalculateTotalNeverNegative(t *testing.T) {
	calc := mustCalculator(t)

	totals := calc.Calculate(10_000, regionPtr(domain.GovernorateTunis), domain.PaymentMethodCashOnDelivery, false, 1_000_000)
	if totals.Total != 0 {
		t.Errorf("total with oversized discount = %s, want 0.000", totals.Total)
	}
	if totals.Discount != 1_000_000 {
		t.Errorf("discount must be carried unchanged, got %s", totals.Discount)
	}
}

// TestCalculateAdditivity recomputes the total independently for randomized
// inputs and checks idempotence: identical inputs must yield identical
// snapshots, and the total must equal the clamped component sum exactly.
func TestCalculateAdditivity(t *testing.T) {
	calc := mustCalculator(t)
	rng := rand.New(rand.NewSource(7))
	regions := domain.Governorates()
	methods := []domain.PaymentMethod{
		domain.PaymentMethodCashOnDelivery,
		domain.PaymentMethodBankTransfer,
		domain.PaymentMethodOnlineGateway,
	}

	for i := 0; i < 50; i++ {
		subtotal := domain.Millimes(rng.Int63n(2_000_000))
		discount := domain.Millimes(rng.Int63n(100_000))
		region := regions[rng.Intn(len(regions))]
		method := methods[rng.Intn(len(methods))]
		wholesale := rng.Intn(2) == 0

		first := calc.Calculate(subtotal, &region, method, wholesale, discount)
		second := calc.Calculate(subtotal, &region, method, wholesale, discount)
		if first != second {
			t.Fatalf("iteration %d: calculator is not idempotent: %+v vs %+v", i, first, second)
		}

		want := (first.Subtotal + first.ShippingFee + first.CODFee - first.Discount).ClampNonNegative()
		if first.Total != want {
			t.Fatalf("iteration %d: total %s does not match component sum %s", i, first.Total, want)
		}
	}
}
