package services

import (
	"testing"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

func mustShippingRates(t *testing.T) *ShippingRates {
	t.Helper()
	rates, err := NewShippingRates(ShippingRatesDeps{})
	if err != nil {
		t.Fatalf("NewShippingRates: %v", err)
	}
	return rates
}

func TestShippingRatesWholesaleNeverAboveRetail(t *testing.T) {
	rates := mustShippingRates(t)
	for _, region := range domain.Governorates() {
		retail := rates.Fee(region, false, 0)
		wholesale := rates.Fee(region, true, 0)
		if wholesale > retail {
			t.Errorf("region %s: wholesale fee %s exceeds retail fee %s", region, wholesale, retail)
		}
	}
}

func TestShippingRatesRejectsInvertedSchedule(t *testing.T) {
	_, err := NewShippingRates(ShippingRatesDeps{
		Tariffs: map[domain.ShippingTier]domain.TariffSchedule{
			domain.TierMetropolitan: {RetailFee: 4_000, WholesaleFee: 5_000},
			domain.TierNorth:        {RetailFee: 7_000, WholesaleFee: 5_000},
			domain.TierCenter:       {RetailFee: 8_000, WholesaleFee: 6_000},
			domain.TierSouth:        {RetailFee: 10_000, WholesaleFee: 8_000},
		},
	})
	if err == nil {
		t.Fatal("expected constructor to reject wholesale fee above retail fee")
	}
}

func TestShippingRatesResolveTier(t *testing.T) {
	rates := mustShippingRates(t)

	cases := []struct {
		region domain.Governorate
		want   domain.ShippingTier
	}{
		{domain.GovernorateTunis, domain.TierMetropolitan},
		{domain.GovernorateBizerte, domain.TierNorth},
		{domain.GovernorateSfax, domain.TierCenter},
		{domain.GovernorateGabes, domain.TierSouth},
		// Unknown identifiers fall back to center so checkout still completes.
		{domain.Governorate("carthage"), domain.TierCenter},
	}
	for _, tc := range cases {
		if got := rates.ResolveTier(tc.region); got != tc.want {
			t.Errorf("ResolveTier(%s) = %s, want %s", tc.region, got, tc.want)
		}
	}
}

func TestShippingRatesFreeShippingThresholdBoundary(t *testing.T) {
	rates := mustShippingRates(t)
	threshold := rates.FreeShippingThreshold()

	if got := rates.Fee(domain.GovernorateSousse, true, threshold); got != 0 {
		t.Errorf("fee at exact threshold = %s, want 0.000", got)
	}
	if got := rates.Fee(domain.GovernorateSousse, true, threshold-1); got != 6_000 {
		t.Errorf("fee one millime under threshold = %s, want 6.000", got)
	}

	// The threshold is a wholesale-only benefit.
	if got := rates.Fee(domain.GovernorateSousse, false, threshold*2); got != 8_000 {
		t.Errorf("retail fee above threshold = %s, want 8.000", got)
	}
}

func TestShippingRatesRetailFees(t *testing.T) {
	rates := mustShippingRates(t)

	cases := []struct {
		region domain.Governorate
		want   domain.Millimes
	}{
		{domain.GovernorateTunis, 5_000},
		{domain.GovernorateNabeul, 7_000},
		{domain.GovernorateKairouan, 8_000},
		{domain.GovernorateTataouine, 10_000},
	}
	for _, tc := range cases {
		if got := rates.Fee(tc.region, false, 100_000); got != tc.want {
			t.Errorf("retail fee for %s = %s, want %s", tc.region, got, tc.want)
		}
	}
}
