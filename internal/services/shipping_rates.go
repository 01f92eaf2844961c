package services

import (
	"fmt"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// Default tariff schedule, in millimes. Wholesale accounts ship free above
// the subtotal threshold; every tier charges wholesale accounts at most the
// retail fee.
const defaultWholesaleFreeShippingThreshold = domain.Millimes(500_000)

var defaultTariffs = map[domain.ShippingTier]domain.TariffSchedule{
	domain.TierMetropolitan: {RetailFee: 5_000, WholesaleFee: 4_000},
	domain.TierNorth:        {RetailFee: 7_000, WholesaleFee: 5_000},
	domain.TierCenter:       {RetailFee: 8_000, WholesaleFee: 6_000},
	domain.TierSouth:        {RetailFee: 10_000, WholesaleFee: 8_000},
}

// ShippingRates resolves a delivery destination to its tariff tier and fee.
// It is a pure lookup over static configuration and never fails: unknown
// region identifiers fall back to the center tier so checkout can always
// complete with a defined fee.
type ShippingRates struct {
	tiers     map[domain.ShippingTier]domain.TariffSchedule
	threshold domain.Millimes
}

// ShippingRatesDeps allows overriding the static schedule, e.g. from config.
type ShippingRatesDeps struct {
	Tariffs               map[domain.ShippingTier]domain.TariffSchedule
	FreeShippingThreshold domain.Millimes
}

// NewShippingRates constructs the resolver, enforcing the schedule
// invariants: all four tiers present, wholesale fee never above retail.
func NewShippingRates(deps ShippingRatesDeps) (*ShippingRates, error) {
	tariffs := deps.Tariffs
	if tariffs == nil {
		tariffs = defaultTariffs
	}
	for _, tier := range []domain.ShippingTier{domain.TierMetropolitan, domain.TierNorth, domain.TierCenter, domain.TierSouth} {
		schedule, ok := tariffs[tier]
		if !ok {
			return nil, fmt.Errorf("shipping rates: tier %s missing from schedule", tier)
		}
		if schedule.RetailFee < 0 || schedule.WholesaleFee < 0 {
			return nil, fmt.Errorf("shipping rates: tier %s has a negative fee", tier)
		}
		if schedule.WholesaleFee > schedule.RetailFee {
			return nil, fmt.Errorf("shipping rates: tier %s wholesale fee exceeds retail fee", tier)
		}
	}

	threshold := deps.FreeShippingThreshold
	if threshold <= 0 {
		threshold = defaultWholesaleFreeShippingThreshold
	}

	copied := make(map[domain.ShippingTier]domain.TariffSchedule, len(tariffs))
	for tier, schedule := range tariffs {
		copied[tier] = schedule
	}

	return &ShippingRates{tiers: copied, threshold: threshold}, nil
}

// ResolveTier maps a governorate to its tariff tier. Identifiers outside the
// closed set resolve to the center tier.
func (r *ShippingRates) ResolveTier(region domain.Governorate) domain.ShippingTier {
	tier, ok := domain.TierOf(region)
	if !ok {
		return domain.TierCenter
	}
	return tier
}

// Fee returns the shipping fee for the destination, account type, and order
// subtotal. Wholesale orders at or above the free-shipping threshold ship for
// free; otherwise the tier's wholesale or retail fee applies.
func (r *ShippingRates) Fee(region domain.Governorate, wholesale bool, subtotal domain.Millimes) domain.Millimes {
	schedule := r.tiers[r.ResolveTier(region)]
	if wholesale {
		if subtotal >= r.threshold {
			return 0
		}
		return schedule.WholesaleFee
	}
	return schedule.RetailFee
}

// FreeShippingThreshold exposes the wholesale threshold for UI hints
// ("spend X more for free shipping").
func (r *ShippingRates) FreeShippingThreshold() domain.Millimes {
	return r.threshold
}
