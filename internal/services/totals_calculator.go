package services

import (
	"errors"

	domain "github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// defaultCODFee is the flat cash-on-delivery surcharge: 2.000 TND.
const defaultCODFee = domain.Millimes(2_000)

// TotalsCalculator combines subtotal, shipping fee, payment-method surcharge,
// and discount into the final checkout total. All arithmetic runs on integer
// millimes, so repeated recomputation is exact and idempotent.
type TotalsCalculator struct {
	rates  *ShippingRates
	codFee domain.Millimes
}

// TotalsCalculatorDeps wires the tariff resolver and optional fee overrides.
type TotalsCalculatorDeps struct {
	Rates  *ShippingRates
	CODFee domain.Millimes
}

// NewTotalsCalculator constructs a TotalsCalculator validating required
// dependencies.
func NewTotalsCalculator(deps TotalsCalculatorDeps) (*TotalsCalculator, error) {
	if deps.Rates == nil {
		return nil, errors.New("totals calculator: shipping rates are required")
	}
	fee := deps.CODFee
	if fee <= 0 {
		fee = defaultCODFee
	}
	return &TotalsCalculator{rates: deps.Rates, codFee: fee}, nil
}

// Calculate derives the totals snapshot for the given checkout state. A nil
// region means the shipping step is incomplete; the shipping fee is then zero
// and the caller re-invokes once a destination is known. The total is clamped
// to zero when the discount exceeds the other components.
func (c *TotalsCalculator) Calculate(subtotal domain.Millimes, region *domain.Governorate, method domain.PaymentMethod, wholesale bool, discount domain.Millimes) domain.CheckoutTotals {
	var shipping domain.Millimes
	if region != nil {
		shipping = c.rates.Fee(*region, wholesale, subtotal)
	}

	var codFee domain.Millimes
	if method == domain.PaymentMethodCashOnDelivery {
		codFee = c.codFee
	}

	totals := domain.CheckoutTotals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		CODFee:      codFee,
		Discount:    discount,
	}
	totals.Total = RecomputeTotal(totals)
	return totals
}

// CODFee exposes the configured surcharge for display next to the
// payment-method choice.
func (c *TotalsCalculator) CODFee() domain.Millimes {
	return c.codFee
}

// RecomputeTotal derives the authoritative total from the four component
// fields. Submission never trusts a stored Total: the storefront may have
// passed the snapshot through any number of UI state transitions, so the
// total is always re-derived from the components with integer arithmetic.
func RecomputeTotal(t domain.CheckoutTotals) domain.Millimes {
	return (t.Subtotal + t.ShippingFee + t.CODFee - t.Discount).ClampNonNegative()
}
