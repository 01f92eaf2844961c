package domain

// Product is the catalog record read back from the platform when refreshing a
// cart before submission. Stock is informational at that point; the atomic
// order-creation call is the authority for final stock validation.
type Product struct {
	ID       string
	Name     BilingualText
	ImageRef string
	Price    ProductPriceFields
	Stock    int
	Active   bool
}
