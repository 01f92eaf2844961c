package domain

// Governorate identifies one of Tunisia's 24 administrative regions. The set
// is closed; the storefront only ever submits values from this list.
type Governorate string

const (
	GovernorateTunis      Governorate = "tunis"
	GovernorateAriana     Governorate = "ariana"
	GovernorateBenArous   Governorate = "ben_arous"
	GovernorateManouba    Governorate = "manouba"
	GovernorateNabeul     Governorate = "nabeul"
	GovernorateZaghouan   Governorate = "zaghouan"
	GovernorateBizerte    Governorate = "bizerte"
	GovernorateBeja       Governorate = "beja"
	GovernorateJendouba   Governorate = "jendouba"
	GovernorateKef        Governorate = "kef"
	GovernorateSiliana    Governorate = "siliana"
	GovernorateSousse     Governorate = "sousse"
	GovernorateMonastir   Governorate = "monastir"
	GovernorateMahdia     Governorate = "mahdia"
	GovernorateSfax       Governorate = "sfax"
	GovernorateKairouan   Governorate = "kairouan"
	GovernorateKasserine  Governorate = "kasserine"
	GovernorateSidiBouzid Governorate = "sidi_bouzid"
	GovernorateGabes      Governorate = "gabes"
	GovernorateMedenine   Governorate = "medenine"
	GovernorateTataouine  Governorate = "tataouine"
	GovernorateGafsa      Governorate = "gafsa"
	GovernorateTozeur     Governorate = "tozeur"
	GovernorateKebili     Governorate = "kebili"
)

// ShippingTier groups governorates into the four delivery pricing zones.
type ShippingTier string

const (
	TierMetropolitan ShippingTier = "metropolitan"
	TierNorth        ShippingTier = "north"
	TierCenter       ShippingTier = "center"
	TierSouth        ShippingTier = "south"
)

// governorateTiers is the permanent assignment of every governorate to its
// tariff tier. This is static configuration, not derived data.
var governorateTiers = map[Governorate]ShippingTier{
	GovernorateTunis:    TierMetropolitan,
	GovernorateAriana:   TierMetropolitan,
	GovernorateBenArous: TierMetropolitan,
	GovernorateManouba:  TierMetropolitan,

	GovernorateNabeul:   TierNorth,
	GovernorateZaghouan: TierNorth,
	GovernorateBizerte:  TierNorth,
	GovernorateBeja:     TierNorth,
	GovernorateJendouba: TierNorth,
	GovernorateKef:      TierNorth,
	GovernorateSiliana:  TierNorth,

	GovernorateSousse:     TierCenter,
	GovernorateMonastir:   TierCenter,
	GovernorateMahdia:     TierCenter,
	GovernorateSfax:       TierCenter,
	GovernorateKairouan:   TierCenter,
	GovernorateKasserine:  TierCenter,
	GovernorateSidiBouzid: TierCenter,

	GovernorateGabes:     TierSouth,
	GovernorateMedenine:  TierSouth,
	GovernorateTataouine: TierSouth,
	GovernorateGafsa:     TierSouth,
	GovernorateTozeur:    TierSouth,
	GovernorateKebili:    TierSouth,
}

var allGovernorates = []Governorate{
	GovernorateTunis, GovernorateAriana, GovernorateBenArous, GovernorateManouba,
	GovernorateNabeul, GovernorateZaghouan, GovernorateBizerte, GovernorateBeja,
	GovernorateJendouba, GovernorateKef, GovernorateSiliana,
	GovernorateSousse, GovernorateMonastir, GovernorateMahdia, GovernorateSfax,
	GovernorateKairouan, GovernorateKasserine, GovernorateSidiBouzid,
	GovernorateGabes, GovernorateMedenine, GovernorateTataouine,
	GovernorateGafsa, GovernorateTozeur, GovernorateKebili,
}

// Governorates returns the full closed set in a stable tier order.
func Governorates() []Governorate {
	out := make([]Governorate, len(allGovernorates))
	copy(out, allGovernorates)
	return out
}

// TierOf performs the reverse lookup from governorate to tariff tier. The
// second return value is false for identifiers outside the closed set;
// callers that must always produce a fee fall back to TierCenter.
func TierOf(g Governorate) (ShippingTier, bool) {
	tier, ok := governorateTiers[g]
	return tier, ok
}

// TariffSchedule carries the two fee values of one tier. The wholesale fee is
// never above the retail fee.
type TariffSchedule struct {
	RetailFee    Millimes
	WholesaleFee Millimes
}
