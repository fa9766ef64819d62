package domain

import (
	"strings"

	"rate-shopper/internal/core/money"
)

// ChargeCategory is the closed set of surcharge and additional charge kinds.
// Every calculator switches over all of them, so adding a member means
// deciding its cost bucket in each segment.
type ChargeCategory string

const (
	CategoryFuel        ChargeCategory = "FUEL"
	CategoryCOD         ChargeCategory = "COD"
	CategoryODA         ChargeCategory = "ODA"
	CategoryInsurance   ChargeCategory = "INSURANCE"
	CategoryRTO         ChargeCategory = "RTO"
	CategoryHandling    ChargeCategory = "HANDLING"
	CategoryDocumentFee ChargeCategory = "DOCUMENT_FEE"
	CategoryLoading     ChargeCategory = "LOADING"
	CategoryUnloading   ChargeCategory = "UNLOADING"
	CategoryToll        ChargeCategory = "TOLL"
	CategoryDetention   ChargeCategory = "DETENTION"
	CategoryOther       ChargeCategory = "OTHER"
)

var categoryAliases = map[string]ChargeCategory{
	"FUEL":           CategoryFuel,
	"FUEL_SURCHARGE": CategoryFuel,
	"COD":            CategoryCOD,
	"COD_FIXED":      CategoryCOD,
	"COD_PERCENTAGE": CategoryCOD,
	"ODA":            CategoryODA,
	"OUT_OF_AREA":    CategoryODA,
	"REMOTE_AREA":    CategoryODA,
	"INSURANCE":      CategoryInsurance,
	"RTO":            CategoryRTO,
	"RETURN_RISK":    CategoryRTO,
	"HANDLING":       CategoryHandling,
	"DOCUMENT_FEE":   CategoryDocumentFee,
	"DOC_FEE":        CategoryDocumentFee,
	"DOCKET":         CategoryDocumentFee,
	"LOADING":        CategoryLoading,
	"UNLOADING":      CategoryUnloading,
	"TOLL":           CategoryToll,
	"DETENTION":      CategoryDetention,
	"OTHER":          CategoryOther,
}

// ParseChargeCategory maps a stored category tag to the closed set.
// Unknown tags fall into CategoryOther.
func ParseChargeCategory(s string) ChargeCategory {
	if c, ok := categoryAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return c
	}
	return CategoryOther
}

// UnmarshalText lets JSON and database text decode through ParseChargeCategory.
func (c *ChargeCategory) UnmarshalText(b []byte) error {
	*c = ParseChargeCategory(string(b))
	return nil
}

// CalculationKind says how a charge value turns into an amount.
type CalculationKind string

const (
	// KindPercentage is Value percent of the calculator supplied basis.
	KindPercentage CalculationKind = "PERCENTAGE"
	// KindFixed is Value as is.
	KindFixed CalculationKind = "FIXED"
	// KindPerUnitWeight is Value per unit of chargeable weight.
	KindPerUnitWeight CalculationKind = "PER_UNIT_WEIGHT"
	// KindPerPackage is Value per package.
	KindPerPackage CalculationKind = "PER_PACKAGE"
)

// ParseCalculationKind maps a stored kind tag to the closed set. Unknown tags are treated as fixed.
func ParseCalculationKind(s string) CalculationKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PERCENTAGE", "PERCENT":
		return KindPercentage
	case "PER_UNIT_WEIGHT", "PER_KG":
		return KindPerUnitWeight
	case "PER_PACKAGE", "PER_PIECE":
		return KindPerPackage
	default:
		return KindFixed
	}
}

// UnmarshalText lets JSON and database text decode through ParseCalculationKind.
func (k *CalculationKind) UnmarshalText(b []byte) error {
	*k = ParseCalculationKind(string(b))
	return nil
}

// Charge is a parcel surcharge or a palletized/truckload additional charge.
type Charge struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	// Zone scopes the charge to one zone; empty applies to every zone.
	Zone     string          `json:"zone,omitempty"`
	Category ChargeCategory  `json:"category"`
	Kind     CalculationKind `json:"kind"`
	Value    float64         `json:"value"`
	// MinAmount and MaxAmount clamp the computed amount when set.
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
}

// AppliesTo reports whether the charge is zone agnostic or scoped to zone.
func (c Charge) AppliesTo(zone string) bool {
	return c.Zone == "" || strings.EqualFold(c.Zone, zone)
}

// ChargeBasis carries the quantities a charge can be computed against.
type ChargeBasis struct {
	// PercentOf is the amount a PERCENTAGE charge is taken of.
	PercentOf float64
	Weight    float64
	Packages  int
}

// Amount computes the clamped charge for basis, rounded to two places.
func (c Charge) Amount(basis ChargeBasis) float64 {
	var amount float64
	switch c.Kind {
	case KindPercentage:
		amount = money.Percent(basis.PercentOf, c.Value)
	case KindPerUnitWeight:
		amount = money.Mul(c.Value, basis.Weight)
	case KindPerPackage:
		amount = money.Mul(c.Value, float64(max(basis.Packages, 1)))
	case KindFixed:
		amount = c.Value
	default:
		amount = c.Value
	}
	return money.Round2(money.Clamp(amount, c.MinAmount, c.MaxAmount))
}
