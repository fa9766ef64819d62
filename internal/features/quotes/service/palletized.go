package service

import (
	"context"
	"fmt"
	"strings"

	"rate-shopper/internal/core/money"
	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"
)

// PalletizedCalculator prices less-than-truckload contracts from rate slabs and additional charges.
type PalletizedCalculator struct {
	rates       ports.RateContractRepository
	performance ports.CarrierPerformanceRepository
}

// NewPalletizedCalculator creates a PalletizedCalculator.
func NewPalletizedCalculator(rates ports.RateContractRepository, performance ports.CarrierPerformanceRepository) *PalletizedCalculator {
	return &PalletizedCalculator{rates: rates, performance: performance}
}

// Segment implements Calculator.
func (c *PalletizedCalculator) Segment() ratecards.Segment {
	return ratecards.SegmentPalletized
}

// Quote implements Calculator.
func (c *PalletizedCalculator) Quote(ctx context.Context, contract ratecards.RateContract, s *Shipment) ([]domain.CarrierQuote, error) {
	weight := max(s.ChargeableWeight, contract.MinChargeableWeight)
	zone := s.Zone.Zone

	slabs, err := c.rates.RateSlabs(ctx, contract.ID)
	if err != nil {
		return nil, fmt.Errorf("rate slabs: %w", err)
	}
	slab, extrapolated, ok := selectRateSlab(slabs, weight, zone)
	if !ok {
		return nil, nil
	}

	q := domain.NewCarrierQuote(contract)
	q.Zone = zone
	q.ChargeableWeight = weight
	q.CODAvailable = false

	req := s.Request
	if req.PaymentMode == domain.PaymentCOD {
		q.Reject("COD is not available for palletized freight")
		return []domain.CarrierQuote{q}, nil
	}
	if weight > s.ChargeableWeight {
		q.Remark("billed at contract minimum of %.2f kg", weight)
	}
	if extrapolated {
		q.Remark("weight %.2f kg exceeds every rate slab, priced from the top slab", weight)
	}

	b := &q.Breakdown
	b.BaseCharge = max(slabBase(slab, weight, s.Dimensions), money.Round2(slab.MinCharge))

	charges, err := c.rates.AdditionalCharges(ctx, contract.ID)
	if err != nil {
		return nil, fmt.Errorf("additional charges: %w", err)
	}
	for _, ch := range charges {
		if !ch.AppliesTo(zone) {
			continue
		}
		applyFreightCharge(b, ch, s, weight)
	}

	score, err := performanceScore(ctx, c.performance, contract.CarrierID, zone)
	if err != nil {
		return nil, err
	}
	q.PerformanceScore = score

	q.Settle()
	return []domain.CarrierQuote{q}, nil
}

// selectRateSlab picks the covering slab for weight, zone specific first, then highest lower bound.
// When weight is above every applicable slab the top slab is returned with extrapolated set.
// A weight falling in a gap between slabs, or below all of them, has no rate.
func selectRateSlab(slabs []ratecards.RateSlab, weight float64, zone string) (slab ratecards.RateSlab, extrapolated, ok bool) {
	var (
		best, top              ratecards.RateSlab
		haveBest, above, below bool
	)
	for _, candidate := range slabs {
		if candidate.Zone != "" && !strings.EqualFold(candidate.Zone, zone) {
			continue
		}
		switch {
		case candidate.Covers(weight):
			if !haveBest || preferCovering(candidate, best) {
				best, haveBest = candidate, true
			}
		case candidate.MinWeight > weight:
			below = true
		default:
			if !above || preferTop(candidate, top) {
				top, above = candidate, true
			}
		}
	}

	switch {
	case haveBest:
		return best, false, true
	case above && !below:
		return top, true, true
	default:
		return ratecards.RateSlab{}, false, false
	}
}

func preferCovering(a, b ratecards.RateSlab) bool {
	if (a.Zone != "") != (b.Zone != "") {
		return a.Zone != ""
	}
	return a.MinWeight > b.MinWeight
}

// preferTop orders slabs that end below the weight: zone specific first, then highest upper bound.
func preferTop(a, b ratecards.RateSlab) bool {
	if (a.Zone != "") != (b.Zone != "") {
		return a.Zone != ""
	}
	return *a.MaxWeight > *b.MaxWeight
}

// slabBase computes the base charge by rate type, before the minimum charge floor.
func slabBase(slab ratecards.RateSlab, weight float64, dims *domain.Dimensions) float64 {
	switch slab.RateType {
	case ratecards.RateFlat:
		return money.Round2(slab.Rate)
	case ratecards.RatePerVolumeUnit:
		if dims != nil {
			return money.Mul(slab.Rate, dims.CubicFeet())
		}
		return money.Mul(slab.Rate, weight)
	case ratecards.RatePerWeightUnit:
		return money.Mul(slab.Rate, weight)
	default:
		return money.Mul(slab.Rate, weight)
	}
}

// applyFreightCharge routes a palletized or truckload additional charge into its bucket.
// Percentages are taken of the base charge, insurance of the declared value.
// COD never applies to freight and ODA only to remote zones.
func applyFreightCharge(b *domain.CostBreakdown, ch ratecards.Charge, s *Shipment, weight float64) {
	basis := ratecards.ChargeBasis{
		PercentOf: b.BaseCharge,
		Weight:    weight,
		Packages:  s.Request.PackageCount,
	}

	switch ch.Category {
	case ratecards.CategoryCOD:
		return
	case ratecards.CategoryODA:
		if !s.Zone.IsRemote {
			return
		}
		b.OutOfArea = money.Sum(b.OutOfArea, ch.Amount(basis))
	case ratecards.CategoryFuel:
		b.Fuel = money.Sum(b.Fuel, ch.Amount(basis))
	case ratecards.CategoryInsurance:
		basis.PercentOf = s.Request.Declared()
		b.Insurance = money.Sum(b.Insurance, ch.Amount(basis))
	case ratecards.CategoryRTO:
		b.ReturnRisk = money.Sum(b.ReturnRisk, ch.Amount(basis))
	case ratecards.CategoryHandling, ratecards.CategoryLoading, ratecards.CategoryUnloading:
		b.Handling = money.Sum(b.Handling, ch.Amount(basis))
	case ratecards.CategoryDocumentFee, ratecards.CategoryToll, ratecards.CategoryDetention, ratecards.CategoryOther:
		b.Other = money.Sum(b.Other, ch.Amount(basis))
	default:
		b.Other = money.Sum(b.Other, ch.Amount(basis))
	}
}
