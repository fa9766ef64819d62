package service

import (
	"context"
	"fmt"

	"rate-shopper/internal/core/money"
	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"
)

// ParcelCalculator prices small parcel contracts from zone weight slabs and surcharges.
type ParcelCalculator struct {
	rates       ports.RateContractRepository
	performance ports.CarrierPerformanceRepository
}

// NewParcelCalculator creates a ParcelCalculator.
func NewParcelCalculator(rates ports.RateContractRepository, performance ports.CarrierPerformanceRepository) *ParcelCalculator {
	return &ParcelCalculator{rates: rates, performance: performance}
}

// Segment implements Calculator.
func (c *ParcelCalculator) Segment() ratecards.Segment {
	return ratecards.SegmentParcel
}

// Quote implements Calculator.
func (c *ParcelCalculator) Quote(ctx context.Context, contract ratecards.RateContract, s *Shipment) ([]domain.CarrierQuote, error) {
	weight := s.ChargeableWeight
	zone := s.Zone.Zone

	slabs, err := c.rates.WeightSlabs(ctx, contract.ID, zone)
	if err != nil {
		return nil, fmt.Errorf("weight slabs: %w", err)
	}
	slab, ok := selectWeightSlab(slabs, weight)
	if !ok {
		return nil, nil
	}
	if weight > slab.MaxWeight && !slab.Extendable() {
		return nil, nil
	}

	q := domain.NewCarrierQuote(contract)
	q.Zone = zone
	q.ChargeableWeight = weight
	q.CODAvailable = slab.CODAvailable
	if slab.MinDeliveryDays > 0 || slab.MaxDeliveryDays > 0 {
		q.MinDeliveryDays = slab.MinDeliveryDays
		q.MaxDeliveryDays = slab.MaxDeliveryDays
	}

	req := s.Request
	switch {
	case req.PaymentMode == domain.PaymentCOD && !slab.CODAvailable:
		q.Reject("COD is not supported for zone %s", zone)
		return []domain.CarrierQuote{q}, nil
	case req.PaymentMode == domain.PaymentPrepaid && !slab.PrepaidAvailable:
		q.Reject("prepaid is not supported for zone %s", zone)
		return []domain.CarrierQuote{q}, nil
	}

	b := &q.Breakdown
	b.BaseCharge = money.Round2(slab.BaseRate)
	if weight > slab.MaxWeight {
		units := money.StartedUnits(weight-slab.MaxWeight, slab.AdditionalUnitSize)
		b.ExtraWeight = money.Mul(float64(units), slab.AdditionalRatePerUnit)
	}
	subtotal := money.Sum(b.BaseCharge, b.ExtraWeight)

	surcharges, err := c.rates.Surcharges(ctx, contract.ID, zone)
	if err != nil {
		return nil, fmt.Errorf("surcharges: %w", err)
	}
	for _, sc := range surcharges {
		if !sc.AppliesTo(zone) {
			continue
		}
		applyParcelSurcharge(b, sc, s, subtotal)
	}

	score, err := performanceScore(ctx, c.performance, contract.CarrierID, zone)
	if err != nil {
		return nil, err
	}
	q.PerformanceScore = score

	q.Settle()
	return []domain.CarrierQuote{q}, nil
}

// selectWeightSlab picks the slab with the highest lower bound not above weight.
func selectWeightSlab(slabs []ratecards.WeightSlab, weight float64) (ratecards.WeightSlab, bool) {
	var (
		best  ratecards.WeightSlab
		found bool
	)
	for _, slab := range slabs {
		if slab.MinWeight > weight {
			continue
		}
		if !found || slab.MinWeight > best.MinWeight {
			best, found = slab, true
		}
	}
	return best, found
}

// applyParcelSurcharge routes one surcharge into its bucket.
// COD applies only to COD shipments and ODA only to remote zones.
func applyParcelSurcharge(b *domain.CostBreakdown, sc ratecards.Charge, s *Shipment, subtotal float64) {
	req := s.Request
	basis := ratecards.ChargeBasis{
		PercentOf: subtotal,
		Weight:    s.ChargeableWeight,
		Packages:  req.PackageCount,
	}

	switch sc.Category {
	case ratecards.CategoryFuel:
		b.Fuel = money.Sum(b.Fuel, sc.Amount(basis))
	case ratecards.CategoryCOD:
		if req.PaymentMode != domain.PaymentCOD {
			return
		}
		basis.PercentOf = req.OrderValue
		b.COD = money.Sum(b.COD, sc.Amount(basis))
	case ratecards.CategoryODA:
		if !s.Zone.IsRemote {
			return
		}
		b.OutOfArea = money.Sum(b.OutOfArea, sc.Amount(basis))
	case ratecards.CategoryInsurance:
		basis.PercentOf = req.Declared()
		b.Insurance = money.Sum(b.Insurance, sc.Amount(basis))
	case ratecards.CategoryRTO:
		b.ReturnRisk = money.Sum(b.ReturnRisk, sc.Amount(basis))
	case ratecards.CategoryHandling:
		b.Handling = money.Sum(b.Handling, sc.Amount(basis))
	case ratecards.CategoryDocumentFee, ratecards.CategoryLoading, ratecards.CategoryUnloading,
		ratecards.CategoryToll, ratecards.CategoryDetention, ratecards.CategoryOther:
		b.Other = money.Sum(b.Other, sc.Amount(basis))
	default:
		b.Other = money.Sum(b.Other, sc.Amount(basis))
	}
}
