package service

import (
	"context"
	"fmt"

	"rate-shopper/internal/core/money"
	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"
)

// TruckloadCalculator prices dedicated vehicle contracts per lane.
type TruckloadCalculator struct {
	rates       ports.RateContractRepository
	performance ports.CarrierPerformanceRepository
}

// NewTruckloadCalculator creates a TruckloadCalculator.
func NewTruckloadCalculator(rates ports.RateContractRepository, performance ports.CarrierPerformanceRepository) *TruckloadCalculator {
	return &TruckloadCalculator{rates: rates, performance: performance}
}

// Segment implements Calculator.
func (c *TruckloadCalculator) Segment() ratecards.Segment {
	return ratecards.SegmentFullTruckload
}

// Quote implements Calculator. Every matching lane yields its own quote.
func (c *TruckloadCalculator) Quote(ctx context.Context, contract ratecards.RateContract, s *Shipment) ([]domain.CarrierQuote, error) {
	req := s.Request
	origin := cityKey(req.OriginCity, req.OriginPincode)
	destination := cityKey(req.DestinationCity, req.DestinationPincode)
	if origin == "" || destination == "" {
		return nil, nil
	}

	lanes, err := c.rates.LaneRates(ctx, contract.ID)
	if err != nil {
		return nil, fmt.Errorf("lane rates: %w", err)
	}

	matching := make([]ratecards.LaneRate, 0, len(lanes))
	for _, lane := range lanes {
		if lane.Serves(origin, destination, req.VehicleType) {
			matching = append(matching, lane)
		}
	}
	if len(matching) == 0 {
		return nil, nil
	}

	charges, err := c.rates.AdditionalCharges(ctx, contract.ID)
	if err != nil {
		return nil, fmt.Errorf("additional charges: %w", err)
	}
	score, err := performanceScore(ctx, c.performance, contract.CarrierID, "")
	if err != nil {
		return nil, err
	}

	quotes := make([]domain.CarrierQuote, 0, len(matching))
	for _, lane := range matching {
		quotes = append(quotes, c.quoteLane(contract, lane, charges, s, score))
	}
	return quotes, nil
}

func (c *TruckloadCalculator) quoteLane(contract ratecards.RateContract, lane ratecards.LaneRate, charges []ratecards.Charge, s *Shipment, score *float64) domain.CarrierQuote {
	q := domain.NewCarrierQuote(contract)
	q.ChargeableWeight = s.ChargeableWeight
	q.LaneID = lane.ID
	q.VehicleType = lane.VehicleType
	q.CODAvailable = false
	q.PerformanceScore = score
	if lane.TransitHours > 0 {
		q.MinDeliveryDays = (lane.TransitHours + 23) / 24
		q.MaxDeliveryDays = q.MinDeliveryDays + 1
	}

	switch {
	case s.Request.PaymentMode == domain.PaymentCOD:
		q.Reject("COD is not available for truckload freight")
		return q
	case lane.CapacityKg > 0 && s.ChargeableWeight > lane.CapacityKg:
		q.Reject("%.2f kg exceeds %s capacity of %.2f kg", s.ChargeableWeight, lane.VehicleType, lane.CapacityKg)
		return q
	}

	b := &q.Breakdown
	b.BaseCharge = money.Round2(lane.RatePerTrip)
	if lane.DistanceKm > lane.MinKm && lane.RatePerExtraKm > 0 {
		b.Other = money.Mul(lane.DistanceKm-lane.MinKm, lane.RatePerExtraKm)
		q.Remark("%.1f km beyond the included %.1f km", lane.DistanceKm-lane.MinKm, lane.MinKm)
	}
	for _, ch := range charges {
		if !ch.AppliesTo("") {
			continue
		}
		applyFreightCharge(b, ch, s, s.ChargeableWeight)
	}

	q.Settle()
	return q
}
