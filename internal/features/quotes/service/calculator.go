package service

import (
	"context"
	"fmt"

	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"
)

// Shipment is a validated request with its derived pricing inputs.
type Shipment struct {
	Request          domain.RateRequest
	Dimensions       *domain.Dimensions
	ChargeableWeight float64
	WeightType       domain.WeightType
	Segment          ratecards.Segment
	// Zone is empty for truckload shipments.
	Zone domain.ZoneResolution
}

// Calculator prices one rate contract for a shipment.
// A nil result means the contract has no applicable rate; it is not an error.
type Calculator interface {
	Segment() ratecards.Segment
	Quote(ctx context.Context, contract ratecards.RateContract, s *Shipment) ([]domain.CarrierQuote, error)
}

// performanceScore returns the latest zone scoped score, else the zone agnostic one.
func performanceScore(ctx context.Context, repo ports.CarrierPerformanceRepository, carrierID, zone string) (*float64, error) {
	if repo == nil {
		return nil, nil
	}
	if zone != "" {
		p, err := repo.LatestScore(ctx, carrierID, zone)
		if err != nil {
			return nil, fmt.Errorf("performance lookup: %w", err)
		}
		if p != nil {
			score := p.OverallScore
			return &score, nil
		}
	}
	p, err := repo.LatestScore(ctx, carrierID, "")
	if err != nil {
		return nil, fmt.Errorf("performance lookup: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	score := p.OverallScore
	return &score, nil
}
