package ports

import (
	"context"

	"rate-shopper/internal/features/ratecards/domain"
)

// RateContractRepository is the read-only source of rate contracts and their pricing rules.
// This is a Secondary Port (Driven Port); contract management lives elsewhere.
type RateContractRepository interface {
	// ListActive returns one page of active, date-effective contracts matching the filter,
	// in a stable order.
	ListActive(ctx context.Context, filter domain.ContractFilter) ([]domain.RateContract, error)
	// WeightSlabs returns the parcel slabs of a contract for one zone.
	WeightSlabs(ctx context.Context, contractID, zone string) ([]domain.WeightSlab, error)
	// Surcharges returns the parcel surcharges of a contract that apply to zone,
	// both zone specific and zone agnostic.
	Surcharges(ctx context.Context, contractID, zone string) ([]domain.Charge, error)
	// RateSlabs returns every palletized slab of a contract, whatever its zone.
	RateSlabs(ctx context.Context, contractID string) ([]domain.RateSlab, error)
	// AdditionalCharges returns every palletized or truckload charge of a contract, whatever its zone.
	AdditionalCharges(ctx context.Context, contractID string) ([]domain.Charge, error)
	// LaneRates returns the active truckload lanes of a contract.
	LaneRates(ctx context.Context, contractID string) ([]domain.LaneRate, error)
}

// ZoneMappingRepository resolves origin/destination pairs to zones.
// Both lookups return nil, nil when nothing matches.
type ZoneMappingRepository interface {
	// FindExact looks up the exact origin/destination pair.
	FindExact(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error)
	// FindFallback matches on the 3-digit prefix pair or on any mapping that carries
	// region names on both sides, preferring prefix matches.
	FindFallback(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error)
}

// CarrierPerformanceRepository provides carrier scorecards.
type CarrierPerformanceRepository interface {
	// LatestScore returns the most recent record for the carrier scoped to zone,
	// or the zone agnostic record when zone is empty. nil, nil when none exists.
	LatestScore(ctx context.Context, carrierID, zone string) (*domain.CarrierPerformance, error)
}
