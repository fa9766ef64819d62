package service

import (
	"context"
	"fmt"

	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"
)

// ZoneResolver turns an origin/destination pair into a zone.
type ZoneResolver struct {
	zones ports.ZoneMappingRepository
}

// NewZoneResolver creates a resolver backed by zones.
func NewZoneResolver(zones ports.ZoneMappingRepository) *ZoneResolver {
	return &ZoneResolver{zones: zones}
}

// Resolve tries the exact mapping, then the fallback mapping, then guesses from the pincodes.
// The fallback lookup may return a mapping for an unrelated pair; see FindFallback.
func (r *ZoneResolver) Resolve(ctx context.Context, origin, destination string) (domain.ZoneResolution, error) {
	m, err := r.zones.FindExact(ctx, origin, destination)
	if err != nil {
		return domain.ZoneResolution{}, fmt.Errorf("exact zone lookup: %w", err)
	}
	if m == nil {
		m, err = r.zones.FindFallback(ctx, origin, destination)
		if err != nil {
			return domain.ZoneResolution{}, fmt.Errorf("fallback zone lookup: %w", err)
		}
	}
	if m != nil {
		return domain.ZoneResolution{Zone: m.Zone, DistanceKm: m.DistanceKm, IsRemote: m.IsODA, Found: true}, nil
	}

	return domain.ZoneResolution{Zone: HeuristicZone(origin, destination)}, nil
}

// HeuristicZone buckets a pair by the length of their shared pincode prefix.
func HeuristicZone(origin, destination string) string {
	switch {
	case sharesPrefix(origin, destination, 3):
		return ratecards.ZoneA
	case sharesPrefix(origin, destination, 2):
		return ratecards.ZoneB
	case sharesPrefix(origin, destination, 1):
		return ratecards.ZoneC
	default:
		return ratecards.ZoneD
	}
}

func sharesPrefix(a, b string, n int) bool {
	return len(a) >= n && len(b) >= n && a[:n] == b[:n]
}
