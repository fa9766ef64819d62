package adapters

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"rate-shopper/internal/features/ratecards/domain"
)

// Dataset is the full rate card snapshot served by MemoryStore.
type Dataset struct {
	Contracts         []domain.RateContract       `json:"contracts"`
	WeightSlabs       []domain.WeightSlab         `json:"weight_slabs"`
	Surcharges        []domain.Charge             `json:"surcharges"`
	RateSlabs         []domain.RateSlab           `json:"rate_slabs"`
	AdditionalCharges []domain.Charge             `json:"additional_charges"`
	LaneRates         []domain.LaneRate           `json:"lane_rates"`
	ZoneMappings      []domain.ZoneMapping        `json:"zone_mappings"`
	Performance       []domain.CarrierPerformance `json:"performance"`
}

// MemoryStore implements the rate card ports over an immutable in-memory snapshot.
// It is safe for concurrent use because nothing mutates the dataset after construction.
type MemoryStore struct {
	data Dataset
}

// NewMemoryStore creates a store serving data.
func NewMemoryStore(data Dataset) *MemoryStore {
	return &MemoryStore{data: data}
}

// LoadMemoryStore reads a JSON dataset from path.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate fixture: %w", err)
	}

	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode rate fixture %s: %w", path, err)
	}

	return NewMemoryStore(data), nil
}

// ListActive returns one page of matching contracts in dataset order.
func (s *MemoryStore) ListActive(ctx context.Context, filter domain.ContractFilter) ([]domain.RateContract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]domain.RateContract, 0)
	for _, c := range s.data.Contracts {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}

	if filter.Offset >= len(matched) {
		return []domain.RateContract{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// WeightSlabs returns the parcel slabs of a contract for one zone.
func (s *MemoryStore) WeightSlabs(ctx context.Context, contractID, zone string) ([]domain.WeightSlab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.WeightSlab, 0)
	for _, slab := range s.data.WeightSlabs {
		if slab.ContractID == contractID && strings.EqualFold(slab.Zone, zone) {
			out = append(out, slab)
		}
	}
	return out, nil
}

// Surcharges returns the parcel surcharges of a contract applying to zone.
func (s *MemoryStore) Surcharges(ctx context.Context, contractID, zone string) ([]domain.Charge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Charge, 0)
	for _, c := range s.data.Surcharges {
		if c.ContractID == contractID && c.AppliesTo(zone) {
			out = append(out, c)
		}
	}
	return out, nil
}

// RateSlabs returns every palletized slab of a contract.
func (s *MemoryStore) RateSlabs(ctx context.Context, contractID string) ([]domain.RateSlab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.RateSlab, 0)
	for _, slab := range s.data.RateSlabs {
		if slab.ContractID == contractID {
			out = append(out, slab)
		}
	}
	return out, nil
}

// AdditionalCharges returns every palletized or truckload charge of a contract.
func (s *MemoryStore) AdditionalCharges(ctx context.Context, contractID string) ([]domain.Charge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Charge, 0)
	for _, c := range s.data.AdditionalCharges {
		if c.ContractID == contractID {
			out = append(out, c)
		}
	}
	return out, nil
}

// LaneRates returns the active lanes of a contract.
func (s *MemoryStore) LaneRates(ctx context.Context, contractID string) ([]domain.LaneRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.LaneRate, 0)
	for _, lane := range s.data.LaneRates {
		if lane.ContractID == contractID && lane.Active {
			out = append(out, lane)
		}
	}
	return out, nil
}

// FindExact looks up the exact origin/destination pair.
func (s *MemoryStore) FindExact(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, m := range s.data.ZoneMappings {
		if m.OriginPincode == origin && m.DestinationPincode == destination {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// FindFallback mirrors the SQL fallback: a 3-digit prefix pair wins, otherwise the
// first mapping with region names on both sides, whatever those regions are.
func (s *MemoryStore) FindFallback(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var regional *domain.ZoneMapping
	for i := range s.data.ZoneMappings {
		m := s.data.ZoneMappings[i]
		if prefix(m.OriginPincode, 3) == prefix(origin, 3) && prefix(m.DestinationPincode, 3) == prefix(destination, 3) {
			return &m, nil
		}
		if regional == nil && m.OriginRegion != "" && m.DestinationRegion != "" {
			regional = &m
		}
	}
	return regional, nil
}

// LatestScore returns the record with the latest period end for the carrier and zone scope.
func (s *MemoryStore) LatestScore(ctx context.Context, carrierID, zone string) (*domain.CarrierPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	candidates := make([]domain.CarrierPerformance, 0)
	for _, p := range s.data.Performance {
		if p.CarrierID == carrierID && strings.EqualFold(p.Zone, zone) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	latest := slices.MaxFunc(candidates, func(a, b domain.CarrierPerformance) int {
		return cmp.Compare(a.PeriodEnd.UnixNano(), b.PeriodEnd.UnixNano())
	})
	return &latest, nil
}

// prefix returns the first n characters of s, or s when it is shorter.
func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
