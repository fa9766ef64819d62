package adapters

import (
	"context"
	"errors"
	"fmt"

	"rate-shopper/internal/features/ratecards/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements the rate card ports on PostgreSQL.
// The schema lives in migrations/001_rate_cards.sql.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const listActiveContractsSQL = `
	SELECT id, carrier_id, carrier_name, carrier_code, name, segment, service_type, status,
	       effective_from, effective_to, min_chargeable_weight, min_transit_days, max_transit_days
	FROM rate_contracts
	WHERE segment = $1
	  AND status = 'ACTIVE'
	  AND effective_from <= $2
	  AND (effective_to IS NULL OR effective_to >= $2)
	  AND ($3::text[] IS NULL OR cardinality($3::text[]) = 0 OR carrier_id = ANY($3::text[]))
	  AND ($4 = '' OR lower(service_type) = lower($4))
	ORDER BY priority, id
	LIMIT $5 OFFSET $6
`

// ListActive returns one page of active, date-effective contracts.
func (r *PostgresRepository) ListActive(ctx context.Context, filter domain.ContractFilter) ([]domain.RateContract, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, listActiveContractsSQL,
		string(filter.Segment), filter.AsOf, filter.CarrierIDs, filter.ServiceType, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list contracts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RateContract, 0)
	for rows.Next() {
		var (
			c       domain.RateContract
			segment string
			status  string
		)
		if err := rows.Scan(
			&c.ID, &c.CarrierID, &c.CarrierName, &c.CarrierCode, &c.Name, &segment, &c.ServiceType, &status,
			&c.EffectiveFrom, &c.EffectiveTo, &c.MinChargeableWeight, &c.MinTransitDays, &c.MaxTransitDays,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan contract: %w", err)
		}
		if c.Segment, err = domain.ParseSegment(segment); err != nil {
			return nil, fmt.Errorf("postgres: scan contract %s: %w", c.ID, err)
		}
		c.Status = domain.ContractStatus(status)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list contracts: %w", err)
	}
	return out, nil
}

const weightSlabsSQL = `
	SELECT id, contract_id, zone, min_weight, max_weight, base_rate,
	       additional_rate_per_unit, additional_unit_size, cod_available, prepaid_available,
	       min_delivery_days, max_delivery_days
	FROM weight_slabs
	WHERE contract_id = $1 AND upper(zone) = upper($2)
	ORDER BY min_weight
`

// WeightSlabs returns the parcel slabs of a contract for one zone.
func (r *PostgresRepository) WeightSlabs(ctx context.Context, contractID, zone string) ([]domain.WeightSlab, error) {
	rows, err := r.pool.Query(ctx, weightSlabsSQL, contractID, zone)
	if err != nil {
		return nil, fmt.Errorf("postgres: weight slabs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.WeightSlab, 0)
	for rows.Next() {
		var s domain.WeightSlab
		if err := rows.Scan(
			&s.ID, &s.ContractID, &s.Zone, &s.MinWeight, &s.MaxWeight, &s.BaseRate,
			&s.AdditionalRatePerUnit, &s.AdditionalUnitSize, &s.CODAvailable, &s.PrepaidAvailable,
			&s.MinDeliveryDays, &s.MaxDeliveryDays,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan weight slab: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: weight slabs: %w", err)
	}
	return out, nil
}

const surchargesSQL = `
	SELECT id, contract_id, COALESCE(zone, ''), category, kind, value, min_amount, max_amount
	FROM surcharges
	WHERE contract_id = $1 AND (zone IS NULL OR upper(zone) = upper($2))
	ORDER BY id
`

// Surcharges returns the parcel surcharges of a contract applying to zone.
func (r *PostgresRepository) Surcharges(ctx context.Context, contractID, zone string) ([]domain.Charge, error) {
	return r.charges(ctx, "surcharges", surchargesSQL, contractID, zone)
}

const additionalChargesSQL = `
	SELECT id, contract_id, COALESCE(zone, ''), category, kind, value, min_amount, max_amount
	FROM additional_charges
	WHERE contract_id = $1
	ORDER BY id
`

// AdditionalCharges returns every palletized or truckload charge of a contract.
func (r *PostgresRepository) AdditionalCharges(ctx context.Context, contractID string) ([]domain.Charge, error) {
	return r.charges(ctx, "additional charges", additionalChargesSQL, contractID)
}

func (r *PostgresRepository) charges(ctx context.Context, what, query string, args ...any) ([]domain.Charge, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: %s: %w", what, err)
	}
	defer rows.Close()

	out := make([]domain.Charge, 0)
	for rows.Next() {
		var (
			c        domain.Charge
			category string
			kind     string
		)
		if err := rows.Scan(&c.ID, &c.ContractID, &c.Zone, &category, &kind, &c.Value, &c.MinAmount, &c.MaxAmount); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", what, err)
		}
		c.Category = domain.ParseChargeCategory(category)
		c.Kind = domain.ParseCalculationKind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: %s: %w", what, err)
	}
	return out, nil
}

const rateSlabsSQL = `
	SELECT id, contract_id, COALESCE(zone, ''), min_weight, max_weight, rate_type, rate, min_charge
	FROM rate_slabs
	WHERE contract_id = $1
	ORDER BY min_weight
`

// RateSlabs returns every palletized slab of a contract.
func (r *PostgresRepository) RateSlabs(ctx context.Context, contractID string) ([]domain.RateSlab, error) {
	rows, err := r.pool.Query(ctx, rateSlabsSQL, contractID)
	if err != nil {
		return nil, fmt.Errorf("postgres: rate slabs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RateSlab, 0)
	for rows.Next() {
		var (
			s        domain.RateSlab
			rateType string
		)
		if err := rows.Scan(&s.ID, &s.ContractID, &s.Zone, &s.MinWeight, &s.MaxWeight, &rateType, &s.Rate, &s.MinCharge); err != nil {
			return nil, fmt.Errorf("postgres: scan rate slab: %w", err)
		}
		s.RateType = domain.ParseRateType(rateType)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rate slabs: %w", err)
	}
	return out, nil
}

const laneRatesSQL = `
	SELECT id, contract_id, origin_city, destination_city, vehicle_type, rate_per_trip,
	       rate_per_extra_km, min_km, distance_km, capacity_kg, transit_hours, active
	FROM lane_rates
	WHERE contract_id = $1 AND active
	ORDER BY id
`

// LaneRates returns the active lanes of a contract.
func (r *PostgresRepository) LaneRates(ctx context.Context, contractID string) ([]domain.LaneRate, error) {
	rows, err := r.pool.Query(ctx, laneRatesSQL, contractID)
	if err != nil {
		return nil, fmt.Errorf("postgres: lane rates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LaneRate, 0)
	for rows.Next() {
		var l domain.LaneRate
		if err := rows.Scan(
			&l.ID, &l.ContractID, &l.OriginCity, &l.DestinationCity, &l.VehicleType, &l.RatePerTrip,
			&l.RatePerExtraKm, &l.MinKm, &l.DistanceKm, &l.CapacityKg, &l.TransitHours, &l.Active,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan lane rate: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: lane rates: %w", err)
	}
	return out, nil
}

const zoneColumns = `
	origin_pincode, destination_pincode, COALESCE(origin_region, ''), COALESCE(destination_region, ''),
	zone, distance_km, is_oda
`

// FindExact looks up the exact origin/destination pair.
func (r *PostgresRepository) FindExact(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	query := `SELECT ` + zoneColumns + `
		FROM zone_mappings
		WHERE origin_pincode = $1 AND destination_pincode = $2
		LIMIT 1`
	return r.zone(ctx, query, origin, destination)
}

// FindFallback matches the 3-digit prefix pair, or failing that any mapping with
// region names on both sides. The second arm is deliberately broad and can return
// an unrelated mapping.
func (r *PostgresRepository) FindFallback(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	query := `SELECT ` + zoneColumns + `
		FROM zone_mappings
		WHERE (left(origin_pincode, 3) = left($1, 3) AND left(destination_pincode, 3) = left($2, 3))
		   OR (origin_region IS NOT NULL AND destination_region IS NOT NULL)
		ORDER BY CASE
		           WHEN left(origin_pincode, 3) = left($1, 3) AND left(destination_pincode, 3) = left($2, 3) THEN 0
		           ELSE 1
		         END, id
		LIMIT 1`
	return r.zone(ctx, query, origin, destination)
}

func (r *PostgresRepository) zone(ctx context.Context, query, origin, destination string) (*domain.ZoneMapping, error) {
	var m domain.ZoneMapping
	err := r.pool.QueryRow(ctx, query, origin, destination).Scan(
		&m.OriginPincode, &m.DestinationPincode, &m.OriginRegion, &m.DestinationRegion,
		&m.Zone, &m.DistanceKm, &m.IsODA,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: zone mapping: %w", err)
	}
	return &m, nil
}

const latestScoreSQL = `
	SELECT carrier_id, COALESCE(zone, ''), period_start, period_end, overall_score
	FROM carrier_performance
	WHERE carrier_id = $1 AND upper(COALESCE(zone, '')) = upper($2)
	ORDER BY period_end DESC
	LIMIT 1
`

// LatestScore returns the most recent scorecard for the carrier and zone scope.
func (r *PostgresRepository) LatestScore(ctx context.Context, carrierID, zone string) (*domain.CarrierPerformance, error) {
	var p domain.CarrierPerformance
	err := r.pool.QueryRow(ctx, latestScoreSQL, carrierID, zone).Scan(
		&p.CarrierID, &p.Zone, &p.PeriodStart, &p.PeriodEnd, &p.OverallScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: carrier performance: %w", err)
	}
	return &p, nil
}
