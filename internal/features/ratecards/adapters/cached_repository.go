package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rate-shopper/internal/core/cache"
	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"

	"go.uber.org/zap"
)

// readThrough serves key from c, calling load and storing its result on a miss.
// Cache failures are logged and never fail the lookup; the store stays the source of truth.
func readThrough[T any](ctx context.Context, c cache.Cache, ttl time.Duration, key string, load func(context.Context) (T, error)) (T, error) {
	log := logger.Named("ratecache")

	data, err := c.Get(ctx, key)
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		log.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		if err := c.Delete(ctx, key); err != nil {
			log.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
		}
	} else if !errors.Is(err, cache.ErrKeyNotFound) {
		log.Warn("Cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// CachedRateContractRepository decorates a RateContractRepository with a Redis read-through cache.
type CachedRateContractRepository struct {
	next  ports.RateContractRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedRateContractRepository wraps next. Entries expire after ttl.
func NewCachedRateContractRepository(next ports.RateContractRepository, c cache.Cache, ttl time.Duration) *CachedRateContractRepository {
	return &CachedRateContractRepository{next: next, cache: c, ttl: ttl}
}

// ListActive caches one page per distinct filter and day.
func (r *CachedRateContractRepository) ListActive(ctx context.Context, filter domain.ContractFilter) ([]domain.RateContract, error) {
	key := fmt.Sprintf("contracts:%s:%s:%s:%s:%d:%d",
		filter.Segment,
		strings.Join(filter.CarrierIDs, ","),
		strings.ToUpper(filter.ServiceType),
		filter.AsOf.UTC().Format(time.DateOnly),
		filter.Limit,
		filter.Offset,
	)
	return readThrough(ctx, r.cache, r.ttl, key, func(ctx context.Context) ([]domain.RateContract, error) {
		return r.next.ListActive(ctx, filter)
	})
}

// WeightSlabs implements ports.RateContractRepository.
func (r *CachedRateContractRepository) WeightSlabs(ctx context.Context, contractID, zone string) ([]domain.WeightSlab, error) {
	key := "weight_slabs:" + contractID + ":" + strings.ToUpper(zone)
	return readThrough(ctx, r.cache, r.ttl, key, func(ctx context.Context) ([]domain.WeightSlab, error) {
		return r.next.WeightSlabs(ctx, contractID, zone)
	})
}

// Surcharges implements ports.RateContractRepository.
func (r *CachedRateContractRepository) Surcharges(ctx context.Context, contractID, zone string) ([]domain.Charge, error) {
	key := "surcharges:" + contractID + ":" + strings.ToUpper(zone)
	return readThrough(ctx, r.cache, r.ttl, key, func(ctx context.Context) ([]domain.Charge, error) {
		return r.next.Surcharges(ctx, contractID, zone)
	})
}

// RateSlabs implements ports.RateContractRepository.
func (r *CachedRateContractRepository) RateSlabs(ctx context.Context, contractID string) ([]domain.RateSlab, error) {
	return readThrough(ctx, r.cache, r.ttl, "rate_slabs:"+contractID, func(ctx context.Context) ([]domain.RateSlab, error) {
		return r.next.RateSlabs(ctx, contractID)
	})
}

// AdditionalCharges implements ports.RateContractRepository.
func (r *CachedRateContractRepository) AdditionalCharges(ctx context.Context, contractID string) ([]domain.Charge, error) {
	return readThrough(ctx, r.cache, r.ttl, "additional_charges:"+contractID, func(ctx context.Context) ([]domain.Charge, error) {
		return r.next.AdditionalCharges(ctx, contractID)
	})
}

// LaneRates implements ports.RateContractRepository.
func (r *CachedRateContractRepository) LaneRates(ctx context.Context, contractID string) ([]domain.LaneRate, error) {
	return readThrough(ctx, r.cache, r.ttl, "lane_rates:"+contractID, func(ctx context.Context) ([]domain.LaneRate, error) {
		return r.next.LaneRates(ctx, contractID)
	})
}

// CachedZoneMappingRepository decorates a ZoneMappingRepository. Misses are cached too.
type CachedZoneMappingRepository struct {
	next  ports.ZoneMappingRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedZoneMappingRepository wraps next.
func NewCachedZoneMappingRepository(next ports.ZoneMappingRepository, c cache.Cache, ttl time.Duration) *CachedZoneMappingRepository {
	return &CachedZoneMappingRepository{next: next, cache: c, ttl: ttl}
}

// FindExact implements ports.ZoneMappingRepository.
func (r *CachedZoneMappingRepository) FindExact(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	return readThrough(ctx, r.cache, r.ttl, "zone:exact:"+origin+":"+destination, func(ctx context.Context) (*domain.ZoneMapping, error) {
		return r.next.FindExact(ctx, origin, destination)
	})
}

// FindFallback implements ports.ZoneMappingRepository.
func (r *CachedZoneMappingRepository) FindFallback(ctx context.Context, origin, destination string) (*domain.ZoneMapping, error) {
	return readThrough(ctx, r.cache, r.ttl, "zone:fallback:"+origin+":"+destination, func(ctx context.Context) (*domain.ZoneMapping, error) {
		return r.next.FindFallback(ctx, origin, destination)
	})
}

// CachedPerformanceRepository decorates a CarrierPerformanceRepository.
type CachedPerformanceRepository struct {
	next  ports.CarrierPerformanceRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedPerformanceRepository wraps next.
func NewCachedPerformanceRepository(next ports.CarrierPerformanceRepository, c cache.Cache, ttl time.Duration) *CachedPerformanceRepository {
	return &CachedPerformanceRepository{next: next, cache: c, ttl: ttl}
}

// LatestScore implements ports.CarrierPerformanceRepository.
func (r *CachedPerformanceRepository) LatestScore(ctx context.Context, carrierID, zone string) (*domain.CarrierPerformance, error) {
	key := "performance:" + carrierID + ":" + strings.ToUpper(zone)
	return readThrough(ctx, r.cache, r.ttl, key, func(ctx context.Context) (*domain.CarrierPerformance, error) {
		return r.next.LatestScore(ctx, carrierID, zone)
	})
}
