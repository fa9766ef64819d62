package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/core/metrics"
	"rate-shopper/internal/features/quotes/domain"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoCalculator is returned when a segment has no registered calculator.
var ErrNoCalculator = errors.New("no calculator for segment")

// Options tunes a QuoteService. Zero values select the defaults.
type Options struct {
	// Workers bounds concurrent contract evaluations per request. Default 8.
	Workers int
	// PageSize is the contract listing page size. Default 100.
	PageSize int
	// Metrics records outcomes; nil disables recording.
	Metrics *metrics.Recorder
	// Now returns the date contracts must be effective on. Default time.Now.
	Now func() time.Time
}

// QuoteService computes and ranks carrier quotes for a shipment.
// It holds no per-request state and is safe for concurrent use.
type QuoteService struct {
	contracts   ports.RateContractRepository
	zones       *ZoneResolver
	calculators map[ratecards.Segment]Calculator
	metrics     *metrics.Recorder
	workers     int
	pageSize    int
	now         func() time.Time
	log         *zap.Logger
}

// NewQuoteService wires the segment calculators over the given repositories.
func NewQuoteService(
	contracts ports.RateContractRepository,
	zones ports.ZoneMappingRepository,
	performance ports.CarrierPerformanceRepository,
	opts Options,
) *QuoteService {
	if opts.Workers < 1 {
		opts.Workers = 8
	}
	if opts.PageSize < 1 {
		opts.PageSize = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &QuoteService{
		contracts:   contracts,
		zones:       NewZoneResolver(zones),
		calculators: make(map[ratecards.Segment]Calculator),
		metrics:     opts.Metrics,
		workers:     opts.Workers,
		pageSize:    opts.PageSize,
		now:         opts.Now,
		log:         logger.Named("quotes"),
	}
	for _, calc := range []Calculator{
		NewParcelCalculator(contracts, performance),
		NewPalletizedCalculator(contracts, performance),
		NewTruckloadCalculator(contracts, performance),
	} {
		s.calculators[calc.Segment()] = calc
	}
	return s
}

// GetQuotes prices every eligible contract and returns the serviceable quotes ranked by the balanced strategy.
// An empty serviceable set is reported through Success=false, not as an error.
func (s *QuoteService) GetQuotes(ctx context.Context, req domain.RateRequest) (*domain.QuoteResult, error) {
	shipment, quotes, err := s.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &domain.QuoteResult{
		Segment:          shipment.Segment,
		ChargeableWeight: shipment.ChargeableWeight,
		WeightType:       shipment.WeightType,
		Quotes:           []domain.CarrierQuote{},
		Alternatives:     []domain.CarrierQuote{},
	}
	if shipment.Segment != ratecards.SegmentFullTruckload {
		zone := shipment.Zone
		result.Zone = &zone
	}

	if len(quotes) == 0 {
		result.Message = domain.NoCarriersMessage
		return result, nil
	}

	ranked := Rank(quotes, domain.StrategyBalanced)
	result.Success = true
	result.Quotes = ranked
	top := ranked[0]
	result.Recommended = &top
	result.Alternatives = ranked[1:min(len(ranked), domain.MaxAlternatives+1)]
	return result, nil
}

// Allocate ranks the serviceable quotes under strategy and returns the top pick with up to three alternatives.
func (s *QuoteService) Allocate(ctx context.Context, req domain.RateRequest, strategy domain.Strategy) (*domain.AllocationResult, error) {
	strategy, err := domain.ParseStrategy(string(strategy))
	if err != nil {
		return nil, err
	}

	shipment, quotes, err := s.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &domain.AllocationResult{
		Strategy:     strategy,
		Segment:      shipment.Segment,
		Zone:         shipment.Zone.Zone,
		Alternatives: []domain.AlternativeAllocation{},
	}
	if len(quotes) == 0 {
		result.Message = domain.NoCarriersMessage
		return result, nil
	}

	ranked := Rank(quotes, strategy)
	result.Success = true
	result.Allocation = domain.AllocationFrom(ranked[0])
	for _, q := range ranked[1:min(len(ranked), domain.MaxAlternatives+1)] {
		result.Alternatives = append(result.Alternatives, domain.AlternativeFrom(q))
	}

	s.log.Info("Carrier allocated",
		zap.String("strategy", string(strategy)),
		zap.String("segment", string(shipment.Segment)),
		zap.String("carrier_id", result.Allocation.CarrierID),
		zap.Float64("total", result.Allocation.TotalCost),
	)
	return result, nil
}

// evaluate validates the request, prices every eligible contract and keeps the serviceable quotes
// in candidate order.
func (s *QuoteService) evaluate(ctx context.Context, req domain.RateRequest) (*Shipment, []domain.CarrierQuote, error) {
	start := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		s.metrics.ObserveRequest("unknown", "invalid", time.Since(start))
		return nil, nil, err
	}

	shipment, err := s.prepare(ctx, req)
	if err != nil {
		s.metrics.ObserveRequest("unknown", "error", time.Since(start))
		return nil, nil, err
	}
	segment := string(shipment.Segment)

	quotes, err := s.priceContracts(ctx, shipment)
	if err != nil {
		s.log.Error("Quote computation failed", zap.String("segment", segment), zap.Error(err))
		s.metrics.ObserveRequest(segment, "error", time.Since(start))
		return nil, nil, err
	}

	outcome := "quoted"
	if len(quotes) == 0 {
		outcome = "no_carriers"
	}
	s.metrics.ObserveRequest(segment, outcome, time.Since(start))
	return shipment, quotes, nil
}

func (s *QuoteService) prepare(ctx context.Context, req domain.RateRequest) (*Shipment, error) {
	dims := req.Dimensions()
	weight, weightType := domain.ChargeableWeight(req.Weight, dims)
	shipment := &Shipment{
		Request:          req,
		Dimensions:       dims,
		ChargeableWeight: weight,
		WeightType:       weightType,
		Segment:          domain.ClassifySegment(weight, req.PackageCount),
	}

	if shipment.Segment != ratecards.SegmentFullTruckload {
		zone, err := s.zones.Resolve(ctx, req.OriginPincode, req.DestinationPincode)
		if err != nil {
			return nil, err
		}
		if !zone.Found {
			s.log.Debug("Zone guessed from pincodes",
				zap.String("origin", req.OriginPincode),
				zap.String("destination", req.DestinationPincode),
				zap.String("zone", zone.Zone),
			)
		}
		shipment.Zone = zone
	}
	return shipment, nil
}

// priceContracts fans out one calculation per contract on a bounded pool and fans in by index.
// The first failure cancels the remaining work and is returned.
func (s *QuoteService) priceContracts(ctx context.Context, shipment *Shipment) ([]domain.CarrierQuote, error) {
	calc, ok := s.calculators[shipment.Segment]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCalculator, shipment.Segment)
	}

	contracts, err := s.listContracts(ctx, shipment)
	if err != nil {
		return nil, err
	}

	results := make([][]domain.CarrierQuote, len(contracts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, contract := range contracts {
		g.Go(func() error {
			quotes, err := calc.Quote(gctx, contract, shipment)
			if err != nil {
				return fmt.Errorf("contract %s: %w", contract.ID, err)
			}
			results[i] = quotes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	serviceable := make([]domain.CarrierQuote, 0, len(contracts))
	var skipped, unserviceable int
	for i, quotes := range results {
		if len(quotes) == 0 {
			skipped++
			s.log.Debug("No applicable rate", zap.String("contract_id", contracts[i].ID))
			continue
		}
		for _, q := range quotes {
			if !q.Serviceable {
				unserviceable++
				s.log.Debug("Quote not serviceable",
					zap.String("contract_id", q.RateContractID),
					zap.Strings("remarks", q.Remarks),
				)
				continue
			}
			serviceable = append(serviceable, q)
		}
	}
	s.metrics.ObserveCandidates(string(shipment.Segment), len(serviceable), skipped, unserviceable)
	return serviceable, nil
}

// listContracts pages through every eligible contract.
func (s *QuoteService) listContracts(ctx context.Context, shipment *Shipment) ([]ratecards.RateContract, error) {
	filter := ratecards.ContractFilter{
		Segment:     shipment.Segment,
		CarrierIDs:  shipment.Request.CarrierIDs,
		ServiceType: shipment.Request.ServiceType,
		AsOf:        s.now(),
		Limit:       s.pageSize,
	}

	var all []ratecards.RateContract
	for {
		page, err := s.contracts.ListActive(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list contracts: %w", err)
		}
		all = append(all, page...)
		if len(page) < filter.Limit {
			return all, nil
		}
		filter.Offset += len(page)
	}
}
