package service

import (
	"context"
	"testing"
	"time"

	"rate-shopper/internal/features/quotes/domain"
	"rate-shopper/internal/features/ratecards/adapters"
	ratecards "rate-shopper/internal/features/ratecards/domain"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func fixtureStore(t *testing.T) *adapters.MemoryStore {
	t.Helper()
	store, err := adapters.LoadMemoryStore("../../ratecards/adapters/testdata/rates.json")
	require.NoError(t, err)
	return store
}

func activeContract(id string, segment ratecards.Segment) ratecards.RateContract {
	return ratecards.RateContract{
		ID:            id,
		CarrierID:     "car-" + id,
		CarrierName:   "Carrier " + id,
		Name:          "Contract " + id,
		Segment:       segment,
		Status:        ratecards.ContractStatusActive,
		EffectiveFrom: testNow.AddDate(-1, 0, 0),
	}
}

// shipment builds a normalized Shipment the way QuoteService.prepare does.
func shipment(req domain.RateRequest, zone domain.ZoneResolution) *Shipment {
	req.Normalize()
	dims := req.Dimensions()
	weight, weightType := domain.ChargeableWeight(req.Weight, dims)
	return &Shipment{
		Request:          req,
		Dimensions:       dims,
		ChargeableWeight: weight,
		WeightType:       weightType,
		Segment:          domain.ClassifySegment(weight, req.PackageCount),
		Zone:             zone,
	}
}

func quoteOne(t *testing.T, calc Calculator, contract ratecards.RateContract, s *Shipment) domain.CarrierQuote {
	t.Helper()
	quotes, err := calc.Quote(context.Background(), contract, s)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	return quotes[0]
}

// stubRates fails every rate card read with err.
type stubRates struct{ err error }

func (s *stubRates) ListActive(context.Context, ratecards.ContractFilter) ([]ratecards.RateContract, error) {
	return nil, s.err
}

func (s *stubRates) WeightSlabs(context.Context, string, string) ([]ratecards.WeightSlab, error) {
	return nil, s.err
}

func (s *stubRates) Surcharges(context.Context, string, string) ([]ratecards.Charge, error) {
	return nil, s.err
}

func (s *stubRates) RateSlabs(context.Context, string) ([]ratecards.RateSlab, error) {
	return nil, s.err
}

func (s *stubRates) AdditionalCharges(context.Context, string) ([]ratecards.Charge, error) {
	return nil, s.err
}

func (s *stubRates) LaneRates(context.Context, string) ([]ratecards.LaneRate, error) {
	return nil, s.err
}
