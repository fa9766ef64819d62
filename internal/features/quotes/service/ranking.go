package service

import (
	"cmp"
	"slices"

	"rate-shopper/internal/core/money"
	"rate-shopper/internal/features/quotes/domain"
)

// Balanced strategy weights.
const (
	CostWeight        = 0.40
	DeliveryWeight    = 0.30
	PerformanceWeight = 0.30
)

// DefaultPerformanceScore stands in for carriers without a scorecard.
const DefaultPerformanceScore = 50.0

// Rank orders quotes under strategy and stamps each with its balanced allocation score.
// The input is not modified. Ties keep their input order.
func Rank(quotes []domain.CarrierQuote, strategy domain.Strategy) []domain.CarrierQuote {
	ranked := slices.Clone(quotes)
	scores := balancedScores(ranked)

	type scored struct {
		quote domain.CarrierQuote
		score float64
	}
	items := make([]scored, len(ranked))
	for i := range ranked {
		ranked[i].AllocationScore = money.Round2(scores[i])
		items[i] = scored{quote: ranked[i], score: scores[i]}
	}

	var compare func(a, b scored) int
	switch strategy {
	case domain.StrategyCheapestFirst:
		compare = func(a, b scored) int { return cmp.Compare(a.quote.TotalCost, b.quote.TotalCost) }
	case domain.StrategyFastestFirst:
		compare = func(a, b scored) int { return cmp.Compare(a.quote.MinDeliveryDays, b.quote.MinDeliveryDays) }
	case domain.StrategyBestSLA:
		compare = func(a, b scored) int { return cmp.Compare(performanceOf(b.quote), performanceOf(a.quote)) }
	default:
		compare = func(a, b scored) int { return cmp.Compare(b.score, a.score) }
	}
	slices.SortStableFunc(items, compare)

	for i, it := range items {
		ranked[i] = it.quote
	}
	return ranked
}

// balancedScores min-max normalizes cost (inverted), minimum delivery days (inverted)
// and performance into [0,100] and weights them. A zero range is treated as 1.
func balancedScores(quotes []domain.CarrierQuote) []float64 {
	scores := make([]float64, len(quotes))
	if len(quotes) == 0 {
		return scores
	}

	costs := make([]float64, len(quotes))
	days := make([]float64, len(quotes))
	perf := make([]float64, len(quotes))
	for i, q := range quotes {
		costs[i] = q.TotalCost
		days[i] = float64(q.MinDeliveryDays)
		perf[i] = performanceOf(q)
	}

	minCost, maxCost := slices.Min(costs), slices.Max(costs)
	minDays, maxDays := slices.Min(days), slices.Max(days)
	minPerf, maxPerf := slices.Min(perf), slices.Max(perf)
	costRange := normalizationRange(minCost, maxCost)
	daysRange := normalizationRange(minDays, maxDays)
	perfRange := normalizationRange(minPerf, maxPerf)

	for i := range quotes {
		costScore := (maxCost - costs[i]) / costRange * 100
		daysScore := (maxDays - days[i]) / daysRange * 100
		perfScore := (perf[i] - minPerf) / perfRange * 100
		scores[i] = CostWeight*costScore + DeliveryWeight*daysScore + PerformanceWeight*perfScore
	}
	return scores
}

func normalizationRange(low, high float64) float64 {
	if r := high - low; r != 0 {
		return r
	}
	return 1
}

func performanceOf(q domain.CarrierQuote) float64 {
	if q.PerformanceScore == nil {
		return DefaultPerformanceScore
	}
	return *q.PerformanceScore
}
