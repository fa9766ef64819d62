package service

import (
	"math/rand"
	"slices"
	"testing"

	"rate-shopper/internal/features/quotes/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rq(id string, total float64, days int, perf *float64) domain.CarrierQuote {
	return domain.CarrierQuote{RateContractID: id, TotalCost: total, MinDeliveryDays: days, PerformanceScore: perf, Serviceable: true}
}

func ids(quotes []domain.CarrierQuote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.RateContractID
	}
	return out
}

func TestRank_Strategies(t *testing.T) {
	quotes := []domain.CarrierQuote{
		rq("a", 300, 2, f(70)),
		rq("b", 150, 5, nil),
		rq("c", 200, 1, f(95)),
		rq("d", 150, 3, f(40)),
	}

	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(Rank(quotes, domain.StrategyCheapestFirst)))
	assert.Equal(t, []string{"c", "a", "d", "b"}, ids(Rank(quotes, domain.StrategyFastestFirst)))
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(Rank(quotes, domain.StrategyBestSLA)), "missing score counts as 50")
	assert.Equal(t, "c", Rank(quotes, domain.StrategyBalanced)[0].RateContractID)

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(quotes), "input is not reordered")
}

func TestRank_BalancedScores(t *testing.T) {
	quotes := []domain.CarrierQuote{
		rq("cheap", 100, 5, f(60)),
		rq("fast", 200, 1, f(80)),
		rq("mid", 150, 3, nil),
	}

	ranked := Rank(quotes, domain.StrategyBalanced)
	scores := map[string]float64{}
	for _, q := range ranked {
		scores[q.RateContractID] = q.AllocationScore
	}

	// cheap: 0.4*100 + 0.3*0 + 0.3*(60-50)/30*100
	assert.Equal(t, 50.0, scores["cheap"])
	// fast: 0.4*0 + 0.3*100 + 0.3*100
	assert.Equal(t, 60.0, scores["fast"])
	// mid: 0.4*50 + 0.3*50 + 0.3*0
	assert.Equal(t, 35.0, scores["mid"])
	assert.Equal(t, []string{"fast", "cheap", "mid"}, ids(ranked))
}

func TestRank_DegenerateRange(t *testing.T) {
	quotes := []domain.CarrierQuote{
		rq("a", 500, 3, f(70)),
		rq("b", 500, 3, f(70)),
		rq("c", 500, 3, f(70)),
	}

	ranked := Rank(quotes, domain.StrategyBalanced)
	require.Len(t, ranked, 3)
	for _, q := range ranked {
		assert.Zero(t, q.AllocationScore, "identical values score 0 on every criterion")
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(ranked), "ties keep candidate order")

	mixed := []domain.CarrierQuote{
		rq("slow", 400, 3, nil),
		rq("cheap", 300, 3, nil),
	}
	ranked = Rank(mixed, domain.StrategyBalanced)
	assert.Equal(t, 40.0, ranked[0].AllocationScore)
	assert.Equal(t, "cheap", ranked[0].RateContractID)
	assert.Zero(t, ranked[1].AllocationScore)
}

func TestRank_SingleQuote(t *testing.T) {
	ranked := Rank([]domain.CarrierQuote{rq("only", 99, 2, nil)}, domain.StrategyBalanced)
	require.Len(t, ranked, 1)
	assert.Zero(t, ranked[0].AllocationScore)
	assert.Empty(t, Rank(nil, domain.StrategyCheapestFirst))
}

func TestRank_StableTies(t *testing.T) {
	quotes := []domain.CarrierQuote{
		rq("first", 100, 4, f(50)),
		rq("second", 100, 2, f(90)),
		rq("third", 100, 1, f(10)),
	}

	assert.Equal(t, []string{"first", "second", "third"}, ids(Rank(quotes, domain.StrategyCheapestFirst)))

	sameDays := []domain.CarrierQuote{rq("x", 300, 2, nil), rq("y", 100, 2, nil)}
	assert.Equal(t, []string{"x", "y"}, ids(Rank(sameDays, domain.StrategyFastestFirst)))
}

func TestRank_BalancedDominantQuoteWins(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(6)
		quotes := make([]domain.CarrierQuote, 0, n+1)
		for i := 0; i < n; i++ {
			var perf *float64
			if rng.Intn(4) > 0 {
				perf = f(float64(rng.Intn(90)))
			}
			quotes = append(quotes, rq("peer", 100+float64(rng.Intn(900)), 2+rng.Intn(8), perf))
		}
		quotes = append(quotes, rq("best", 99, 1, f(95)))

		for perm := 0; perm < 5; perm++ {
			rng.Shuffle(len(quotes), func(i, j int) { quotes[i], quotes[j] = quotes[j], quotes[i] })
			ranked := Rank(quotes, domain.StrategyBalanced)
			require.Equal(t, "best", ranked[0].RateContractID, "round %d permutation %d", round, perm)
			assert.Equal(t, 100.0, ranked[0].AllocationScore)
		}
	}
}

func TestRank_CheapestFirstIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 100; round++ {
		quotes := make([]domain.CarrierQuote, 2+rng.Intn(8))
		for i := range quotes {
			quotes[i] = rq("q", float64(rng.Intn(5000))/10, rng.Intn(6), nil)
		}

		once := Rank(quotes, domain.StrategyCheapestFirst)
		assert.True(t, slices.IsSortedFunc(once, func(a, b domain.CarrierQuote) int {
			switch {
			case a.TotalCost < b.TotalCost:
				return -1
			case a.TotalCost > b.TotalCost:
				return 1
			}
			return 0
		}))

		twice := Rank(once, domain.StrategyCheapestFirst)
		assert.Equal(t, once, twice, "re-sorting is idempotent")

		rng.Shuffle(len(quotes), func(i, j int) { quotes[i], quotes[j] = quotes[j], quotes[i] })
		shuffled := Rank(quotes, domain.StrategyCheapestFirst)
		for i := range once {
			assert.Equal(t, once[i].TotalCost, shuffled[i].TotalCost)
		}
	}
}
