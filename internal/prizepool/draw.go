package prizepool

import (
	"math/rand/v2"
	"sort"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// Random is the randomness a draw consumes
type Random interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type globalRandom struct{}

func (globalRandom) Float64() float64                   { return rand.Float64() }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Roll is a single roll against one category
type Roll struct {
	PoolType  int     `json:"pool_type"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Won       bool    `json:"won"`
}

// DrawResult is the outcome of one draw. Prize is nil when nothing was won.
type DrawResult struct {
	Prize    *domain.Prize `json:"prize"`
	PoolType int           `json:"pool_type"`
	Rolls    []Roll        `json:"rolls"`
}

// Won reports whether the draw awarded a prize
func (r *DrawResult) Won() bool {
	return r.Prize != nil
}

// Draw runs the pity draw over pools in place.
//
// Categories are visited in ascending type order. Until something is won,
// each category rolls u in [0,1) and wins iff u < currentChance/100. The
// winner hands out one unit of a uniformly chosen prize and drops back to its
// base chance. Every category that did not win, before or after the winner,
// gains its base chance.
func Draw(pools []*domain.PrizePool, rnd Random) *DrawResult {
	ordered := append([]*domain.PrizePool(nil), pools...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Type < ordered[j].Type })

	result := &DrawResult{PoolType: -1}
	for _, pool := range ordered {
		if result.Prize != nil || pool.IsEmpty() {
			pool.IncreaseChance()
			continue
		}

		u := rnd.Float64()
		threshold := pool.CurrentChance / MaxChance
		won := u < threshold
		result.Rolls = append(result.Rolls, Roll{PoolType: pool.Type, Value: u, Threshold: threshold, Won: won})
		if !won {
			pool.IncreaseChance()
			continue
		}

		prize := pickPrize(pool, rnd)
		pool.Remove(prize.Name)
		pool.ResetChance()
		result.Prize = &prize
		result.PoolType = pool.Type
	}
	return result
}

// pickPrize shuffles a bag holding each prize amount times and takes the first
func pickPrize(pool *domain.PrizePool, rnd Random) domain.Prize {
	var bag []domain.Prize
	for _, p := range pool.Prizes {
		for i := 0; i < p.Amount; i++ {
			bag = append(bag, domain.Prize{Name: p.Name, Amount: 1})
		}
	}
	rnd.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	return bag[0]
}
