package search

import (
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// Score holds the derived values of one candidate.
type Score struct {
	Properties   property.Set
	Cost         int64
	SellPrice    int64
	Profit       int64
	MultiplierBP int64
	Ingredients  int
}

// Multiplier returns the summed property multiplier as a float.
func (s *Score) Multiplier() float64 {
	return float64(s.MultiplierBP) / domain.MultiplierScale
}

// Scorer turns property sets into prices. It is read-only after
// construction and safe for concurrent use.
type Scorer struct {
	multipliers [property.Capacity]int64
}

// NewScorer indexes the multiplier of every property.
func NewScorer(properties []domain.Property) *Scorer {
	s := &Scorer{}
	for _, p := range properties {
		s.multipliers[p.ID] = p.MultiplierBP
	}
	return s
}

// MultiplierBP sums the multipliers of the properties in set.
func (s *Scorer) MultiplierBP(set property.Set) int64 {
	var total int64
	for id := range set.All() {
		total += s.multipliers[id]
	}
	return total
}

// Score prices a finished mix of base with the given property set, total
// modifier cost and modifier count.
func (s *Scorer) Score(base *domain.BaseItem, set property.Set, cost int64, ingredients int) Score {
	bp := s.MultiplierBP(set)
	sell := SellPrice(base.BaseSellValue, bp)
	return Score{
		Properties:   set,
		Cost:         cost,
		SellPrice:    sell,
		Profit:       max(0, sell-cost),
		MultiplierBP: bp,
		Ingredients:  ingredients,
	}
}

// SellPrice returns base × (1 + multiplier), rounded half away from zero,
// with the multiplier given in basis points.
func SellPrice(base, multiplierBP int64) int64 {
	num := base * (domain.MultiplierScale + multiplierBP)
	const half = domain.MultiplierScale / 2
	if num >= 0 {
		return (num + half) / domain.MultiplierScale
	}
	return -((-num + half) / domain.MultiplierScale)
}

// Cost sums the buy price of every modifier occurrence.
func Cost(modifiers []domain.Modifier) int64 {
	var total int64
	for i := range modifiers {
		total += modifiers[i].BuyPrice
	}
	return total
}
