package search

import (
	"iter"
	"math"
	"math/bits"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/mixing"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// Candidate is one base item and the modifiers applied to it, in order.
type Candidate struct {
	Base      domain.BaseItem
	Modifiers []domain.Modifier
}

// Partition is an independent slice of the search space: every sequence of
// one length that starts with one modifier, applied to one base item.
type Partition struct {
	Base   int // index into the filter's base items
	Length int
	First  int // index into the filter's modifiers
}

// Generator enumerates candidates for a filter: for each base item, for
// each length from 1 to MaxModifiers, every ordered sequence of eligible
// modifiers with repetition. Enumeration is lazy and restartable.
type Generator struct {
	bases  []domain.BaseItem
	mods   []domain.Modifier
	maxLen int
}

// NewGenerator prepares the candidate space of f.
func NewGenerator(f *Filter) *Generator {
	return &Generator{
		bases:  f.BaseItems,
		mods:   f.Modifiers,
		maxLen: f.MaxModifiers,
	}
}

// Count returns the number of candidates, saturating at math.MaxUint64.
func (g *Generator) Count() uint64 {
	n := uint64(len(g.mods))
	var perBase, power uint64 = 0, 1
	for k := 1; k <= g.maxLen; k++ {
		power = satMul(power, n)
		perBase = satAdd(perBase, power)
	}
	return satMul(perBase, uint64(len(g.bases)))
}

// Partitions splits the space in generation order: base item, then length,
// then first modifier.
func (g *Generator) Partitions() []Partition {
	if len(g.bases) == 0 || len(g.mods) == 0 || g.maxLen <= 0 {
		return nil
	}
	parts := make([]Partition, 0, len(g.bases)*g.maxLen*len(g.mods))
	for b := range g.bases {
		for k := 1; k <= g.maxLen; k++ {
			for m := range g.mods {
				parts = append(parts, Partition{Base: b, Length: k, First: m})
			}
		}
	}
	return parts
}

// All yields every candidate in generation order.
func (g *Generator) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, p := range g.Partitions() {
			for c := range g.Candidates(p) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Candidates yields the candidates of p in generation order. Each yielded
// candidate owns its modifier slice.
func (g *Generator) Candidates(p Partition) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		g.walk(p, func(seq []int, _ property.Set, _ int64) bool {
			c := Candidate{Base: g.bases[p.Base], Modifiers: make([]domain.Modifier, len(seq))}
			for i, m := range seq {
				c.Modifiers[i] = g.mods[m]
			}
			return yield(c)
		})
	}
}

// visitFunc receives a modifier index sequence with its mixed property set
// and total cost. seq is reused between calls. Returning false stops the walk.
type visitFunc func(seq []int, set property.Set, cost int64) bool

// walk enumerates p like an odometer whose last position turns fastest.
// The property set and cost after every prefix are kept, so advancing
// position j only re-applies modifiers from j onward.
func (g *Generator) walk(p Partition, visit visitFunc) {
	k := p.Length
	if k <= 0 {
		return
	}
	base := &g.bases[p.Base]

	seq := make([]int, k)
	sets := make([]property.Set, k)
	costs := make([]int64, k)

	seq[0] = p.First
	sets[0] = mixing.Apply(mixing.Initial(base), &g.mods[p.First])
	costs[0] = g.mods[p.First].BuyPrice
	g.fill(seq, sets, costs, 1)

	n := len(g.mods)
	for {
		if !visit(seq, sets[k-1], costs[k-1]) {
			return
		}

		j := k - 1
		for j >= 1 {
			seq[j]++
			if seq[j] < n {
				break
			}
			seq[j] = 0
			j--
		}
		if j < 1 {
			return
		}
		g.fill(seq, sets, costs, j)
	}
}

// fill recomputes the prefix states from position from to the end.
func (g *Generator) fill(seq []int, sets []property.Set, costs []int64, from int) {
	for i := from; i < len(seq); i++ {
		m := &g.mods[seq[i]]
		sets[i] = mixing.Apply(sets[i-1], m)
		costs[i] = costs[i-1] + m.BuyPrice
	}
}

func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func satAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
