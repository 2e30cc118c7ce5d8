package search

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
)

// OptimizeTarget is one ranking criterion together with its preferred
// direction.
type OptimizeTarget int

// Optimize targets. The zero value is not a valid target.
const (
	TargetProfit        OptimizeTarget = iota + 1 // higher profit first
	TargetSellPrice                               // higher sell price first
	TargetCost                                    // lower cost first
	TargetFewestEffects                           // fewer properties first
	TargetMostEffects                             // more properties first
	TargetMultiplier                              // higher multiplier first
	TargetIngredients                             // fewer modifiers first
)

var targetNames = map[OptimizeTarget]string{
	TargetProfit:        TargetNameProfit,
	TargetSellPrice:     TargetNameSellPrice,
	TargetCost:          TargetNameCost,
	TargetFewestEffects: TargetNameFewestEffects,
	TargetMostEffects:   TargetNameMostEffects,
	TargetMultiplier:    TargetNameMultiplier,
	TargetIngredients:   TargetNameIngredients,
}

// AllTargets lists every optimize target in declaration order.
func AllTargets() []OptimizeTarget {
	return []OptimizeTarget{
		TargetProfit, TargetSellPrice, TargetCost, TargetFewestEffects,
		TargetMostEffects, TargetMultiplier, TargetIngredients,
	}
}

// ParseTarget resolves a target name. Matching ignores case and treats
// dashes and spaces like underscores.
func ParseTarget(name string) (OptimizeTarget, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for t, n := range targetNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownTarget, name)
}

func (t OptimizeTarget) String() string {
	if n, ok := targetNames[t]; ok {
		return n
	}
	return fmt.Sprintf("OptimizeTarget(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t OptimizeTarget) MarshalText() ([]byte, error) {
	if _, ok := targetNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownTarget, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OptimizeTarget) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// compare returns a negative number when a ranks ahead of b on t.
func (t OptimizeTarget) compare(a, b *Score) int {
	switch t {
	case TargetProfit:
		return cmp.Compare(b.Profit, a.Profit)
	case TargetSellPrice:
		return cmp.Compare(b.SellPrice, a.SellPrice)
	case TargetCost:
		return cmp.Compare(a.Cost, b.Cost)
	case TargetFewestEffects:
		return cmp.Compare(a.Properties.Len(), b.Properties.Len())
	case TargetMostEffects:
		return cmp.Compare(b.Properties.Len(), a.Properties.Len())
	case TargetMultiplier:
		return cmp.Compare(b.MultiplierBP, a.MultiplierBP)
	case TargetIngredients:
		return cmp.Compare(a.Ingredients, b.Ingredients)
	default:
		return 0
	}
}

// Ranking orders scores lexicographically over its targets.
type Ranking []OptimizeTarget

// DefaultRanking is used when no targets are configured.
func DefaultRanking() Ranking {
	return Ranking{TargetProfit, TargetCost, TargetIngredients}
}

// ParseRanking resolves every name, reporting all unknown ones at once.
func ParseRanking(names ...string) (Ranking, error) {
	r := make(Ranking, 0, len(names))
	var errs []error
	for _, n := range names {
		t, err := ParseTarget(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r = append(r, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Compare returns a negative number when a ranks ahead of b, a positive
// number when b ranks ahead of a, and zero when every target ties.
func (r Ranking) Compare(a, b *Score) int {
	for _, t := range r {
		if c := t.compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Better reports whether a strictly outranks b.
func (r Ranking) Better(a, b *Score) bool {
	return r.Compare(a, b) < 0
}

// Names returns the target names in order.
func (r Ranking) Names() []string {
	names := make([]string, len(r))
	for i, t := range r {
		names[i] = t.String()
	}
	return names
}
