package search

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// Catalog is the read-only reference data a search resolves names against.
type Catalog interface {
	Properties() []domain.Property
	BaseItems() []domain.BaseItem
	Modifiers() []domain.Modifier
	PropertyByName(name string) (domain.Property, bool)
	BaseItemByName(name string) (domain.BaseItem, bool)
	ModifierByName(name string) (domain.Modifier, bool)
	TierByName(name string) (domain.Tier, bool)
}

// FilterBuilder collects a search configuration by name. Lookup failures
// are recorded rather than returned, and Build reports all of them at once.
type FilterBuilder struct {
	catalog Catalog

	baseItems map[domain.BaseItemID]domain.BaseItem
	modifiers map[domain.ModifierID]domain.Modifier
	required  property.Set
	blocked   property.Set

	ranking      Ranking
	rankingSet   bool
	maxModifiers int
	maxTier      *domain.Tier

	errs []error
}

// NewFilterBuilder starts an empty configuration against c.
func NewFilterBuilder(c Catalog) *FilterBuilder {
	return &FilterBuilder{
		catalog:      c,
		baseItems:    make(map[domain.BaseItemID]domain.BaseItem),
		modifiers:    make(map[domain.ModifierID]domain.Modifier),
		maxModifiers: DefaultMaxModifiers,
	}
}

// AddBaseItems makes the named base items eligible.
func (b *FilterBuilder) AddBaseItems(names ...string) *FilterBuilder {
	for _, n := range names {
		item, ok := b.catalog.BaseItemByName(n)
		if !ok {
			b.errs = append(b.errs, fmt.Errorf("%w: %q", domain.ErrUnknownBaseItem, n))
			continue
		}
		b.baseItems[item.ID] = item
	}
	return b
}

// AddAllBaseItems makes every catalog base item eligible.
func (b *FilterBuilder) AddAllBaseItems() *FilterBuilder {
	for _, item := range b.catalog.BaseItems() {
		b.baseItems[item.ID] = item
	}
	return b
}

// AddModifiers makes the named modifiers eligible.
func (b *FilterBuilder) AddModifiers(names ...string) *FilterBuilder {
	for _, n := range names {
		m, ok := b.catalog.ModifierByName(n)
		if !ok {
			b.errs = append(b.errs, fmt.Errorf("%w: %q", domain.ErrUnknownModifier, n))
			continue
		}
		b.modifiers[m.ID] = m
	}
	return b
}

// AddAllModifiers makes every catalog modifier eligible.
func (b *FilterBuilder) AddAllModifiers() *FilterBuilder {
	for _, m := range b.catalog.Modifiers() {
		b.modifiers[m.ID] = m
	}
	return b
}

// Require adds properties every admissible mix must carry.
func (b *FilterBuilder) Require(names ...string) *FilterBuilder {
	b.resolveInto(&b.required, names)
	return b
}

// Block adds properties no admissible mix may carry.
func (b *FilterBuilder) Block(names ...string) *FilterBuilder {
	b.resolveInto(&b.blocked, names)
	return b
}

func (b *FilterBuilder) resolveInto(set *property.Set, names []string) {
	for _, n := range names {
		p, ok := b.catalog.PropertyByName(n)
		if !ok {
			b.errs = append(b.errs, fmt.Errorf("%w: %q", domain.ErrUnknownProperty, n))
			continue
		}
		set.Add(p.ID)
	}
}

// OptimizeFor replaces the ranking with the named targets, most significant
// first.
func (b *FilterBuilder) OptimizeFor(names ...string) *FilterBuilder {
	r, err := ParseRanking(names...)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	b.ranking = r
	b.rankingSet = true
	return b
}

// WithRanking replaces the ranking with already parsed targets.
func (b *FilterBuilder) WithRanking(r Ranking) *FilterBuilder {
	b.ranking = slices.Clone(r)
	b.rankingSet = true
	return b
}

// MaxModifiers bounds the modifier sequence length.
func (b *FilterBuilder) MaxModifiers(n int) *FilterBuilder {
	b.maxModifiers = n
	return b
}

// UpToTier restricts eligible base items and modifiers to those unlocked at
// or below the named tier.
func (b *FilterBuilder) UpToTier(name string) *FilterBuilder {
	t, ok := b.catalog.TierByName(name)
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", domain.ErrUnknownTier, name))
		return b
	}
	b.maxTier = &t
	return b
}

// Build returns the resolved filter, or every configuration error joined.
// Eligible items are ordered by id so equal configurations build equal
// filters regardless of call order.
func (b *FilterBuilder) Build() (*Filter, error) {
	errs := slices.Clone(b.errs)
	if b.maxModifiers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", domain.ErrInvalidMaxModifiers, b.maxModifiers))
	}
	ranking := DefaultRanking()
	if b.rankingSet {
		ranking = b.ranking
		if len(ranking) == 0 && len(b.errs) == 0 {
			errs = append(errs, domain.ErrNoOptimizeTargets)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	f := &Filter{
		BaseItems:    make([]domain.BaseItem, 0, len(b.baseItems)),
		Modifiers:    make([]domain.Modifier, 0, len(b.modifiers)),
		Constraints:  Constraints{Required: b.required, Blocked: b.blocked},
		Ranking:      slices.Clone(ranking),
		MaxModifiers: b.maxModifiers,
	}
	for _, item := range b.baseItems {
		if b.unlocked(item.UnlockTier) {
			f.BaseItems = append(f.BaseItems, item)
		}
	}
	for _, m := range b.modifiers {
		if b.unlocked(m.UnlockTier) {
			f.Modifiers = append(f.Modifiers, m)
		}
	}
	slices.SortFunc(f.BaseItems, func(x, y domain.BaseItem) int { return cmp.Compare(x.ID, y.ID) })
	slices.SortFunc(f.Modifiers, func(x, y domain.Modifier) int { return cmp.Compare(x.ID, y.ID) })

	return f, nil
}

func (b *FilterBuilder) unlocked(tier int) bool {
	return b.maxTier == nil || tier <= b.maxTier.Level
}
