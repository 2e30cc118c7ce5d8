// Package mixing applies modifiers to property sets.
package mixing

import (
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// MaxProperties is the most properties a mix can carry. A modifier's own
// property is dropped once the cap is reached; replacements still apply.
const MaxProperties = 8

// Apply returns the set produced by applying modifier to current.
//
// Replacements are matched against current, not the set being built. A rule
// whose target is already present is deferred and re-checked after the
// modifier's own property has been added.
func Apply(current property.Set, modifier *domain.Modifier) property.Set {
	next := current

	// Replacement sources are distinct property ids, so Capacity bounds the deferrals.
	var deferredBuf [property.Capacity]domain.Replacement
	deferred := deferredBuf[:0]

	for _, r := range modifier.Replacements {
		if !current.Has(r.From) {
			continue
		}
		if current.Has(r.To) {
			deferred = append(deferred, r)
			continue
		}
		next.Remove(r.From)
		next.Add(r.To)
	}

	if next.Len() < MaxProperties {
		next.Add(modifier.AddsProperty)
	}

	for _, r := range deferred {
		if next.Has(r.From) && !next.Has(r.To) {
			next.Remove(r.From)
			next.Add(r.To)
		}
	}

	return next
}

// Initial returns the property set a base item starts with.
func Initial(base *domain.BaseItem) property.Set {
	var s property.Set
	if base.InherentProperty != nil {
		s.Add(*base.InherentProperty)
	}
	return s
}

// Mix folds Apply over modifiers in order, starting from base's inherent
// property.
func Mix(base *domain.BaseItem, modifiers []domain.Modifier) property.Set {
	s := Initial(base)
	for i := range modifiers {
		s = Apply(s, &modifiers[i])
	}
	return s
}
