// Package property holds the fixed-capacity set of properties carried by a mix.
package property

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
)

// Capacity is the number of distinct property ids a Set can hold.
const Capacity = 64

// Set is a value-type bit vector over property ids in [0, Capacity).
// The zero value is the empty set.
type Set struct {
	bits uint64
}

// Lister exposes catalog properties in ascending id order.
type Lister interface {
	Properties() []domain.Property
}

// FromIDs builds a set containing every given id.
func FromIDs(ids ...domain.PropertyID) Set {
	var s Set
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id. Adding a present id is a no-op.
func (s *Set) Add(id domain.PropertyID) {
	s.bits |= mask(id)
}

// Remove deletes id. Removing an absent id is a no-op.
func (s *Set) Remove(id domain.PropertyID) {
	s.bits &^= mask(id)
}

// Has reports whether id is present.
func (s Set) Has(id domain.PropertyID) bool {
	return s.bits&mask(id) != 0
}

// Len returns the number of present ids.
func (s Set) Len() int {
	return bits.OnesCount64(s.bits)
}

// IsEmpty reports whether no id is present.
func (s Set) IsEmpty() bool {
	return s.bits == 0
}

// ContainsAll reports whether every id of other is present in s.
func (s Set) ContainsAll(other Set) bool {
	return s.bits&other.bits == other.bits
}

// Intersects reports whether s and other share at least one id.
func (s Set) Intersects(other Set) bool {
	return s.bits&other.bits != 0
}

// All yields the present ids in ascending order without allocating.
func (s Set) All() iter.Seq[domain.PropertyID] {
	return func(yield func(domain.PropertyID) bool) {
		for b := s.bits; b != 0; b &= b - 1 {
			if !yield(domain.PropertyID(bits.TrailingZeros64(b))) {
				return
			}
		}
	}
}

// IDs returns the present ids in ascending order.
func (s Set) IDs() []domain.PropertyID {
	ids := make([]domain.PropertyID, 0, s.Len())
	for id := range s.All() {
		ids = append(ids, id)
	}
	return ids
}

// Properties returns the catalog properties present in s, in catalog order.
func (s Set) Properties(l Lister) []domain.Property {
	all := l.Properties()
	out := make([]domain.Property, 0, s.Len())
	for _, p := range all {
		if s.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the names of the catalog properties present in s.
func (s Set) Names(l Lister) []string {
	props := s.Properties(l)
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}

func (s Set) String() string {
	return fmt.Sprintf("%v", s.IDs())
}

func mask(id domain.PropertyID) uint64 {
	if int(id) >= Capacity {
		panic(fmt.Sprintf("property id %d out of range [0, %d)", id, Capacity))
	}
	return 1 << id
}
