package search

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// DefaultMaxModifiers is the sequence length bound used when none is set.
const DefaultMaxModifiers = 8

// Constraints decide which finished mixes are admissible.
type Constraints struct {
	Required property.Set
	Blocked  property.Set
}

// Admit reports whether set carries every required property and none of
// the blocked ones.
func (c Constraints) Admit(set property.Set) bool {
	return set.ContainsAll(c.Required) && !set.Intersects(c.Blocked)
}

// Filter is a fully resolved search configuration. Build one with
// FilterBuilder.
type Filter struct {
	BaseItems    []domain.BaseItem
	Modifiers    []domain.Modifier
	Constraints  Constraints
	Ranking      Ranking
	MaxModifiers int
}

// Fingerprint identifies the filter's search space, constraints and ranking.
// Filters that would produce the same result share a fingerprint.
func (f *Filter) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	write(uint64(len(f.BaseItems)))
	for _, b := range f.BaseItems {
		write(uint64(b.ID))
	}
	write(uint64(len(f.Modifiers)))
	for _, m := range f.Modifiers {
		write(uint64(m.ID))
	}
	for _, id := range f.Constraints.Required.IDs() {
		write(uint64(id))
	}
	write(property.Capacity) // no id reaches Capacity, so it separates the two lists
	for _, id := range f.Constraints.Blocked.IDs() {
		write(uint64(id))
	}
	write(uint64(len(f.Ranking)))
	for _, t := range f.Ranking {
		write(uint64(t))
	}
	write(uint64(f.MaxModifiers))

	return hex.EncodeToString(h.Sum(nil))
}
