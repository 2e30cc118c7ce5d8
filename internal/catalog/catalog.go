// Package catalog loads the immutable reference data a search runs against:
// properties, base items, modifiers and unlock tiers.
package catalog

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/property"
)

// maxEntityID bounds base item and modifier ids, which are stored as uint8.
const maxEntityID = math.MaxUint8

// Catalog is a validated, read-only view of the reference data. It is safe
// for concurrent use.
type Catalog struct {
	properties []domain.Property
	baseItems  []domain.BaseItem
	modifiers  []domain.Modifier
	tiers      []domain.Tier

	propertyIdx map[domain.PropertyID]int

	propertyByName map[string]int
	baseItemByName map[string]int
	modifierByName map[string]int
	tierByName     map[string]int

	fingerprint string
}

// New validates the given entities and builds a catalog from them. The
// slices are copied; modifier replacements are sorted by source id.
func New(properties []domain.Property, baseItems []domain.BaseItem, modifiers []domain.Modifier, tiers []domain.Tier) (*Catalog, error) {
	c := &Catalog{
		properties:     slices.Clone(properties),
		baseItems:      slices.Clone(baseItems),
		modifiers:      make([]domain.Modifier, len(modifiers)),
		tiers:          slices.Clone(tiers),
		propertyIdx:    make(map[domain.PropertyID]int, len(properties)),
		propertyByName: make(map[string]int, len(properties)),
		baseItemByName: make(map[string]int, len(baseItems)),
		modifierByName: make(map[string]int, len(modifiers)),
		tierByName:     make(map[string]int, len(tiers)),
	}
	for i, m := range modifiers {
		m.Replacements = slices.Clone(m.Replacements)
		c.modifiers[i] = m
	}

	slices.SortFunc(c.properties, func(a, b domain.Property) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(c.baseItems, func(a, b domain.BaseItem) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(c.modifiers, func(a, b domain.Modifier) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortStableFunc(c.tiers, func(a, b domain.Tier) int { return cmp.Compare(a.Level, b.Level) })

	if err := c.indexProperties(); err != nil {
		return nil, err
	}
	if err := c.indexBaseItems(); err != nil {
		return nil, err
	}
	if err := c.indexModifiers(); err != nil {
		return nil, err
	}
	if err := c.indexTiers(); err != nil {
		return nil, err
	}

	fp, err := c.computeFingerprint()
	if err != nil {
		return nil, err
	}
	c.fingerprint = fp

	return c, nil
}

func (c *Catalog) indexProperties() error {
	if len(c.properties) == 0 {
		return fmt.Errorf(ErrFmtNoProperties, domain.ErrInvalidCatalog)
	}
	for i := range c.properties {
		p := &c.properties[i]
		if int(p.ID) >= property.Capacity {
			return fmt.Errorf(ErrFmtIDOutOfRange, domain.ErrPropertyOutOfRange, kindProperty, p.Name, p.ID)
		}
		if _, dup := c.propertyIdx[p.ID]; dup {
			return fmt.Errorf(ErrFmtDuplicateID, domain.ErrInvalidCatalog, kindProperty, p.ID)
		}
		if err := addName(c.propertyByName, kindProperty, p.Name, i); err != nil {
			return err
		}
		p.MultiplierBP = int64(math.Round(p.Multiplier * domain.MultiplierScale))
		c.propertyIdx[p.ID] = i
	}
	return nil
}

func (c *Catalog) indexBaseItems() error {
	seen := make(map[domain.BaseItemID]bool, len(c.baseItems))
	for i, b := range c.baseItems {
		if seen[b.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, domain.ErrInvalidCatalog, kindBaseItem, b.ID)
		}
		if err := addName(c.baseItemByName, kindBaseItem, b.Name, i); err != nil {
			return err
		}
		if b.BaseSellValue < 0 {
			return fmt.Errorf(ErrFmtNegativePrice, domain.ErrNegativePrice, kindBaseItem, b.Name)
		}
		if b.InherentProperty != nil {
			if err := c.checkRef(kindBaseItem, b.Name, *b.InherentProperty); err != nil {
				return err
			}
		}
		seen[b.ID] = true
	}
	return nil
}

func (c *Catalog) indexModifiers() error {
	seen := make(map[domain.ModifierID]bool, len(c.modifiers))
	for i := range c.modifiers {
		m := &c.modifiers[i]
		if seen[m.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, domain.ErrInvalidCatalog, kindModifier, m.ID)
		}
		if err := addName(c.modifierByName, kindModifier, m.Name, i); err != nil {
			return err
		}
		if m.BuyPrice < 0 {
			return fmt.Errorf(ErrFmtNegativePrice, domain.ErrNegativePrice, kindModifier, m.Name)
		}
		if err := c.checkRef(kindModifier, m.Name, m.AddsProperty); err != nil {
			return err
		}
		for _, r := range m.Replacements {
			if err := c.checkRef(kindModifier, m.Name, r.From); err != nil {
				return err
			}
			if err := c.checkRef(kindModifier, m.Name, r.To); err != nil {
				return err
			}
		}
		slices.SortFunc(m.Replacements, func(a, b domain.Replacement) int { return cmp.Compare(a.From, b.From) })
		seen[m.ID] = true
	}
	return nil
}

func (c *Catalog) indexTiers() error {
	for i, t := range c.tiers {
		if err := addName(c.tierByName, kindTier, t.Name, i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) checkRef(kind, name string, id domain.PropertyID) error {
	if _, ok := c.propertyIdx[id]; !ok {
		return fmt.Errorf(ErrFmtDanglingReference, domain.ErrDanglingPropertyRef, kind, name, id)
	}
	return nil
}

func addName(index map[string]int, kind, name string, i int) error {
	key := FoldName(name)
	if _, dup := index[key]; dup {
		return fmt.Errorf(ErrFmtDuplicateName, domain.ErrDuplicateName, kind, name)
	}
	index[key] = i
	return nil
}

// computeFingerprint hashes the normalized catalog, so two documents that
// differ only in formatting or key order share a fingerprint.
func (c *Catalog) computeFingerprint() (string, error) {
	data, err := json.Marshal(struct {
		Properties []domain.Property `json:"properties"`
		BaseItems  []domain.BaseItem `json:"base_items"`
		Modifiers  []domain.Modifier `json:"modifiers"`
		Tiers      []domain.Tier     `json:"tiers"`
	}{c.properties, c.baseItems, c.modifiers, c.tiers})
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog for fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// FoldName normalizes a display name for case-insensitive lookup.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Fingerprint identifies the catalog content.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

// Properties returns every property in ascending id order.
func (c *Catalog) Properties() []domain.Property { return c.properties }

// BaseItems returns every base item in ascending id order.
func (c *Catalog) BaseItems() []domain.BaseItem { return c.baseItems }

// Modifiers returns every modifier in ascending id order.
func (c *Catalog) Modifiers() []domain.Modifier { return c.modifiers }

// Tiers returns every tier in ascending level order.
func (c *Catalog) Tiers() []domain.Tier { return c.tiers }

// Property looks up a property by id.
func (c *Catalog) Property(id domain.PropertyID) (domain.Property, bool) {
	i, ok := c.propertyIdx[id]
	if !ok {
		return domain.Property{}, false
	}
	return c.properties[i], true
}

// PropertyByName looks up a property by case-insensitive name.
func (c *Catalog) PropertyByName(name string) (domain.Property, bool) {
	i, ok := c.propertyByName[FoldName(name)]
	if !ok {
		return domain.Property{}, false
	}
	return c.properties[i], true
}

// BaseItemByName looks up a base item by case-insensitive name.
func (c *Catalog) BaseItemByName(name string) (domain.BaseItem, bool) {
	i, ok := c.baseItemByName[FoldName(name)]
	if !ok {
		return domain.BaseItem{}, false
	}
	return c.baseItems[i], true
}

// ModifierByName looks up a modifier by case-insensitive name.
func (c *Catalog) ModifierByName(name string) (domain.Modifier, bool) {
	i, ok := c.modifierByName[FoldName(name)]
	if !ok {
		return domain.Modifier{}, false
	}
	return c.modifiers[i], true
}

// TierByName looks up a tier by case-insensitive name.
func (c *Catalog) TierByName(name string) (domain.Tier, bool) {
	i, ok := c.tierByName[FoldName(name)]
	if !ok {
		return domain.Tier{}, false
	}
	return c.tiers[i], true
}
