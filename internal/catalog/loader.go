package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/validation"
)

//go:embed schema/catalog.schema.json
var catalogSchema []byte

// Document represents the JSON catalog file
type Document struct {
	Ranks       []RankDef                `json:"ranks"`
	Effects     map[string]EffectDef     `json:"effects"`
	Drugs       map[string]DrugDef       `json:"drugs"`
	Ingredients map[string]IngredientDef `json:"ingredients"`
}

// RankDef is a single unlock rank
type RankDef struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// EffectDef is a single property definition
type EffectDef struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsAbility   bool    `json:"is_ability"`
	IsCosmetic  bool    `json:"is_cosmetic"`
	Multiplier  float64 `json:"multiplier"`
}

// DrugDef is a single base item definition
type DrugDef struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	BaseEffectID  *int   `json:"base_effect_id"`
	BaseSellValue int64  `json:"base_sell_value"`
	UnlockRank    int    `json:"unlock_rank"`
}

// IngredientDef is a single modifier definition
type IngredientDef struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	BuyPrice        int64          `json:"buy_price"`
	UnlockRank      int            `json:"unlock_rank"`
	AddsEffect      int            `json:"adds_effect"`
	ReplacesEffects map[string]int `json:"replaces_effects"`
}

// Loader reads catalog documents from disk or memory
type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
	Parse(data []byte) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
	registerErr     error
}

// NewLoader creates a new Loader with the catalog schema registered
func NewLoader() Loader {
	v := validation.NewSchemaValidator()
	var registerErr error
	if err := v.Register(SchemaName, catalogSchema); err != nil {
		registerErr = fmt.Errorf(ErrMsgRegisterSchema, err)
	}
	return &catalogLoader{
		schemaValidator: v,
		registerErr:     registerErr,
	}
}

// Load reads, validates and builds the catalog at path
func Load(ctx context.Context, path string) (*Catalog, error) {
	return NewLoader().Load(ctx, path)
}

// Load reads a catalog file and builds a validated Catalog from it
func (l *catalogLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}

	c, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"path", path,
		"properties", len(c.Properties()),
		"base_items", len(c.BaseItems()),
		"modifiers", len(c.Modifiers()),
		"tiers", len(c.Tiers()),
		"fingerprint", c.Fingerprint())

	return c, nil
}

// Parse validates raw catalog JSON against the schema and the catalog rules
func (l *catalogLoader) Parse(data []byte) (*Catalog, error) {
	if l.registerErr != nil {
		return nil, l.registerErr
	}

	if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	return doc.Build()
}

// Build converts the document into domain entities and validates them
func (d *Document) Build() (*Catalog, error) {
	properties := make([]domain.Property, 0, len(d.Effects))
	for _, key := range sortedKeys(d.Effects) {
		def := d.Effects[key]
		if err := checkKey(kindProperty, key, def.ID); err != nil {
			return nil, err
		}
		// Ids past the uint8 range cannot be represented; reject before narrowing.
		if def.ID > maxEntityID {
			return nil, fmt.Errorf(ErrFmtIDOutOfRange, domain.ErrPropertyOutOfRange, kindProperty, def.Name, def.ID)
		}
		p := domain.Property{
			ID:         domain.PropertyID(def.ID),
			Name:       def.Name,
			IsAbility:  def.IsAbility,
			IsCosmetic: def.IsCosmetic,
			Multiplier: def.Multiplier,
		}
		if def.Description != nil {
			p.Description = *def.Description
		}
		properties = append(properties, p)
	}

	baseItems := make([]domain.BaseItem, 0, len(d.Drugs))
	for _, key := range sortedKeys(d.Drugs) {
		def := d.Drugs[key]
		if err := checkKey(kindBaseItem, key, def.ID); err != nil {
			return nil, err
		}
		if def.ID > maxEntityID {
			return nil, fmt.Errorf(ErrFmtIDOutOfRange, domain.ErrInvalidCatalog, kindBaseItem, def.Name, def.ID)
		}
		b := domain.BaseItem{
			ID:            domain.BaseItemID(def.ID),
			Name:          def.Name,
			BaseSellValue: def.BaseSellValue,
			UnlockTier:    def.UnlockRank,
		}
		if def.BaseEffectID != nil {
			id, err := propertyRef(kindBaseItem, def.Name, *def.BaseEffectID)
			if err != nil {
				return nil, err
			}
			b.InherentProperty = &id
		}
		baseItems = append(baseItems, b)
	}

	modifiers := make([]domain.Modifier, 0, len(d.Ingredients))
	for _, key := range sortedKeys(d.Ingredients) {
		def := d.Ingredients[key]
		if err := checkKey(kindModifier, key, def.ID); err != nil {
			return nil, err
		}
		if def.ID > maxEntityID {
			return nil, fmt.Errorf(ErrFmtIDOutOfRange, domain.ErrInvalidCatalog, kindModifier, def.Name, def.ID)
		}
		adds, err := propertyRef(kindModifier, def.Name, def.AddsEffect)
		if err != nil {
			return nil, err
		}
		m := domain.Modifier{
			ID:           domain.ModifierID(def.ID),
			Name:         def.Name,
			BuyPrice:     def.BuyPrice,
			UnlockTier:   def.UnlockRank,
			AddsProperty: adds,
			Replacements: make([]domain.Replacement, 0, len(def.ReplacesEffects)),
		}
		for fromKey, toID := range def.ReplacesEffects {
			fromID, err := strconv.Atoi(fromKey)
			if err != nil {
				return nil, fmt.Errorf("%w: modifier %q has replacement key %q", domain.ErrInvalidCatalog, def.Name, fromKey)
			}
			from, err := propertyRef(kindModifier, def.Name, fromID)
			if err != nil {
				return nil, err
			}
			to, err := propertyRef(kindModifier, def.Name, toID)
			if err != nil {
				return nil, err
			}
			m.Replacements = append(m.Replacements, domain.Replacement{From: from, To: to})
		}
		modifiers = append(modifiers, m)
	}

	tiers := make([]domain.Tier, len(d.Ranks))
	for i, r := range d.Ranks {
		tiers[i] = domain.Tier{Name: r.Name, Level: r.Level}
	}

	return New(properties, baseItems, modifiers, tiers)
}

// propertyRef narrows a document property reference, rejecting ids that
// could never be stored in a property set.
func propertyRef(kind, name string, id int) (domain.PropertyID, error) {
	if id < 0 || id > maxEntityID {
		return 0, fmt.Errorf(ErrFmtDanglingReference, domain.ErrDanglingPropertyRef, kind, name, id)
	}
	return domain.PropertyID(id), nil
}

func checkKey(kind, key string, id int) error {
	if key != strconv.Itoa(id) {
		return fmt.Errorf(ErrFmtKeyMismatch, domain.ErrInvalidCatalog, kind, key, id)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
