package domain

// PropertyID identifies a property in the catalog. Valid ids are below
// property.Capacity.
type PropertyID uint8

// BaseItemID identifies a base item in the catalog.
type BaseItemID uint8

// ModifierID identifies a modifier in the catalog.
type ModifierID uint8

// MultiplierScale is the fixed-point scale used for property multipliers.
// A multiplier of 0.54 is held as 5400.
const MultiplierScale = 10000

// Property is a binary trait a mix may carry.
type Property struct {
	ID          PropertyID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsAbility   bool       `json:"is_ability"`
	IsCosmetic  bool       `json:"is_cosmetic"`
	Multiplier  float64    `json:"multiplier"`

	// MultiplierBP is Multiplier in basis points, precomputed at load time so
	// scoring and ranking never compare floats.
	MultiplierBP int64 `json:"-"`
}

// Tier is a progression rank used to decide what is unlocked.
type Tier struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}
