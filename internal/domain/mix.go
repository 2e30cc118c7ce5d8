package domain

// BaseItem is the starting point of a mix.
type BaseItem struct {
	ID               BaseItemID  `json:"id"`
	Name             string      `json:"name"`
	InherentProperty *PropertyID `json:"inherent_property,omitempty"`
	BaseSellValue    int64       `json:"base_sell_value"`
	UnlockTier       int         `json:"unlock_tier"`
}

// Replacement turns From into To when a modifier is applied to a mix
// already carrying From.
type Replacement struct {
	From PropertyID `json:"from"`
	To   PropertyID `json:"to"`
}

// Modifier is an ingredient applied to a mix. It always contributes
// AddsProperty (subject to the property cap) and may rewrite existing
// properties through Replacements.
type Modifier struct {
	ID           ModifierID `json:"id"`
	Name         string     `json:"name"`
	BuyPrice     int64      `json:"buy_price"`
	UnlockTier   int        `json:"unlock_tier"`
	AddsProperty PropertyID `json:"adds_property"`

	// Replacements are ordered by ascending From so every mix is reproducible.
	Replacements []Replacement `json:"replacements"`
}
