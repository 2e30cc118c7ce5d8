package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/domain"
)

// starterModifiers are the modifiers unlocked at the first tier.
var starterModifiers = []string{"Cuke", "Gasoline", "Donut", "Banana", "Paracetamol", "Viagor"}

func testCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	return c
}

func propertyID(t testing.TB, c Catalog, name string) domain.PropertyID {
	t.Helper()
	p, ok := c.PropertyByName(name)
	require.True(t, ok, "property %q", name)
	return p.ID
}

func modifierNames(mods []domain.Modifier) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}

func propertyNames(props []domain.Property) []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}
