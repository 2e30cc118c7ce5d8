package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
)

func TestFilterBuilder_Defaults(t *testing.T) {
	c := testCatalog(t)

	f, err := NewFilterBuilder(c).Build()
	require.NoError(t, err)

	assert.Equal(t, DefaultRanking(), f.Ranking)
	assert.Equal(t, DefaultMaxModifiers, f.MaxModifiers)
	assert.Empty(t, f.BaseItems)
	assert.Empty(t, f.Modifiers)
	assert.True(t, f.Constraints.Required.IsEmpty())
	assert.True(t, f.Constraints.Blocked.IsEmpty())
}

func TestFilterBuilder_Resolves(t *testing.T) {
	c := testCatalog(t)

	f, err := NewFilterBuilder(c).
		AddBaseItems("Cocaine", "OG Kush", "og kush").
		AddModifiers("Viagor", "Cuke").
		Require("Sneaky").
		Block("Toxic", "Lethal").
		OptimizeFor("cost", "profit").
		MaxModifiers(4).
		Build()
	require.NoError(t, err)

	require.Len(t, f.BaseItems, 2)
	assert.Equal(t, "OG Kush", f.BaseItems[0].Name, "ordered by id")
	assert.Equal(t, "Cocaine", f.BaseItems[1].Name)
	assert.Equal(t, []string{"Cuke", "Viagor"}, modifierNames(f.Modifiers))
	assert.True(t, f.Constraints.Required.Has(propertyID(t, c, "Sneaky")))
	assert.Equal(t, 2, f.Constraints.Blocked.Len())
	assert.Equal(t, Ranking{TargetCost, TargetProfit}, f.Ranking)
	assert.Equal(t, 4, f.MaxModifiers)
}

func TestFilterBuilder_AddAll(t *testing.T) {
	c := testCatalog(t)

	f, err := NewFilterBuilder(c).
		AddBaseItems("Cocaine").
		AddAllBaseItems().
		AddAllModifiers().
		AddModifiers("Cuke").
		Build()
	require.NoError(t, err)

	assert.Len(t, f.BaseItems, len(c.BaseItems()))
	assert.Len(t, f.Modifiers, len(c.Modifiers()))
}

func TestFilterBuilder_UpToTier(t *testing.T) {
	c := testCatalog(t)

	f, err := NewFilterBuilder(c).
		AddAllBaseItems().
		AddAllModifiers().
		UpToTier("Street Rat I").
		Build()
	require.NoError(t, err)

	require.Len(t, f.BaseItems, 1)
	assert.Equal(t, "OG Kush", f.BaseItems[0].Name)
	assert.Equal(t, starterModifiers, modifierNames(f.Modifiers))

	f, err = NewFilterBuilder(c).AddAllBaseItems().UpToTier("Kingpin").Build()
	require.NoError(t, err)
	assert.Len(t, f.BaseItems, len(c.BaseItems()))
}

func TestFilterBuilder_CollectsEveryError(t *testing.T) {
	c := testCatalog(t)

	_, err := NewFilterBuilder(c).
		AddBaseItems("Oregano").
		AddModifiers("Cuke", "Glitter").
		Require("Sparkly").
		Block("Calming").
		OptimizeFor("profit", "vibes").
		UpToTier("Emperor").
		MaxModifiers(-1).
		Build()
	require.Error(t, err)

	for _, want := range []error{
		domain.ErrUnknownBaseItem,
		domain.ErrUnknownModifier,
		domain.ErrUnknownProperty,
		domain.ErrUnknownTarget,
		domain.ErrUnknownTier,
		domain.ErrInvalidMaxModifiers,
	} {
		assert.ErrorIs(t, err, want)
	}
	for _, name := range []string{"Oregano", "Glitter", "Sparkly", "vibes", "Emperor"} {
		assert.Contains(t, err.Error(), name)
	}
	assert.False(t, errors.Is(err, domain.ErrNoOptimizeTargets))
}

func TestFilterBuilder_EmptyTargets(t *testing.T) {
	c := testCatalog(t)

	_, err := NewFilterBuilder(c).OptimizeFor().Build()
	assert.ErrorIs(t, err, domain.ErrNoOptimizeTargets)
}

func TestFilterBuilder_WithRanking(t *testing.T) {
	c := testCatalog(t)
	r := Ranking{TargetMultiplier}

	f, err := NewFilterBuilder(c).WithRanking(r).Build()
	require.NoError(t, err)
	r[0] = TargetCost

	assert.Equal(t, Ranking{TargetMultiplier}, f.Ranking)
}
