package profile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

const validProfile = `
name: starter
description: test profile
base_items: [OG Kush]
modifiers: [Cuke, Banana]
required: [Energizing]
blocked: [Toxic]
targets: [cost, profit]
max_modifiers: 3
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(context.Background(), "../../configs/catalog.json")
	require.NoError(t, err)
	return c
}

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(validProfile))
	require.NoError(t, err)

	assert.Equal(t, "starter", p.Name)
	assert.Equal(t, []string{"OG Kush"}, p.BaseItems)
	assert.Equal(t, []string{"cost", "profit"}, p.Targets)
	require.NotNil(t, p.MaxModifiers)
	assert.Equal(t, 3, *p.MaxModifiers)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"unknown key", validProfile + "colour: green\n", "colour"},
		{"missing name", "base_items: [a]\nmodifiers: [b]\n", "Name"},
		{"no base items", "name: x\nmodifiers: [b]\n", "BaseItems"},
		{"empty modifier name", "name: x\nbase_items: [a]\nmodifiers: ['']\n", "Modifiers"},
		{"negative length", "name: x\nbase_items: [a]\nmodifiers: [b]\nmax_modifiers: -1\n", "MaxModifiers"},
		{"slash in name", "name: a/b\nbase_items: [a]\nmodifiers: [b]\n", "Name"},
		{"not yaml", "name: [unterminated", "parse profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestProfile_Filter(t *testing.T) {
	c := testCatalog(t)
	p, err := ParseBytes([]byte(validProfile))
	require.NoError(t, err)

	f, err := p.Filter(search.NewFilterBuilder(c))
	require.NoError(t, err)

	require.Len(t, f.BaseItems, 1)
	assert.Equal(t, "OG Kush", f.BaseItems[0].Name)
	assert.Len(t, f.Modifiers, 2)
	assert.Equal(t, search.Ranking{search.TargetCost, search.TargetProfit}, f.Ranking)
	assert.Equal(t, 3, f.MaxModifiers)
	assert.Equal(t, 1, f.Constraints.Required.Len())
	assert.Equal(t, 1, f.Constraints.Blocked.Len())
}

func TestProfile_FilterWildcardAndTier(t *testing.T) {
	c := testCatalog(t)
	p := &Profile{Name: "all", BaseItems: []string{Wildcard}, Modifiers: []string{Wildcard}, MaxTier: "Street Rat I"}

	f, err := p.Filter(search.NewFilterBuilder(c))
	require.NoError(t, err)

	assert.Len(t, f.BaseItems, 1)
	assert.Len(t, f.Modifiers, 6)
	assert.Equal(t, search.DefaultRanking(), f.Ranking)
	assert.Equal(t, search.DefaultMaxModifiers, f.MaxModifiers)
}

func TestProfile_FilterReportsUnknownNames(t *testing.T) {
	c := testCatalog(t)
	p := &Profile{Name: "bad", BaseItems: []string{"Oregano"}, Modifiers: []string{"Glitter"}, Targets: []string{"luck"}}

	_, err := p.Filter(search.NewFilterBuilder(c))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownBaseItem)
	assert.ErrorIs(t, err, domain.ErrUnknownModifier)
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
	assert.Contains(t, err.Error(), `profile "bad"`)
}

func TestLoadDir_ShippedProfiles(t *testing.T) {
	c := testCatalog(t)

	r, err := LoadDir(context.Background(), "../../configs/profiles")
	require.NoError(t, err)
	require.Positive(t, r.Len())

	for _, p := range r.List() {
		_, err := p.Filter(search.NewFilterBuilder(c))
		assert.NoError(t, err, p.Name)
	}

	p, err := r.Get("STREET-RAT")
	require.NoError(t, err)
	assert.Equal(t, "street-rat", p.Name)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: Beta\nbase_items: [a]\nmodifiers: [b]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("name: alpha\nbase_items: [a]\nmodifiers: [b]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	r, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)

	names := []string{}
	for _, p := range r.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alpha", "Beta"}, names)

	_, err = r.Get("gamma")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestLoadDir_Missing(t *testing.T) {
	r, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestLoadDir_Duplicate(t *testing.T) {
	dir := t.TempDir()
	body := []byte("name: same\nbase_items: [a]\nmodifiers: [b]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), body, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.yaml"), body, 0644))

	_, err := LoadDir(context.Background(), dir)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry(&Profile{Name: "x"}, &Profile{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
