// Package profile reads named search configurations from YAML files.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Profile is a saved search. Names are resolved against the catalog only
// when the profile is turned into a filter.
type Profile struct {
	Name         string   `yaml:"name" json:"name" validate:"required,max=64,excludesall=/\\"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	BaseItems    []string `yaml:"base_items" json:"base_items" validate:"min=1,dive,required"`
	Modifiers    []string `yaml:"modifiers" json:"modifiers" validate:"min=1,dive,required"`
	Required     []string `yaml:"required,omitempty" json:"required,omitempty" validate:"dive,required"`
	Blocked      []string `yaml:"blocked,omitempty" json:"blocked,omitempty" validate:"dive,required"`
	Targets      []string `yaml:"targets,omitempty" json:"targets,omitempty" validate:"dive,required"`
	MaxModifiers *int     `yaml:"max_modifiers,omitempty" json:"max_modifiers,omitempty" validate:"omitempty,gte=0,lte=16"`
	MaxTier      string   `yaml:"max_tier,omitempty" json:"max_tier,omitempty"`
}

// Parse decodes and validates one YAML profile. Unknown keys are rejected.
func Parse(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf(ErrMsgParseProfileFailed, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseBytes decodes and validates one YAML profile held in memory.
func ParseBytes(data []byte) (*Profile, error) {
	return Parse(bytes.NewReader(data))
}

// LoadFile reads the profile at path.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadProfileFailed, path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the profile's structural constraints.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
		}
		return fmt.Errorf("%w: "+ErrMsgInvalidProfile, domain.ErrInvalidInput, p.Name, strings.Join(msgs, ", "))
	}
	return nil
}

// Apply records the profile's settings on b. Resolution errors surface from
// b.Build.
func (p *Profile) Apply(b *search.FilterBuilder) *search.FilterBuilder {
	if slices.Contains(p.BaseItems, Wildcard) {
		b.AddAllBaseItems()
	} else {
		b.AddBaseItems(p.BaseItems...)
	}
	if slices.Contains(p.Modifiers, Wildcard) {
		b.AddAllModifiers()
	} else {
		b.AddModifiers(p.Modifiers...)
	}
	b.Require(p.Required...).Block(p.Blocked...)
	if len(p.Targets) > 0 {
		b.OptimizeFor(p.Targets...)
	}
	if p.MaxModifiers != nil {
		b.MaxModifiers(*p.MaxModifiers)
	}
	if p.MaxTier != "" {
		b.UpToTier(p.MaxTier)
	}
	return b
}

// Filter resolves the profile against the builder's catalog. Every
// unresolved name is reported.
func (p *Profile) Filter(b *search.FilterBuilder) (*search.Filter, error) {
	f, err := p.Apply(b).Build()
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return f, nil
}
