package profile

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
)

// Registry holds profiles by case-insensitive name. It is read-only after
// loading and safe for concurrent use.
type Registry struct {
	byName map[string]*Profile
}

// NewRegistry indexes the given profiles, rejecting duplicate names.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := r.add(p, "registry"); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadDir reads every .yaml and .yml file in dir. A missing directory
// yields an empty registry.
func LoadDir(ctx context.Context, dir string) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Profile)}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadDirFailed, err)
	}

	for _, e := range entries {
		if e.IsDir() || !slices.Contains(fileExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := r.add(p, path); err != nil {
			return nil, err
		}
	}

	logger.FromContext(ctx).Info(LogMsgProfilesLoaded, "dir", dir, "count", len(r.byName))
	return r, nil
}

func (r *Registry) add(p *Profile, source string) error {
	key := catalog.FoldName(p.Name)
	if _, dup := r.byName[key]; dup {
		return fmt.Errorf("%w: "+ErrMsgDuplicateProfile, domain.ErrInvalidInput, p.Name, source)
	}
	r.byName[key] = p
	return nil
}

// Get returns the named profile or domain.ErrProfileNotFound.
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.byName[catalog.FoldName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrProfileNotFound, name)
	}
	return p, nil
}

// List returns every profile ordered by name.
func (r *Registry) List() []*Profile {
	out := make([]*Profile, 0, len(r.byName))
	for _, p := range r.byName {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Profile) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) })
	return out
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	return len(r.byName)
}
