package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

func newMixCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "mix <base item> [modifier...]",
		Short:   "Price one mix without searching",
		Example: `  mixopt mix "OG Kush" Paracetamol Viagor`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, mods, err := resolveNames(a.service.Catalog(), args[0], args[1:])
			if err != nil {
				return err
			}
			res := a.service.Evaluate(newRequestContext(cmd), base, mods)
			return writeResult(cmd, res, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the result as JSON")
	return cmd
}

// resolveNames looks up a base item and modifiers by name, joining every
// lookup failure into one error
func resolveNames(c search.Catalog, baseName string, modNames []string) (domain.BaseItem, []domain.Modifier, error) {
	var errs []error

	base, ok := c.BaseItemByName(baseName)
	if !ok {
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnknownBaseItem, baseName))
	}

	mods := make([]domain.Modifier, 0, len(modNames))
	for _, name := range modNames {
		m, ok := c.ModifierByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnknownModifier, name))
			continue
		}
		mods = append(mods, m)
	}

	if err := errors.Join(errs...); err != nil {
		return domain.BaseItem{}, nil, err
	}
	return base, mods, nil
}
