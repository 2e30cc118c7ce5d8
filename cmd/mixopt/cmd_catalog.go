package main

import (
	"encoding/json"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/MixOptimizer_Go/internal/report"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show base items, modifiers and properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				return report.WriteCatalog(out, a.catalog)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"fingerprint": a.catalog.Fingerprint(),
				"properties":  a.catalog.Properties(),
				"base_items":  a.catalog.BaseItems(),
				"modifiers":   a.catalog.Modifiers(),
				"tiers":       a.catalog.Tiers(),
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the catalog as JSON")
	return cmd
}

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List saved search profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if _, err := tw.Write([]byte("NAME\tDESCRIPTION\n")); err != nil {
				return err
			}
			for _, p := range a.profiles.List() {
				if _, err := tw.Write([]byte(p.Name + "\t" + p.Description + "\n")); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
}
