package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/report"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

type searchFlags struct {
	profile   string
	baseItems []string
	modifiers []string
	required  []string
	blocked   []string
	targets   []string
	max       int
	tier      string
	json      bool
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for the best mix",
		Long: `Search every ordered modifier sequence for the best mix.

Without --profile, base items and modifiers default to the whole catalog.
With --profile, flags extend (required, blocked) or replace (everything
else) the profile's settings. Use "*" to select a whole catalog list.`,
		Example: `  mixopt search -b "OG Kush" -m Banana -m Cuke -r Sneaky -n 3
  mixopt search -p cheap-sneaky -t profit --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.profile, "profile", "p", "", "start from a saved search profile")
	fl.StringSliceVarP(&f.baseItems, "base", "b", nil, "eligible base items")
	fl.StringSliceVarP(&f.modifiers, "modifier", "m", nil, "eligible modifiers")
	fl.StringSliceVarP(&f.required, "require", "r", nil, "properties the mix must have")
	fl.StringSliceVarP(&f.blocked, "block", "x", nil, "properties the mix must not have")
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "ranking targets in priority order: "+targetList())
	fl.IntVarP(&f.max, "max", "n", search.DefaultMaxModifiers, "maximum modifiers in a sequence")
	fl.StringVar(&f.tier, "tier", "", "only use items unlocked up to this tier")
	fl.BoolVar(&f.json, "json", false, "write the result as JSON")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, f searchFlags) error {
	p, err := a.searchProfile(cmd, f)
	if err != nil {
		return err
	}

	filter, err := p.Filter(a.service.NewFilterBuilder())
	if err != nil {
		return err
	}

	ctx, stop := withSignals(newRequestContext(cmd))
	defer stop()

	log := logger.FromContext(ctx)
	log.Info(logMsgSearchStarted,
		"profile", p.Name,
		"base_items", len(filter.BaseItems),
		"modifiers", len(filter.Modifiers),
		"max_modifiers", filter.MaxModifiers,
		"workers", a.cfg.SearchWorkers)

	res, err := a.service.Search(ctx, filter)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn(logMsgSearchInterrupted, "error", err)
		}
		return err
	}
	if res == nil {
		log.Info(logMsgSearchNoResult)
	} else {
		log.Info(logMsgSearchFinished,
			"base_item", res.BaseItem.Name,
			"profit", res.Profit,
			"elapsed", res.Stats.Elapsed)
	}

	return writeResult(cmd, res, f.json)
}

// searchProfile merges the named profile, if any, with the command line flags
func (a *app) searchProfile(cmd *cobra.Command, f searchFlags) (*profile.Profile, error) {
	p := &profile.Profile{
		Name:      commandLineProfile,
		BaseItems: []string{profile.Wildcard},
		Modifiers: []string{profile.Wildcard},
	}
	if f.profile != "" {
		saved, err := a.profiles.Get(f.profile)
		if err != nil {
			return nil, err
		}
		merged := *saved
		p = &merged
	}

	changed := cmd.Flags().Changed
	if changed("base") {
		p.BaseItems = f.baseItems
	}
	if changed("modifier") {
		p.Modifiers = f.modifiers
	}
	p.Required = append(append([]string(nil), p.Required...), f.required...)
	p.Blocked = append(append([]string(nil), p.Blocked...), f.blocked...)
	if changed("target") {
		p.Targets = f.targets
	}
	if changed("max") {
		p.MaxModifiers = &f.max
	}
	if changed("tier") {
		p.MaxTier = f.tier
	}
	return p, nil
}

// targetList names every ranking target ParseTarget accepts
func targetList() string {
	targets := search.AllTargets()
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func writeResult(cmd *cobra.Command, res *search.Result, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return report.WriteJSON(out, res)
	}
	return report.WriteText(out, res)
}

// withSignals cancels ctx on interrupt or termination
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
