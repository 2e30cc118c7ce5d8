package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/MixOptimizer_Go/internal/catalog"
	"github.com/osse101/MixOptimizer_Go/internal/config"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// app holds everything a subcommand needs once configuration is loaded
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	profiles *profile.Registry
	service  search.Service

	// global flags
	catalogPath string
	profileDir  string
	workers     int
	logLevel    string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mixopt",
		Short: "Find the most profitable ingredient sequence for a mix",
		Long: `mixopt searches every ordered sequence of modifiers applied to a base item
and reports the best mix under the chosen ranking.

Settings come from the environment (and .env); flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.catalogPath, "catalog", "", "catalog JSON file (overrides "+config.EnvCatalogPath+")")
	flags.StringVar(&a.profileDir, "profiles", "", "search profile directory (overrides "+config.EnvProfileDir+")")
	flags.IntVarP(&a.workers, "workers", "w", 0, "search workers, 0 for one per CPU (overrides "+config.EnvSearchWorkers+")")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides "+config.EnvLogLevel+")")

	root.AddCommand(
		newSearchCmd(a),
		newMixCmd(a),
		newCatalogCmd(a),
		newProfilesCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup applies flag overrides to the environment, then loads configuration,
// logging, the catalog, profiles and the search service
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]string{}
	if cmd.Flags().Changed("catalog") {
		overrides[config.EnvCatalogPath] = a.catalogPath
	}
	if cmd.Flags().Changed("profiles") {
		overrides[config.EnvProfileDir] = a.profileDir
	}
	if cmd.Flags().Changed("workers") {
		overrides[config.EnvSearchWorkers] = strconv.Itoa(a.workers)
	}
	if cmd.Flags().Changed("log-level") {
		overrides[config.EnvLogLevel] = a.logLevel
	}
	for k, v := range overrides {
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	initLogger(cfg, cmd.ErrOrStderr())
	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return err
	}
	a.catalog = c

	a.profiles, err = profile.LoadDir(ctx, cfg.ProfileDir)
	if err != nil {
		return err
	}

	a.service = a.newService(nil)
	return nil
}

// newService builds the search service over the loaded catalog. Progress
// is logged at the configured interval and also sent to any extra
// reporters.
func (a *app) newService(observer search.Observer, extra ...search.ProgressFunc) search.Service {
	reporters := slices.DeleteFunc(
		append([]search.ProgressFunc{newProgressReporter(a.cfg.ProgressInterval)}, extra...),
		func(fn search.ProgressFunc) bool { return fn == nil },
	)

	opts := []search.Option{search.WithWorkers(a.cfg.SearchWorkers)}
	switch len(reporters) {
	case 0:
	case 1:
		opts = append(opts, search.WithProgress(reporters[0]))
	default:
		opts = append(opts, search.WithProgress(func(done, total uint64) {
			for _, fn := range reporters {
				fn(done, total)
			}
		}))
	}

	return search.NewService(a.catalog, search.NewEngine(a.catalog, opts...), search.ServiceConfig{
		CacheSize: a.cfg.SearchCacheSize,
		CacheTTL:  a.cfg.SearchCacheTTL,
		Observer:  observer,
	})
}

// newRequestContext scopes one command invocation under its own request id
func newRequestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithRequestID(ctx, logger.GenerateRequestID())
}
