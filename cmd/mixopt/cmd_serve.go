package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/osse101/MixOptimizer_Go/internal/server"
	"github.com/osse101/MixOptimizer_Go/internal/sse"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Serve the search API until interrupted. The port comes from PORT.

Search activity is streamed as server-sent events from /api/v1/events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := withSignals(cmd.Context())
			defer stop()

			events := sse.NewHub()
			events.Start()
			defer events.Stop()

			pub := sse.NewPublisher(events)
			svc := a.newService(pub, pub.Progress(sse.ProgressInterval))
			return a.serve(ctx, server.NewServer(a.cfg, svc, a.profiles, events), events)
		},
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully. Stopping
// the hub first ends open event streams.
func (a *app) serve(ctx context.Context, srv *server.Server, events *sse.Hub) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info(logMsgShuttingDown)
	events.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error(logMsgForcedShutdown, "error", err)
		return err
	}
	return <-errCh
}
