package main

import (
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"syscall"

	"market-client/cmd/bootstrap"
	"market-client/internal/infra/cache"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

// session is what a one-shot command gets from the fx graph.
type session struct {
	fx.In

	Trades    queries.TradeQueries
	Items     queries.ItemQueries
	Users     queries.UserQueries
	TradeCmds commands.TradeCommands

	// Requested so that polling runs for watch.
	Revalidator *cache.Revalidator
}

// withSession boots the graph, runs fn and tears the graph down again. fn's context is
// cancelled on SIGINT or SIGTERM.
func withSession(cctx *cli.Context, fn func(ctx context.Context, s session) error) error {
	var s session
	app := fx.New(
		bootstrap.Module,
		fx.NopLogger,
		fx.Invoke(func(in session) {
			s = in
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
