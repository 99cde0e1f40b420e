package bootstrap

import (
	"context"
	"log/slog"

	"market-client/internal/infra/cache"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewStore,
		NewRevalidator,
	),
)

// NewStore creates the session's query cache. It is closed when the session ends, which
// cancels in-flight fetches and drops every entry.
func NewStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) *cache.Store {
	store := cache.NewStore(cache.Options{KeepPreviousData: cfg.Cache.KeepPreviousData}, clk, logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			store.Close()
			return nil
		},
	})

	return store
}

func NewRevalidator(lc fx.Lifecycle, cfg config.Config, store *cache.Store, logger *slog.Logger) *cache.Revalidator {
	r := cache.NewRevalidator(store, cfg.Cache.PollInterval, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return r.Start()
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})

	return r
}
