package bootstrap

import (
	"log/slog"

	"market-client/internal/infra/remote"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/config"

	"go.uber.org/fx"
)

var RemoteModule = fx.Module("remote",
	fx.Provide(
		clock.NewRealClock,
		NewRemoteClient,
	),
)

func NewRemoteClient(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*remote.Client, error) {
	client, err := remote.NewClient(cfg, clk, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("backend client ready", slog.String("base_url", cfg.Remote.BaseURL))
	return client, nil
}
