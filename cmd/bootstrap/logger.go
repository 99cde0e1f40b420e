package bootstrap

import (
	"log/slog"

	"market-client/internal/pkg/config"
	"market-client/internal/pkg/logger"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Log).GetSlogLogger()
}
