package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"market-client/cmd/bootstrap"
	"market-client/cmd/bootstrap/components"
	"market-client/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "run the local gateway that views talk to",
	Action: func(cctx *cli.Context) error {
		app := fx.New(
			bootstrap.Module,
			components.HandlerModule,
			fx.Provide(
				func() *gin.Engine {
					return gin.New()
				},
			),
			fx.Invoke(
				startServer,
			),
		)

		if err := app.Start(cctx.Context); err != nil {
			return err
		}

		<-app.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Error("failed to stop the application", "error", err)
		}
		return nil
	},
}

// @title           market-client gateway
// @version         1.0
// @description     Views adapter over the campus marketplace backend.

// @BasePath  /
// @schemes http
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	gin.EnableJsonDecoderDisallowUnknownFields()
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting gateway", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("gateway stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping gateway")
			return srv.Shutdown(ctx)
		},
	})
}
