package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

func init() {
	// Never expose debug output because of a misconfiguration (fail-safe)
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func main() {
	app := &cli.App{
		Name:  "market-client",
		Usage: "campus marketplace client: local gateway and command line views",
		Commands: []*cli.Command{
			serveCmd,
			meCmd,
			itemCmd,
			tradesCmd,
			tradeCmd,
			watchCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
