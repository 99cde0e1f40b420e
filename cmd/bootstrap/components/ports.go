package components

import (
	"market-client/internal/infra/remote"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"go.uber.org/fx"
)

// PortsModule binds the backend client to every read and write port of the use cases.
var PortsModule = fx.Module("ports",
	fx.Provide(
		fx.Annotate(
			asClient,
			fx.As(new(queries.TradeReader)),
			fx.As(new(queries.ItemReader)),
			fx.As(new(queries.UserReader)),
		),
		fx.Annotate(
			asClient,
			fx.As(new(commands.TradeWriter)),
			fx.As(new(commands.ItemWriter)),
			fx.As(new(commands.UserWriter)),
		),
	),
)

func asClient(c *remote.Client) *remote.Client {
	return c
}
