package components

import (
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTradeUseCase,
		commands.NewItemUseCase,
		commands.NewUserUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTradeQueries,
		queries.NewItemQueries,
		queries.NewUserQueries,
	),
)
