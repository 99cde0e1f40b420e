package components

import (
	"market-client/internal/handler"
	"market-client/internal/handler/api"
	"market-client/internal/handler/middleware"
	"market-client/internal/infra/cache"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTradeHandler,
		api.NewItemHandler,
		api.NewUserHandler,
		api.NewSessionHandler,
		fx.Annotate(
			func(r *cache.Revalidator) *cache.Revalidator { return r },
			fx.As(new(api.Focuser)),
		),
		middleware.NewViewerMiddleware,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
