package bootstrap

import (
	"market-client/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is everything a session needs: config, logging, the backend client, the query
// cache and the use cases. The gateway adds components.HandlerModule on top.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	RemoteModule,
	CacheModule,
	components.PortsModule,
	components.UseCaseModule,
)
