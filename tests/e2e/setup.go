//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"market-client/cmd/bootstrap"
	"market-client/cmd/bootstrap/components"
	"market-client/internal/pkg/config"
	"market-client/tests/common/fakebackend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Gateway construction
// ------------------------------------------------------------

// NewGateway boots the full gateway graph for one signed-in user against fb. Zero userID
// means an anonymous session.
func NewGateway(t *testing.T, fb *fakebackend.Backend, userID int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router, app := buildE2EApp(createTestConfig(fb, userID))
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})
	return router
}

func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RemoteModule,
		bootstrap.CacheModule,
		components.PortsModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic("failed to start fx app: " + err.Error())
	}

	return router, app
}

func createTestConfig(fb *fakebackend.Backend, userID int64) config.Config {
	cfg := config.NewTestConfig(fb.URL())
	if userID != 0 {
		cfg.Auth.Token = fakebackend.Token(userID)
	}
	return cfg
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------

// SharedSuite gives every subtest a fresh backend. Gateways are created per test since
// each one holds a user's session cache.
type SharedSuite struct {
	suite.Suite
	Backend *fakebackend.Backend
}

func (s *SharedSuite) SetupTest() {
	s.Backend = fakebackend.New(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Backend = fakebackend.New(s.T())
}

func (s *SharedSuite) Gateway(userID int64) *gin.Engine {
	return NewGateway(s.T(), s.Backend, userID)
}
