package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"market-client/internal/handler/api"
	"market-client/internal/handler/middleware"
	"market-client/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Trades  *api.TradeHandler
	Items   *api.ItemHandler
	Users   *api.UserHandler
	Session *api.SessionHandler
}

func NewHandlers(trades *api.TradeHandler, items *api.ItemHandler, users *api.UserHandler, session *api.SessionHandler) Handlers {
	return Handlers{
		Trades:  trades,
		Items:   items,
		Users:   users,
		Session: session,
	}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, viewer *middleware.ViewerMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, viewer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, viewer *middleware.ViewerMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/me", Handler: h.Users.Me},
			{Method: http.MethodPut, Path: "/me/description", Handler: h.Users.UpdateDescription, Mw: []gin.HandlerFunc{viewer.RequireViewer()}},
			{Method: http.MethodPost, Path: "/session/focus", Handler: h.Session.Focus},
		})

		contacts := apiGroup.Group("/contacts")
		contacts.Use(viewer.RequireViewer())
		{
			addRoutes(contacts, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Users.ListContactInfo},
				{Method: http.MethodPost, Path: "", Handler: h.Users.AddContactInfo},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.RemoveContactInfo},
			})
		}

		items := apiGroup.Group("/items")
		items.Use(viewer.OptionalViewer())
		{
			addRoutes(items, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Items.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Items.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Items.Create, Mw: []gin.HandlerFunc{viewer.RequireViewer()}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Items.Update, Mw: []gin.HandlerFunc{viewer.RequireViewer()}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Items.Delete, Mw: []gin.HandlerFunc{viewer.RequireViewer()}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/search/items", Handler: h.Items.Search},
		})

		trades := apiGroup.Group("/trades")
		trades.Use(viewer.RequireViewer())
		{
			addRoutes(trades, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Trades.List},
				{Method: http.MethodGet, Path: "/events", Handler: h.Trades.Events},
				{Method: http.MethodPost, Path: "", Handler: h.Trades.Start},
				{Method: http.MethodPost, Path: "/:id/:action", Handler: h.Trades.Perform},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
