package middleware

import (
	"market-client/internal/domain/user"
	"market-client/internal/handler/httperr"
	"market-client/internal/pkg/errs"
	"market-client/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// ViewerMiddleware resolves the session user through the query cache. The gateway
// never sees credentials; the remote client carries them.
type ViewerMiddleware struct {
	users queries.UserQueries
}

const ctxViewerIDKey = "viewer_id"

var ErrViewerRequired = errs.NewKind(errs.KindAuthRequired, "token_required", "sign in required")

func NewViewerMiddleware(users queries.UserQueries) *ViewerMiddleware {
	return &ViewerMiddleware{
		users: users,
	}
}

// RequireViewer aborts with AUTH_REQUIRED when the session has no user.
func (m *ViewerMiddleware) RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := m.users.Viewer(c.Request.Context())
		if err != nil {
			httperr.AbortWithError(c, err)
			return
		}
		if viewer <= 0 {
			httperr.AbortWithError(c, ErrViewerRequired)
			return
		}

		c.Set(ctxViewerIDKey, viewer)
		c.Next()
	}
}

// OptionalViewer records the viewer when there is one and never aborts on an
// anonymous session.
func (m *ViewerMiddleware) OptionalViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := m.users.Viewer(c.Request.Context())
		if err != nil {
			httperr.AbortWithError(c, err)
			return
		}
		if viewer > 0 {
			c.Set(ctxViewerIDKey, viewer)
		}
		c.Next()
	}
}

func GetViewerID(c *gin.Context) (user.ID, bool) {
	v, exists := c.Get(ctxViewerIDKey)
	if !exists {
		return 0, false
	}

	id, ok := v.(user.ID)
	return id, ok
}
