package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Focuser revalidates every key that has a live subscriber.
type Focuser interface {
	Focus() int
}

type SessionHandler struct {
	focuser Focuser
}

func NewSessionHandler(focuser Focuser) *SessionHandler {
	return &SessionHandler{
		focuser: focuser,
	}
}

type FocusResponse struct {
	Revalidated int `json:"revalidated"`
}

// @Summary Window focus
// @Description Revalidate every watched key, as a view regaining focus would
// @Tags session
// @Produce json
// @Success 200 {object} FocusResponse
// @Router /api/session/focus [post]
func (h *SessionHandler) Focus(c *gin.Context) {
	c.JSON(http.StatusOK, FocusResponse{Revalidated: h.focuser.Focus()})
}
