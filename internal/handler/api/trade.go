package api

import (
	"io"
	"net/http"

	"market-client/internal/domain/trade"
	reqdto "market-client/internal/handler/dto/request"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/handler/httperr"
	"market-client/internal/handler/middleware"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const tradeEventName = "trades"

type TradeHandler struct {
	cmds    commands.TradeCommands
	queries queries.TradeQueries
}

func NewTradeHandler(cmds commands.TradeCommands, q queries.TradeQueries) *TradeHandler {
	return &TradeHandler{
		cmds:    cmds,
		queries: q,
	}
}

// @Summary List transactions
// @Description Transactions of the session user with the actions available to them
// @Tags trades
// @Produce json
// @Param role query string false "buyer or seller"
// @Param type query string false "active, pending, success or all"
// @Success 200 {array} resdto.TradeRowResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/trades [get]
func (h *TradeHandler) List(c *gin.Context) {
	viewer, _ := middleware.GetViewerID(c)

	var q reqdto.ListTradesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}
	role, typ, err := q.Parse()
	if err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}

	rows, err := h.queries.Rows(c.Request.Context(), viewer, role, typ)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromTradeRows(rows)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Watch transactions
// @Description Server-sent events carrying every snapshot of a transaction list
// @Tags trades
// @Produce text/event-stream
// @Param role query string false "buyer or seller"
// @Param type query string false "active, pending, success or all"
// @Success 200 {object} resdto.TradeListEvent
// @Router /api/trades/events [get]
func (h *TradeHandler) Events(c *gin.Context) {
	viewer, _ := middleware.GetViewerID(c)

	var q reqdto.WatchTradesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}
	role, typ, err := q.Parse()
	if err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}

	// Only the newest snapshot matters; a slow client skips intermediate ones.
	updates := make(chan queries.TradeListSnapshot, 1)
	sub := h.queries.Watch(typ, func(s queries.TradeListSnapshot) {
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})
	defer sub.Unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case s := <-updates:
			c.SSEvent(tradeEventName, resdto.FromTradeListSnapshot(s, viewer, role))
			return true
		}
	})
}

// @Summary Start transaction
// @Description Start buying an item. The purchase gate is evaluated before the request is sent.
// @Tags trades
// @Accept json
// @Produce json
// @Param request body reqdto.StartTradeRequest true "Item to buy"
// @Success 201 {object} resdto.TradeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/trades [post]
func (h *TradeHandler) Start(c *gin.Context) {
	var req reqdto.StartTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid request format")
		return
	}

	t, err := h.cmds.Start(c.Request.Context(), req.GetItemID())
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromTrade(t)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Perform transaction action
// @Description Accept, cancel or confirm a transaction
// @Tags trades
// @Produce json
// @Param id path int true "Trade ID"
// @Param action path string true "accept, cancel or confirm"
// @Success 200 {object} resdto.TradeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/trades/{id}/{action} [post]
func (h *TradeHandler) Perform(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	action, err := trade.ParseAction(c.Param("action"))
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}

	t, err := h.cmds.Perform(c.Request.Context(), trade.ID(id), action)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromTrade(t)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
