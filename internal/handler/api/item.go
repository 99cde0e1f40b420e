package api

import (
	"net/http"

	"market-client/internal/domain/item"
	reqdto "market-client/internal/handler/dto/request"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/handler/httperr"
	"market-client/internal/handler/middleware"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	cmds    commands.ItemCommands
	queries queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		cmds:    cmds,
		queries: q,
	}
}

// @Summary List user items
// @Description Items published by a user; the session user when userId is omitted
// @Tags items
// @Produce json
// @Param userId query int false "Seller ID"
// @Param ignoreSold query bool false "Skip sold items"
// @Param oldest query bool false "Oldest first"
// @Param size query int false "Page size"
// @Param index query int false "Page index"
// @Success 200 {object} resdto.ItemPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var q reqdto.ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}

	page, err := h.queries.UserItems(c.Request.Context(), q.ToDomain())
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromItemPage(page)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get item
// @Description Item detail with the purchase action as the session user sees it
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.GetViewerID(c)

	view, err := h.queries.DetailView(c.Request.Context(), item.ID(id), viewer)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromItemDetailView(view)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Publish item
// @Tags items
// @Accept json
// @Produce json
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid request format")
		return
	}
	draft, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithValidation(c, err, err.Error())
		return
	}

	it, err := h.cmds.Add(c.Request.Context(), draft)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromItem(it)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Update item
// @Description Partial update; omitted fields keep their value
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Changes"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid request format")
		return
	}
	p, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithValidation(c, err, err.Error())
		return
	}

	it, err := h.cmds.Update(c.Request.Context(), item.ID(id), p)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromItem(it)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Remove item
// @Tags items
// @Param id path int true "Item ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cmds.Remove(c.Request.Context(), item.ID(id)); err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Search items
// @Tags items
// @Produce json
// @Param mode query string false "name or tags"
// @Param keyword query string true "Keyword"
// @Param size query int false "Page size"
// @Param index query int false "Page index"
// @Success 200 {object} resdto.ItemPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/search/items [get]
func (h *ItemHandler) Search(c *gin.Context) {
	var q reqdto.SearchItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}

	page, err := h.queries.Search(c.Request.Context(), q.ToDomain())
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromItemPage(page)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
