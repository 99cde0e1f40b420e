package api

import (
	"net/http"

	"market-client/internal/domain/user"
	reqdto "market-client/internal/handler/dto/request"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/handler/httperr"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cmds    commands.UserCommands
	queries queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{
		cmds:    cmds,
		queries: q,
	}
}

// @Summary Session user
// @Description The signed-in user, or null when nobody is signed in
// @Tags users
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Router /api/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	me, err := h.queries.Me(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	resp, err := resdto.FromMe(me)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update profile description
// @Tags users
// @Accept json
// @Param request body reqdto.UpdateDescriptionRequest true "Description"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/me/description [put]
func (h *UserHandler) UpdateDescription(c *gin.Context) {
	var req reqdto.UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid request format")
		return
	}

	if err := h.cmds.UpdateDescription(c.Request.Context(), req.Description); err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List contact info
// @Tags users
// @Produce json
// @Param userId query int false "User ID; the session user when omitted"
// @Success 200 {array} resdto.ContactInfoResponse
// @Router /api/contacts [get]
func (h *UserHandler) ListContactInfo(c *gin.Context) {
	var q reqdto.ContactInfoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid query parameters")
		return
	}
	var userID *user.ID
	if q.UserID != nil {
		id := user.ID(*q.UserID)
		userID = &id
	}

	infos, err := h.queries.ContactInfo(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromContactInfos(infos))
}

// @Summary Add contact info
// @Tags users
// @Accept json
// @Param request body reqdto.AddContactInfoRequest true "Contact"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Router /api/contacts [post]
func (h *UserHandler) AddContactInfo(c *gin.Context) {
	var req reqdto.AddContactInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithValidation(c, err, "Invalid request format")
		return
	}

	if err := h.cmds.AddContactInfo(c.Request.Context(), req.Type, req.Value); err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove contact info
// @Tags users
// @Param id path int true "Contact ID"
// @Success 204
// @Router /api/contacts/{id} [delete]
func (h *UserHandler) RemoveContactInfo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cmds.RemoveContactInfo(c.Request.Context(), id); err != nil {
		httperr.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
