package api

import (
	"strconv"

	"market-client/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// pathID reads a positive integer path parameter, aborting with 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithValidation(c, err, "Invalid "+name)
		return 0, false
	}
	return id, true
}
