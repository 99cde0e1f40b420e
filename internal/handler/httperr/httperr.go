package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market-client/internal/pkg/errs"
)

const (
	NameInvalidParam = "invalid_param"
	NameInternal     = "internal_error"
)

// Response mirrors the backend's error envelope so views handle both the same way.
type Response struct {
	Status int    `json:"-"`
	Detail Detail `json:"detail"`
}

type Detail struct {
	Error   bool   `json:"error"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

var statusByKind = map[errs.Kind]int{
	errs.KindAuthRequired:      http.StatusUnauthorized,
	errs.KindPermissionDenied:  http.StatusForbidden,
	errs.KindIllegalTransition: http.StatusUnprocessableEntity,
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindConflict:          http.StatusConflict,
	errs.KindValidation:        http.StatusBadRequest,
	errs.KindNetwork:           http.StatusBadGateway,
	errs.KindUnknown:           http.StatusInternalServerError,
}

func StatusOf(kind errs.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New renders err. Unknown failures never leak their message.
func New(err error) Response {
	kind := errs.KindOf(err)
	resp := Response{Status: StatusOf(kind)}
	resp.Detail.Error = true
	resp.Detail.Kind = kind.String()
	resp.Detail.Name = errs.NameOf(err)
	if resp.Detail.Name == "" {
		resp.Detail.Name = NameInternal
	}

	if e, ok := errs.As(err); ok && kind != errs.KindUnknown {
		resp.Detail.Message = e.Message
	} else {
		resp.Detail.Message = "Internal server error"
	}
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	abort(c, err, New(err))
}

// AbortWithValidation reports a request that failed binding.
func AbortWithValidation(c *gin.Context, err error, msg string) {
	if err == nil {
		panic("AbortWithValidation: err cannot be nil")
	}
	resp := Response{Status: http.StatusBadRequest}
	resp.Detail.Error = true
	resp.Detail.Kind = errs.KindValidation.String()
	resp.Detail.Name = NameInvalidParam
	resp.Detail.Message = msg
	abort(c, err, resp)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
