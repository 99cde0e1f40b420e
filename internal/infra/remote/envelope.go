package remote

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"market-client/internal/pkg/errs"
)

const (
	NameMalformedResponse = "malformed_response"
	NameRequestError      = "request_error"
	NameBackendError      = "backend_error"
	NameNetworkError      = "network_error"
	NameTokenExpired      = "token_expired"
	NameTokenRequired     = "token_required"
)

var nameKinds = map[string]errs.Kind{
	"token_required":       errs.KindAuthRequired,
	"token_expired":        errs.KindAuthRequired,
	"invalid_token":        errs.KindAuthRequired,
	"session_expired":      errs.KindAuthRequired,
	"unauthorised":         errs.KindAuthRequired,
	"unauthorized":         errs.KindAuthRequired,
	"permission_required":  errs.KindPermissionDenied,
	"permission_denied":    errs.KindPermissionDenied,
	"forbidden":            errs.KindPermissionDenied,
	"not_found":            errs.KindNotFound,
	"conflict":             errs.KindConflict,
	"state_conflict":       errs.KindConflict,
	"invalid_state":        errs.KindConflict,
	"trade_state_conflict": errs.KindConflict,
	"item_unavailable":     errs.KindConflict,
	"param_error":          errs.KindValidation,
	"validation_error":     errs.KindValidation,
	"invalid_param":        errs.KindValidation,
}

var statusKinds = map[int]errs.Kind{
	http.StatusUnauthorized:        errs.KindAuthRequired,
	http.StatusForbidden:           errs.KindPermissionDenied,
	http.StatusNotFound:            errs.KindNotFound,
	http.StatusConflict:            errs.KindConflict,
	http.StatusBadRequest:          errs.KindValidation,
	http.StatusUnprocessableEntity: errs.KindValidation,
}

// classify turns a response into an error, or nil when it carries a payload.
// The typed envelope {detail:{error:true,name,message}} is a failure on any status.
func classify(status int, body []byte) error {
	detail := gjson.GetBytes(body, "detail")
	if detail.Get("error").Type == gjson.True {
		name := detail.Get("name").String()
		message := detail.Get("message").String()
		return errs.FromResponse(kindFor(name, status), status, name, message)
	}
	if status >= 200 && status < 300 {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errs.FromResponse(errs.KindUnknown, status, NameRequestError, http.StatusText(status))
	}
	message := http.StatusText(status)
	if detail.Type == gjson.String {
		message = detail.String()
	}
	return errs.FromResponse(errs.KindUnknown, status, NameBackendError, message)
}

func kindFor(name string, status int) errs.Kind {
	name = strings.ToLower(name)
	if k, ok := nameKinds[name]; ok {
		return k
	}
	if strings.HasSuffix(name, "_not_found") {
		return errs.KindNotFound
	}
	if k, ok := statusKinds[status]; ok {
		return k
	}
	return errs.KindUnknown
}
