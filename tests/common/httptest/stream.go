//go:build unit || e2e

package httptest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// StreamRecorder adds CloseNotify, which gin's Stream requires of the writer.
type StreamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func NewStreamRecorder() *StreamRecorder {
	return &StreamRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closed:           make(chan bool, 1),
	}
}

func (r *StreamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

// PerformStream serves a streaming GET and returns once the stream ends or after d.
func PerformStream(t *testing.T, router *gin.Engine, path string, d time.Duration) *StreamRecorder {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	req := httptest.NewRequest("GET", path, nil).WithContext(ctx)
	w := NewStreamRecorder()
	router.ServeHTTP(w, req)
	return w
}
