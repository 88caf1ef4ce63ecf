package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Tracer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("devhost", zap.New(core))
	t.Cleanup(tracer.Close)
	return tracer, logs
}

func TestStartSpanNestsUnderContext(t *testing.T) {
	tracer, _ := newObserved(t)

	root, ctx := tracer.StartSpan(context.Background(), "bridge")
	assert.True(t, id.Valid(string(root.TraceID), id.TracePrefix))
	assert.True(t, id.Valid(string(root.SpanID), id.SpanPrefix))
	assert.Empty(t, root.ParentID)

	child, childCtx := tracer.StartSpan(ctx, "get_apps")
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
	assert.Equal(t, root.TraceID, GetTraceID(childCtx))
}

func TestSubmittedSpansAreLogged(t *testing.T) {
	tracer, logs := newObserved(t)

	ok, _ := tracer.StartSpan(context.Background(), "get_apps")
	ok.SetTag("outcome", "ok")
	ok.Finish()
	tracer.Submit(ok)

	bad, _ := tracer.StartSpan(context.Background(), "remove_app")
	bad.SetError(errors.New("missing argument 0"))
	bad.Finish()
	tracer.Submit(bad)

	tracer.Close()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "get_apps", entries[0].ContextMap()["operation"])
	assert.Equal(t, "ok", entries[0].ContextMap()["outcome"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "missing argument 0", entries[1].ContextMap()["error"])
}

func TestSubmitAfterCloseIsDropped(t *testing.T) {
	tracer, logs := newObserved(t)
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	span.Finish()
	tracer.Submit(span)
	assert.Zero(t, logs.Len())
}

func TestHTTPMiddlewarePropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObserved(t)

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/health", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderTraceID, "trc_upstream")
	req.Header.Set(HeaderSpanID, "spn_upstream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, TraceID("trc_upstream"), seen)
	assert.Equal(t, "trc_upstream", rec.Header().Get(HeaderTraceID))
	assert.NotEqual(t, "spn_upstream", rec.Header().Get(HeaderSpanID))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.NotEmpty(t, rec.Header().Get(HeaderTraceID))

	tracer.Close()
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "GET /health", entries[0].ContextMap()["operation"])
	assert.Equal(t, "spn_upstream", entries[0].ContextMap()["parent_id"])
	assert.Equal(t, "200", entries[0].ContextMap()["http.status"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
