package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordMutation("delete", "ok")
	a.RecordMutation("delete", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.Mutations.WithLabelValues("delete", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Mutations.WithLabelValues("delete", "ok")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordBridgeCall("get_apps", "ok", time.Millisecond)
		m.IncQueued()
		m.RecordPush(3, 3)
		m.RecordUndo("taken")
		m.RecordDialog("input", "submitted")
		NewTimer(m, "get_apps").Stop("ok")
	})
}

func TestPushAndTimer(t *testing.T) {
	m := NewMetrics()
	m.RecordPush(2, 2)
	m.RecordPush(3, 5)
	NewTimer(m, "get_apps").Stop("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Pushes))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.LogEntries))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.LogBuffer))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BridgeCalls.WithLabelValues("get_apps", "ok")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ignition_http_requests_total{method="GET",path="/health",status="200"} 1`)
}
