package devhost

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/ws"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type hostHarness struct {
	store *Store
	srv   *httptest.Server
}

func newHostHarness(t *testing.T, push time.Duration) *hostHarness {
	t.Helper()
	store := NewStore()
	server := NewServer(store, NewDispatcher(store, nil, nil, nil), Options{PushInterval: push})
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return &hostHarness{store: store, srv: srv}
}

func (h *hostHarness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/bridge"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (h *hostHarness) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(h.srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readFrame(t *testing.T, conn *websocket.Conn) ws.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	f, err := ws.Decode(data)
	require.NoError(t, err)
	return f
}

// call sends one call and returns its reply, skipping pushes.
func call(t *testing.T, conn *websocket.Conn, id, op string, args ...any) ws.Frame {
	t.Helper()
	f, err := ws.NewCall(id, op, args)
	require.NoError(t, err)
	data, err := ws.Encode(f)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
	for {
		reply := readFrame(t, conn)
		if reply.Type == ws.FrameReply {
			require.Equal(t, id, reply.ID)
			return reply
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHostHarness(t, time.Hour)

	resp, err := http.Get(h.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(h.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBridgeCalls(t *testing.T) {
	h := newHostHarness(t, time.Hour)
	conn := h.dial(t)

	first := readFrame(t, conn)
	require.Equal(t, ws.FramePush, first.Type, "a push greets every connection")
	require.NotNil(t, first.Status)
	assert.False(t, first.Status.IRacingRunning)

	app, err := sonic.MarshalString(types.NewManagedApp("Crew Chief", `C:\CrewChiefV4.exe`))
	require.NoError(t, err)
	reply := call(t, conn, "c1", bridge.OpAddApp, app)
	assert.Empty(t, reply.Error)
	var res types.Result
	require.NoError(t, sonic.Unmarshal(reply.Result, &res))
	assert.True(t, res.OK)

	reply = call(t, conn, "c2", bridge.OpGetApps)
	var apps []types.ManagedApp
	require.NoError(t, sonic.Unmarshal(reply.Result, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "Crew Chief", apps[0].Name)
	assert.Equal(t, 0, apps[0].OrderIndex)

	reply = call(t, conn, "c3", bridge.OpAddProfile, "")
	require.NoError(t, sonic.Unmarshal(reply.Result, &res))
	assert.False(t, res.OK)
	assert.Equal(t, "Name is required.", res.Error)

	reply = call(t, conn, "c4", "no_such_op")
	assert.Equal(t, `unknown operation "no_such_op"`, reply.Error)
	assert.Empty(t, reply.Result)

	reply = call(t, conn, "c5", bridge.OpOpenFileDialog)
	assert.Equal(t, "null", string(reply.Result))
}

func TestPushCarriesStatusAndNewEntries(t *testing.T) {
	h := newHostHarness(t, 20*time.Millisecond)
	conn := h.dial(t)

	resp := h.post(t, "/dev/event", `{"type":"error","app":"SimHub","msg":"crashed"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = h.post(t, "/dev/iracing", `{"running":true,"session_type":"race"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var (
		entries []types.LogEvent
		running bool
	)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && (!running || len(entries) < 2) {
		f := readFrame(t, conn)
		if f.Type != ws.FramePush {
			continue
		}
		entries = append(entries, f.Entries...)
		running = f.Status.IRacingRunning
	}

	require.True(t, running)
	require.Len(t, entries, 2, "each entry is pushed once")
	assert.Equal(t, "crashed", entries[0].Msg)
	assert.Equal(t, int64(0), entries[0].Seq)
	assert.Equal(t, types.LogIRacingStart, entries[1].Type)
}

func TestDevEndpointsValidate(t *testing.T) {
	h := newHostHarness(t, time.Hour)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"bad session type", "/dev/iracing", `{"running":true,"session_type":"qualifying"}`, http.StatusBadRequest},
		{"malformed", "/dev/iracing", `{`, http.StatusBadRequest},
		{"event without message", "/dev/event", `{"type":"error"}`, http.StatusBadRequest},
		{"not a dialog", "/dev/dialog", `{"op":"quit_app","path":"x"}`, http.StatusBadRequest},
		{"dialog", "/dev/dialog", `{"op":"browse_exe","path":"C:\\x.exe"}`, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.post(t, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	got := h.store.DialogPath(bridge.OpBrowseExe)
	require.NotNil(t, got)
	assert.Equal(t, `C:\x.exe`, *got)
}

func TestBridgeCallsAreTraced(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := tracing.New("devhost", zap.New(core))

	store := NewStore()
	server := NewServer(store, NewDispatcher(store, nil, nil, nil), Options{PushInterval: time.Hour, Tracer: tracer})
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	h := &hostHarness{store: store, srv: srv}

	conn := h.dial(t)
	readFrame(t, conn)
	call(t, conn, "call_1", bridge.OpGetApps)
	call(t, conn, "call_2", bridge.OpRemoveApp, "missing")
	call(t, conn, "call_3", "no_such_op")
	tracer.Close()

	byCall := map[string]observer.LoggedEntry{}
	for _, e := range logs.FilterMessageSnippet("span").All() {
		if id, ok := e.ContextMap()["call_id"].(string); ok {
			byCall[id] = e
		}
	}
	require.Len(t, byCall, 3)

	assert.Equal(t, bridge.OpGetApps, byCall["call_1"].ContextMap()["operation"])
	assert.Equal(t, "ok", byCall["call_1"].ContextMap()["outcome"])
	assert.NotEmpty(t, byCall["call_1"].ContextMap()["parent_id"], "calls nest under the connection span")
	assert.Equal(t, "rejected", byCall["call_2"].ContextMap()["outcome"])
	assert.Equal(t, "error", byCall["call_3"].ContextMap()["outcome"])
	assert.Equal(t, zapcore.WarnLevel, byCall["call_3"].Level)
}
