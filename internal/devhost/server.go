package devhost

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	PushInterval time.Duration
	RateLimit    *RateLimitConfig
	Development  bool
	Clock        clockwork.Clock
	Logger       *zap.Logger
	Metrics      *monitoring.Metrics
	// Tracer, when set, records a span per HTTP request and bridge call.
	Tracer *tracing.Tracer
}

// Server serves the bridge protocol and the development endpoints.
type Server struct {
	store        *Store
	dispatcher   *Dispatcher
	router       *gin.Engine
	upgrader     websocket.Upgrader
	pushInterval time.Duration
	clock        clockwork.Clock
	logger       *zap.Logger
	metrics      *monitoring.Metrics
	tracer       *tracing.Tracer

	mu    sync.Mutex
	peers map[*peer]struct{}
}

// NewServer wires the routes around store and dispatcher.
func NewServer(store *Store, dispatcher *Dispatcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.PushInterval <= 0 {
		opts.PushInterval = 800 * time.Millisecond
	}

	s := &Server{
		store:        store,
		dispatcher:   dispatcher,
		pushInterval: opts.PushInterval,
		clock:        opts.Clock,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		tracer:       opts.Tracer,
		peers:        make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local UI only
			},
		},
	}

	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(s.metrics))
	if s.tracer != nil {
		router.Use(tracing.HTTPMiddleware(s.tracer))
	}
	router.Use(CORS(DefaultCORSConfig()))
	if opts.RateLimit != nil {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", opts.RateLimit.RequestsPerSecond),
			zap.Int("burst", opts.RateLimit.Burst),
		)
		router.Use(RateLimit(*opts.RateLimit))
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	router.GET("/bridge", s.handleBridge)

	dev := router.Group("/dev")
	dev.POST("/iracing", s.setIRacing)
	dev.POST("/event", s.addEvent)
	dev.POST("/dialog", s.setDialog)

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting development host", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down development host")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closePeers()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ops":    s.dispatcher.Ops(),
	})
}

type iracingRequest struct {
	Running     bool              `json:"running"`
	SessionType types.SessionType `json:"session_type"`
}

func (s *Server) setIRacing(c *gin.Context) {
	var req iracingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.SessionType {
	case "", types.SessionRace, types.SessionService, types.SessionOther:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown session type"})
		return
	}
	s.store.SetIRacing(req.Running, req.SessionType)
	c.JSON(http.StatusOK, s.store.Status())
}

type eventRequest struct {
	Type types.LogEventType `json:"type" binding:"required"`
	App  string             `json:"app"`
	Msg  string             `json:"msg" binding:"required"`
}

func (s *Server) addEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.store.AddEvent(req.Type, req.App, req.Msg)
	c.Status(http.StatusNoContent)
}

type dialogRequest struct {
	Op   string `json:"op" binding:"required"`
	Path string `json:"path"`
}

var dialogOps = map[string]bool{
	bridge.OpBrowseExe:        true,
	bridge.OpBrowseDirectory:  true,
	bridge.OpBrowseIRacingExe: true,
	bridge.OpOpenFileDialog:   true,
	bridge.OpSaveFileDialog:   true,
}

func (s *Server) setDialog(c *gin.Context) {
	var req dialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dialogOps[req.Op] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a dialog operation"})
		return
	}
	s.store.SetDialogPath(req.Op, req.Path)
	c.Status(http.StatusNoContent)
}

// handleBridge upgrades to a WebSocket and serves calls until the peer leaves.
func (s *Server) handleBridge(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	p := &peer{conn: conn, srv: s, traceCtx: c.Request.Context()}
	s.mu.Lock()
	s.peers[p] = struct{}{}
	s.mu.Unlock()
	s.metrics.IncWSConnections()
	s.logger.Info("UI connected", zap.String("remote", conn.RemoteAddr().String()))

	p.serve()

	s.mu.Lock()
	delete(s.peers, p)
	s.mu.Unlock()
	s.metrics.DecWSConnections()
	s.logger.Info("UI disconnected", zap.String("remote", conn.RemoteAddr().String()))
}

func (s *Server) closePeers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.peers {
		p.conn.Close()
	}
}

// peer is one connected UI.
type peer struct {
	conn     *websocket.Conn
	srv      *Server
	traceCtx context.Context

	writeMu sync.Mutex
	nextSeq int64
}

func (p *peer) serve() {
	defer p.conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.push(); err != nil {
		return
	}
	go p.pushLoop(ctx)

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		frame, err := ws.Decode(data)
		if err != nil {
			p.srv.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		p.srv.metrics.RecordWSMessage("in", string(frame.Type))
		if frame.Type != ws.FrameCall {
			p.srv.logger.Warn("unexpected frame from UI", zap.String("type", string(frame.Type)))
			continue
		}
		if err := p.reply(frame); err != nil {
			p.srv.logger.Debug("reply write failed", zap.Error(err))
			return
		}
	}
}

// reply executes one call and writes its reply. Calls on a connection are
// executed in arrival order.
func (p *peer) reply(call ws.Frame) error {
	var (
		result any
		errMsg string
	)
	finish := p.startSpan(call)

	args, err := call.CallArgs()
	if err == nil {
		result, err = p.srv.dispatcher.Dispatch(call.Op, args)
	}

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
		errMsg = err.Error()
		result = nil
		p.srv.logger.Warn("call failed", zap.String("op", call.Op), zap.Error(err))
	default:
		if res, ok := result.(types.Result); ok && !res.OK {
			outcome = "rejected"
		}
	}
	p.srv.metrics.RecordHostCall(call.Op, outcome)
	finish(outcome, err)

	frame, err := ws.NewReply(call.ID, result, errMsg)
	if err != nil {
		frame, _ = ws.NewReply(call.ID, nil, err.Error())
	}
	return p.write(frame)
}

// startSpan opens a span for call under the connection's trace.
func (p *peer) startSpan(call ws.Frame) func(outcome string, err error) {
	tracer := p.srv.tracer
	if tracer == nil {
		return func(string, error) {}
	}
	span, _ := tracer.StartSpan(p.traceCtx, call.Op)
	span.SetTag("call_id", call.ID)
	return func(outcome string, err error) {
		span.SetTag("outcome", outcome)
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
		tracer.Submit(span)
	}
}

func (p *peer) pushLoop(ctx context.Context) {
	ticker := p.srv.clock.NewTicker(p.srv.pushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := p.push(); err != nil {
				p.conn.Close()
				return
			}
		}
	}
}

// push sends the status with every log entry the peer has not seen.
func (p *peer) push() error {
	status := p.srv.store.Status()

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	entries := p.srv.store.LogSince(p.nextSeq)
	if n := len(entries); n > 0 {
		p.nextSeq = entries[n-1].Seq + 1
	}
	return p.writeLocked(ws.NewPush(status, entries))
}

func (p *peer) write(f ws.Frame) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.writeLocked(f)
}

func (p *peer) writeLocked(f ws.Frame) error {
	data, err := ws.Encode(f)
	if err != nil {
		return err
	}
	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	p.srv.metrics.RecordWSMessage("out", string(f.Type))
	return nil
}
