package events

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
)

// Remote is the part of the host surface the log screen uses.
type Remote interface {
	GetSessionHistory(ctx context.Context) ([]types.SessionRecord, error)
	ClearSessionHistory(ctx context.Context) error
	ClearLog(ctx context.Context) error
}

// Visibility reports whether the events tab of the log screen is showing.
type Visibility interface {
	LogEventsVisible() bool
}

// Sink is everything the ingestor renders into.
type Sink interface {
	view.StatusSink
	view.LogSink
	view.Notifier
}

// Ingestor owns the last status and the log buffer.
type Ingestor struct {
	remote  Remote
	visible Visibility
	sink    Sink
	limit   int
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu     sync.Mutex
	status types.Status
	pushed bool
	buffer LogBuffer
}

// NewIngestor creates an ingestor. limit <= 0 selects DefaultDisplayLimit.
func NewIngestor(remote Remote, visible Visibility, sink Sink, limit int, logger *zap.Logger, metrics *monitoring.Metrics) *Ingestor {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		remote:  remote,
		visible: visible,
		sink:    sink,
		limit:   limit,
		logger:  logger,
		metrics: metrics,
	}
}

// Push applies one host push. It never touches the network.
func (i *Ingestor) Push(status types.Status, entries []types.LogEvent) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = status
	i.pushed = true
	i.sink.RenderStatus(StatusView(status))

	i.buffer.Append(entries...)
	i.sink.RenderLogBadge(i.buffer.Len())
	i.metrics.RecordPush(len(entries), i.buffer.Len())

	if i.visible != nil && i.visible.LogEventsVisible() {
		i.renderLogLocked()
	}
}

// Seed renders a status fetched on demand. It is dropped once a push has
// arrived, since pushes are always at least as fresh.
func (i *Ingestor) Seed(status types.Status) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pushed {
		return false
	}
	i.status = status
	i.sink.RenderStatus(StatusView(status))
	return true
}

// Status returns the last pushed status.
func (i *Ingestor) Status() types.Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// Len returns the number of buffered log entries.
func (i *Ingestor) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.buffer.Len()
}

// RenderLog renders the current log window.
func (i *Ingestor) RenderLog() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.renderLogLocked()
}

func (i *Ingestor) renderLogLocked() {
	i.sink.RenderLog(LogLines(i.buffer.Window(i.limit)))
}

// ClearLog clears the host log, then the local buffer.
func (i *Ingestor) ClearLog(ctx context.Context) error {
	if err := i.remote.ClearLog(ctx); err != nil {
		i.sink.Toast(view.Toast{Message: bridge.UserMessage(err, "Could not clear log"), Level: view.LevelError})
		return err
	}

	i.mu.Lock()
	i.buffer.Clear()
	i.sink.RenderLogBadge(0)
	i.metrics.SetLogBuffer(0)
	i.renderLogLocked()
	i.mu.Unlock()

	i.sink.Toast(view.Toast{Message: "Log cleared", Level: view.LevelInfo})
	return nil
}

// RenderHistory fetches and renders the session history. A failed fetch
// leaves the previous rendering in place.
func (i *Ingestor) RenderHistory(ctx context.Context) error {
	records, err := i.remote.GetSessionHistory(ctx)
	if err != nil {
		i.logger.Warn("session history unavailable", zap.Error(err))
		return err
	}
	i.sink.RenderHistory(HistoryRows(records))
	return nil
}

// ClearHistory clears the host's session history and re-renders it.
func (i *Ingestor) ClearHistory(ctx context.Context) error {
	if err := i.remote.ClearSessionHistory(ctx); err != nil {
		i.sink.Toast(view.Toast{Message: bridge.UserMessage(err, "Could not clear history"), Level: view.LevelError})
		return err
	}
	_ = i.RenderHistory(ctx)
	i.sink.Toast(view.Toast{Message: "History cleared", Level: view.LevelInfo})
	return nil
}
