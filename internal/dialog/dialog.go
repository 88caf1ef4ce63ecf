package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/id"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
)

// ErrBusy is returned under PolicyReject when a dialog of the same kind is
// already showing.
var ErrBusy = errors.New("dialog: a request of this kind is already pending")

// Policy decides what a new request does while one is showing.
type Policy int

const (
	PolicyQueue Policy = iota
	PolicyReject
	PolicyReplace
)

func (p Policy) String() string {
	switch p {
	case PolicyQueue:
		return "queue"
	case PolicyReject:
		return "reject"
	case PolicyReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "queue":
		return PolicyQueue, nil
	case "reject":
		return PolicyReject, nil
	case "replace":
		return PolicyReplace, nil
	}
	return PolicyQueue, fmt.Errorf("unknown dialog policy %q", s)
}

// Keys accepted by Key.
const (
	KeyEnter  = "enter"
	KeyEscape = "escape"
)

// InputRequest asks for a line of text.
type InputRequest struct {
	Title       string
	Placeholder string
	Default     string
}

// ConfirmRequest asks a yes/no question.
type ConfirmRequest struct {
	Title        string
	Message      string
	ConfirmLabel string // defaults to "Confirm"
}

type outcome struct {
	text string
	ok   bool
}

type request struct {
	dialog view.Dialog
	result chan outcome
}

// Controller owns the dialog slots.
type Controller struct {
	policy    Policy
	presenter view.DialogPresenter
	logger    *zap.Logger
	metrics   *monitoring.Metrics

	mu     sync.Mutex
	active map[view.DialogKind]*request
	queued map[view.DialogKind][]*request
}

// NewController creates a controller presenting through presenter.
func NewController(presenter view.DialogPresenter, policy Policy, logger *zap.Logger, metrics *monitoring.Metrics) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		policy:    policy,
		presenter: presenter,
		logger:    logger,
		metrics:   metrics,
		active:    make(map[view.DialogKind]*request),
		queued:    make(map[view.DialogKind][]*request),
	}
}

// RequestInput shows an input dialog and waits. ok is false when the dialog
// was dismissed or submitted blank; text is trimmed.
func (c *Controller) RequestInput(ctx context.Context, req InputRequest) (string, bool, error) {
	res, err := c.request(ctx, view.Dialog{
		Kind:        view.DialogInput,
		Title:       req.Title,
		Placeholder: req.Placeholder,
		Default:     req.Default,
	})
	if err != nil {
		return "", false, err
	}
	return res.text, res.ok, nil
}

// RequestConfirm shows a confirmation dialog and waits for the answer.
func (c *Controller) RequestConfirm(ctx context.Context, req ConfirmRequest) (bool, error) {
	label := req.ConfirmLabel
	if label == "" {
		label = "Confirm"
	}
	res, err := c.request(ctx, view.Dialog{
		Kind:         view.DialogConfirm,
		Title:        req.Title,
		Message:      req.Message,
		ConfirmLabel: label,
	})
	if err != nil {
		return false, err
	}
	return res.ok, nil
}

func (c *Controller) request(ctx context.Context, d view.Dialog) (outcome, error) {
	d.ID = id.NewDialogID().String()
	r := &request{dialog: d, result: make(chan outcome, 1)}

	c.mu.Lock()
	if cur := c.active[d.Kind]; cur != nil {
		switch c.policy {
		case PolicyReject:
			c.mu.Unlock()
			c.metrics.RecordDialog(string(d.Kind), "rejected")
			return outcome{}, ErrBusy
		case PolicyReplace:
			c.logger.Debug("dialog replaced", zap.String("abandoned", cur.dialog.ID))
			c.metrics.RecordDialog(string(d.Kind), "abandoned")
			c.presenter.HideDialog(cur.dialog.ID)
			c.showLocked(r)
		default:
			c.queued[d.Kind] = append(c.queued[d.Kind], r)
		}
	} else {
		c.showLocked(r)
	}
	c.mu.Unlock()

	select {
	case res := <-r.result:
		return res, nil
	case <-ctx.Done():
		c.withdraw(r)
		return outcome{}, ctx.Err()
	}
}

// showLocked must be called with mu held.
func (c *Controller) showLocked(r *request) {
	c.active[r.dialog.Kind] = r
	c.presenter.ShowDialog(r.dialog)
}

// advanceLocked presents the next queued request of kind, if any.
func (c *Controller) advanceLocked(kind view.DialogKind) {
	delete(c.active, kind)
	q := c.queued[kind]
	if len(q) == 0 {
		return
	}
	next := q[0]
	c.queued[kind] = q[1:]
	c.showLocked(next)
}

func (c *Controller) withdraw(r *request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind := r.dialog.Kind
	if c.active[kind] == r {
		c.presenter.HideDialog(r.dialog.ID)
		c.advanceLocked(kind)
		c.metrics.RecordDialog(string(kind), "withdrawn")
		return
	}
	q := c.queued[kind]
	for i, item := range q {
		if item == r {
			c.queued[kind] = append(q[:i], q[i+1:]...)
			return
		}
	}
}

// resolve completes the active request with id. Unknown or stale ids are
// ignored, as are ids of a kind other than want. An empty want matches
// any kind.
func (c *Controller) resolve(dialogID string, want view.DialogKind, res outcome, how string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for kind, r := range c.active {
		if r.dialog.ID != dialogID {
			continue
		}
		if want != "" && kind != want {
			c.logger.Debug("dialog answer ignored",
				zap.String("dialog", dialogID), zap.String("kind", string(kind)), zap.String("answer", how))
			return false
		}
		c.presenter.HideDialog(dialogID)
		r.result <- res
		c.advanceLocked(kind)
		c.metrics.RecordDialog(string(kind), how)
		return true
	}
	return false
}

// Submit resolves an input dialog with text. Blank text resolves as no
// value.
func (c *Controller) Submit(dialogID, text string) bool {
	text = strings.TrimSpace(text)
	return c.resolve(dialogID, view.DialogInput, outcome{text: text, ok: text != ""}, "submitted")
}

// Confirm accepts a confirmation dialog.
func (c *Controller) Confirm(dialogID string) bool {
	return c.resolve(dialogID, view.DialogConfirm, outcome{ok: true}, "confirmed")
}

// Cancel dismisses a dialog with a negative answer.
func (c *Controller) Cancel(dialogID string) bool {
	return c.resolve(dialogID, "", outcome{}, "cancelled")
}

// Close dismisses a dialog through its close control.
func (c *Controller) Close(dialogID string) bool {
	return c.resolve(dialogID, "", outcome{}, "closed")
}

// Key handles Enter and Escape. text is the input field content and is
// ignored for confirmation dialogs.
func (c *Controller) Key(dialogID, key, text string) bool {
	switch key {
	case KeyEscape:
		return c.Cancel(dialogID)
	case KeyEnter:
		return c.Confirm(dialogID) || c.Submit(dialogID, text)
	}
	return false
}

// Active returns the dialog showing for kind.
func (c *Controller) Active(kind view.DialogKind) (view.Dialog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.active[kind]
	if r == nil {
		return view.Dialog{}, false
	}
	return r.dialog, true
}

// Queued returns the number of requests of kind waiting behind the active
// one.
func (c *Controller) Queued(kind view.DialogKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queued[kind])
}
