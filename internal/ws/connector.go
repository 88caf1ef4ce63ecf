package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/config"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/resilience"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Connector brings the bridge up: wait for the host to be healthy, dial it,
// attach the client to the gate.
type Connector struct {
	cfg     config.BridgeConfig
	gate    *bridge.Gate
	onPush  PushHandler
	probe   *retryablehttp.Client
	breaker *resilience.Breaker
	clock   clockwork.Clock
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewConnector creates a connector for cfg.
func NewConnector(cfg config.BridgeConfig, gate *bridge.Gate, onPush PushHandler, logger *zap.Logger, metrics *monitoring.Metrics) *Connector {
	return NewConnectorWithClock(cfg, gate, onPush, clockwork.NewRealClock(), logger, metrics)
}

// NewConnectorWithClock is NewConnector with an injected clock.
func NewConnectorWithClock(cfg config.BridgeConfig, gate *bridge.Gate, onPush PushHandler, clock clockwork.Clock, logger *zap.Logger, metrics *monitoring.Metrics) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}

	probe := retryablehttp.NewClient()
	probe.Logger = leveledLogger{logger.Sugar().Named("probe")}
	probe.RetryMax = int(^uint(0) >> 1)
	probe.RetryWaitMin = cfg.PollInterval
	probe.RetryWaitMax = cfg.PollInterval
	probe.Backoff = func(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return min
	}
	probe.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil || resp.StatusCode != http.StatusOK, nil
	}
	probe.HTTPClient.Timeout = cfg.HandshakeWait

	breaker := resilience.New("bridge-dial", resilience.Settings{
		Timeout: cfg.DialCooldown,
		Clock:   clock,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= cfg.DialFailures
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Info("dial breaker", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	return &Connector{
		cfg:     cfg,
		gate:    gate,
		onPush:  onPush,
		probe:   probe,
		breaker: breaker,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Run blocks until the client is attached or ctx ends. There is no other
// way out: an absent host keeps the UI waiting.
func (c *Connector) Run(ctx context.Context) (*Client, error) {
	if err := c.waitHealthy(ctx); err != nil {
		return nil, err
	}

	client, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.gate.Attach(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *Connector) waitHealthy(ctx context.Context) error {
	if c.cfg.HealthURL == "" {
		return nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.cfg.HealthURL, nil)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("health probe: %w", err)
	}
	resp.Body.Close()
	c.logger.Debug("host healthy", zap.String("url", c.cfg.HealthURL))
	return nil
}

func (c *Connector) dial(ctx context.Context) (*Client, error) {
	for {
		var client *Client
		err := c.breaker.Do(func() error {
			var err error
			client, err = Dial(ctx, c.cfg.Endpoint, c.cfg.HandshakeWait, c.onPush, c.logger, c.metrics)
			return err
		})
		if err == nil {
			return client, nil
		}

		wait := c.cfg.PollInterval
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			wait = c.breaker.Cooldown()
		} else {
			c.logger.Debug("dial failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(wait):
		}
	}
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger. Failed probes
// are expected until the host is up, so errors are logged at debug.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
