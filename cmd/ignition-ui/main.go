package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/ignition/companion/internal/app"
	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/config"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/prefs"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/paths"
	"github.com/GriffinCanCode/ignition/companion/internal/tui"
	"github.com/GriffinCanCode/ignition/companion/internal/ws"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	flag.StringVar(&cfg.Bridge.Endpoint, "bridge", cfg.Bridge.Endpoint, "Host bridge WebSocket URL")
	flag.StringVar(&cfg.Bridge.HealthURL, "health", cfg.Bridge.HealthURL, "Host health URL")
	flag.StringVar(&cfg.UI.PrefsPath, "prefs", cfg.UI.PrefsPath, "Preferences file (default in the user config dir)")
	flag.StringVar(&cfg.UI.DialogPolicy, "dialogs", cfg.UI.DialogPolicy, "Dialog policy: queue, reject or replace")
	flag.StringVar(&cfg.Logging.File, "log", cfg.Logging.File, "Log file (default in the user config dir)")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ignition-ui: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := dialog.ParsePolicy(cfg.UI.DialogPolicy)
	if err != nil {
		return err
	}

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = paths.UILog()
	}
	logger, err := logging.New(logging.FileConfig(logPath, cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	prefsPath := cfg.UI.PrefsPath
	if prefsPath == "" {
		prefsPath = paths.Prefs()
	}
	store, err := prefs.Open(prefsPath)
	if err != nil {
		logger.Warn("Preferences unreadable, using defaults", zap.String("path", prefsPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := monitoring.NewMetrics()
	gate := bridge.NewGate(logger.Named("gate"), metrics)
	proxy := bridge.NewProxy(gate, logger.Named("proxy"), metrics)
	sink := tui.NewSink()

	ctrl := app.New(proxy, sink, store, app.Options{
		UndoWindow:      cfg.UI.UndoWindow,
		LogDisplayLimit: cfg.UI.LogDisplayLimit,
		DialogPolicy:    policy,
		Logger:          logger.Logger,
		Metrics:         metrics,
	})
	defer ctrl.Close()

	logger.Info("Starting iGnition UI",
		zap.String("bridge", cfg.Bridge.Endpoint),
		zap.String("dialogs", policy.String()),
	)

	connector := ws.NewConnector(cfg.Bridge, gate, ctrl.HandlePush, logger.Named("ws"), metrics)
	go func() {
		client, err := connector.Run(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("Bridge unavailable", zap.Error(err))
			}
			return
		}
		logger.Info("Bridge attached")
		<-ctx.Done()
		_ = client.Close()
	}()

	model := tui.New(ctx, tui.FromController(ctrl), sink, tui.Options{
		ToastDuration: cfg.UI.ToastDuration,
		Logger:        logger.Named("tui"),
	})
	err = tui.Run(ctx, model)
	logger.Info("UI closed")
	return err
}
