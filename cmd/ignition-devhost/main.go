package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/devhost"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/config"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/paths"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	flag.StringVar(&cfg.Host.Addr, "addr", cfg.Host.Addr, "Listen address")
	flag.StringVar(&cfg.Host.Port, "port", cfg.Host.Port, "Listen port")
	flag.StringVar(&cfg.Host.SeedFile, "seed", cfg.Host.SeedFile, "YAML seed file")
	flag.DurationVar(&cfg.Host.PushInterval, "push", cfg.Host.PushInterval, "Status push interval")
	roots := flag.String("roots", strings.Join(cfg.Host.SearchRoots, ","), "Comma-separated roots scanned for known apps")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development mode (colored logs, debug routes)")
	flag.Parse()
	cfg.Host.SearchRoots = splitList(*roots)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ignition-devhost: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development
	if cfg.Logging.Development {
		logCfg.Level = "debug"
	}
	if cfg.Logging.File != "" {
		logCfg.OutputPaths = []string{cfg.Logging.File}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store := devhost.NewStore(
		devhost.WithHistoryLimit(cfg.Host.HistoryLimit),
		devhost.WithConfigPath(paths.HostConfig()),
	)
	if cfg.Host.SeedFile != "" {
		seed, err := devhost.LoadSeed(cfg.Host.SeedFile)
		if err != nil {
			return err
		}
		if err := store.Apply(seed); err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		logger.Info("Seed applied", zap.String("file", cfg.Host.SeedFile), zap.Int("apps", len(store.Apps())))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := devhost.NewScanner(cfg.Host.SearchRoots, logger.Named("scan"))
	dispatcher := devhost.NewDispatcher(store, scanner, devhost.NewIconCache(), func() {
		logger.Info("Quit requested by UI")
		stop()
	})

	var limit *devhost.RateLimitConfig
	if cfg.RateLimit.Enabled {
		limit = &devhost.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           10 * time.Minute,
		}
	}

	tracer := tracing.New("devhost", logger.Named("trace"))
	defer tracer.Close()

	srv := devhost.NewServer(store, dispatcher, devhost.Options{
		PushInterval: cfg.Host.PushInterval,
		RateLimit:    limit,
		Development:  cfg.Logging.Development,
		Logger:       logger.Logger,
		Metrics:      monitoring.NewMetrics(),
		Tracer:       tracer,
	})
	return srv.Run(ctx, cfg.HostAddress())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
