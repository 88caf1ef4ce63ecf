// Package main is the entry point for the iGnition development host.
//
// The development host serves the complete remote operation surface from
// memory so the UI can be run and tested without the native backend. It
// never launches or stops processes; simulator sessions and log events are
// simulated through the /dev endpoints.
//
// Endpoints:
//   - GET  /health       readiness probe
//   - GET  /metrics      Prometheus metrics
//   - GET  /bridge       WebSocket: calls and periodic status/log pushes
//   - POST /dev/iracing  {"running": true, "session_type": "race"}
//   - POST /dev/event    {"type": "launch", "app": "SimHub", "msg": "Launched"}
//   - POST /dev/dialog   {"op": "browse_exe", "path": "C:\\Apps\\tool.exe"}
//
// Configuration:
//   - Environment variables (IGNITION_HOST_*, IGNITION_SEED, RATE_LIMIT_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Default: 127.0.0.1:8765, empty store
//	./ignition-devhost
//
//	# Seeded, scanning a local apps folder, debug logs
//	./ignition-devhost -seed configs/devhost-seed.yaml -roots "$HOME/SimApps" -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
//   - quit_app from the UI also shuts the host down
package main
