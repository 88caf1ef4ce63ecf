// Package config provides 12-factor configuration for the iGnition
// companion UI and its development host.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Bridge: Where the UI finds the host and how it waits for it
//   - UI: Undo window, log display window, toast lifetime, dialog policy
//   - Host: Development host listen address, push cadence, seed data
//   - Logging: Log level, output format, log file
//   - RateLimit: Per-IP rate limiting on the development host
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("bridge at %s\n", cfg.Bridge.Endpoint)
//
// Environment Variables:
//   - IGNITION_BRIDGE_URL, IGNITION_HEALTH_URL, IGNITION_POLL_INTERVAL
//   - IGNITION_UNDO_WINDOW, IGNITION_LOG_DISPLAY_LIMIT, IGNITION_DIALOG_POLICY
//   - IGNITION_HOST_ADDR, IGNITION_HOST_PORT, IGNITION_PUSH_INTERVAL
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST
package config
