// Package main is the entry point for the iGnition companion terminal UI.
//
// The UI manages the apps and profiles the host launches alongside iRacing.
// It never touches processes itself: every operation goes to the host over
// the bridge.
//
// Architecture:
//
//	Terminal (bubbletea) → app.Controller → bridge.Proxy → bridge.Gate
//	                                                    → ws.Client → Host
//
// Calls made before the host is reachable wait in the gate and are sent,
// in order, once the WebSocket attaches. Status and log pushes from the
// host are folded into the header, the log badge and the log screen.
//
// Configuration:
//   - Environment variables (IGNITION_*, LOG_*)
//   - CLI flags (override env vars)
//   - Defaults for a host on 127.0.0.1:8765
//
// Usage:
//
//	# Against a local development host
//	./ignition-ui
//
//	# Another host, debug logs
//	./ignition-ui -bridge ws://10.0.0.5:8765/bridge -health http://10.0.0.5:8765/health -dev
//
// Logs go to a file because the terminal belongs to the UI.
package main
