// Package devhost is an in-memory stand-in for the native iGnition host.
//
// It implements every remote operation the UI calls with the native
// host's observable behavior (validation messages, active profile scoping,
// undo reinsertion, trigger mode migration, bounded log and session
// history) and serves them over the same WebSocket bridge protocol. It never
// starts or stops real processes: simulation start and stop, app launches
// and file dialogs are driven through the /dev endpoints instead.
//
// Routes:
//
//	GET  /health          readiness probe
//	GET  /metrics         Prometheus metrics
//	GET  /bridge          WebSocket: calls in, replies and status pushes out
//	POST /dev/iracing     {"running": true, "session_type": "race"}
//	POST /dev/event       {"type": "error", "app": "SimHub", "msg": "..."}
//	POST /dev/dialog      {"op": "open_file_dialog", "path": "/tmp/x.json"}
package devhost
