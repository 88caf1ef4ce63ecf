// Package types provides the shared data structures exchanged with the
// iGnition host over the bridge.
//
// The field names and JSON tags mirror the host's wire contract exactly, so
// values decoded here can be sent back unchanged (an undo snapshot is the
// full ManagedApp record as the host returned it).
//
// Core Types:
//   - ManagedApp: Auxiliary program launched alongside the simulation
//   - Profile: Named bundle of managed apps plus trigger processes
//   - LogEvent: Activity log entry pushed by the host
//   - SessionRecord: Completed simulation session (host is sole writer)
//   - Status: Transient monitoring state carried by every push
//   - Settings: Host-side settings page values
//   - Result: The {ok, error?} envelope returned by mutating operations
//
// Example Usage:
//
//	app := types.NewManagedApp("Crew Chief", `C:\CC\cc.exe`)
//	app.StartDelaySeconds = 5
package types
