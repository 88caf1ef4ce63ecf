// Package events folds host pushes into view state.
//
// Each push carries the full monitoring status and the log entries produced
// since the previous push. The Ingestor overwrites its status, appends the
// entries to an unbounded buffer (no dedupe, no reordering) and re-renders
// the status indicator, the log badge and, when the events tab is on screen,
// the newest-first log window. Applying the same push twice renders the same
// status but double-counts the entries.
//
// The session history feed and the log clear actions live here as well.
package events
