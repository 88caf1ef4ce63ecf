// Package mutation applies user edits to host state and keeps the rendered
// lists consistent with what the host confirms.
//
// Every action follows the same shape: issue the remote call, then re-fetch
// the authoritative list and render it. Failures become error toasts and end
// the gesture; nothing is retried.
//
// Deleting an app snapshots the record and its position first, so the
// deletion can be undone within a short window. Only the newest offer is
// live: a second delete supersedes the first offer.
//
// Reordering sends the complete new id order together with the order it was
// derived from, and the host refuses the change if that base is stale.
package mutation
