// Package dialog exposes modal prompts as blocking calls.
//
// RequestInput and RequestConfirm present a dialog and wait until it is
// dismissed. Every dismissal path (submit, confirm, cancel, close, Enter,
// Escape) resolves the request exactly once and frees the slot for the
// next request of that kind.
//
// What happens when a second request of the same kind arrives while one is
// showing depends on the Policy:
//   - PolicyQueue (default): requests wait in FIFO order
//   - PolicyReject: the new request fails with ErrBusy
//   - PolicyReplace: the new request takes the slot and the earlier caller
//     is abandoned; it only returns when its context ends
package dialog
