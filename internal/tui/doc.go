// Package tui is the terminal front end.
//
// Sink implements view.View by forwarding every render call to the bubbletea
// program as a message, so the synchronization core never touches model
// state directly. Model turns key presses into Actions, which run as
// commands off the event loop because most of them wait on the host or on a
// dialog the user has not answered yet.
package tui
