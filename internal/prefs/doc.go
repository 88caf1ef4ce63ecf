// Package prefs persists the UI's local display preferences (card density
// and theme) in a small TOML file next to the user's config.
package prefs
