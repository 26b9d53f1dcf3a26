// Package format holds the text formatting helpers shared by the CLI, the
// TUI and the server: durations, digit grouping, progress bars and ETA.
package format
