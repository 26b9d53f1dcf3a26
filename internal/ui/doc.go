// Package ui holds the color themes shared by the CLI and the TUI, and the
// terminal detection that decides whether colors and spinners are used.
package ui
