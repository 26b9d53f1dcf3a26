//go:build windows

package ui

import "golang.org/x/sys/windows"

// IsTerminal reports whether fd refers to a console.
func IsTerminal(fd uintptr) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}

// TerminalWidth returns the column count of the console behind fd, or
// fallback when fd is not a console.
func TerminalWidth(fd uintptr, fallback int) int {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return fallback
	}
	if w := int(info.Window.Right - info.Window.Left + 1); w > 0 {
		return w
	}
	return fallback
}
