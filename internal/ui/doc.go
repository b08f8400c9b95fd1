// Package ui holds the color themes shared by the report printer, the REPL
// and the dashboard. A theme is picked once at startup from --no-color,
// NO_COLOR and whether stdout is a terminal; the CLI reads it as ANSI
// sequences and the dashboard as lipgloss colors.
package ui
