// Package viz renders traces for the terminal: lipgloss tables, asciigraph
// plots and the small styling helpers shared with the trace browser.
package viz
