// Package tui implements the --tui dashboard: a bubbletea program showing
// per-algorithm progress and the final result while the orchestration
// layer runs in the background.
package tui
