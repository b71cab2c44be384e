package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start runs the TUI until the player quits.
func Start(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
