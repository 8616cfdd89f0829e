// Package ui declares the contract shared by the components mounted in the
// root Bubble Tea program.
package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for reusable Bubble Tea widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Closer is implemented by components that hold work in flight which must be
// abandoned when the program tears down.
type Closer interface {
	Close()
}
