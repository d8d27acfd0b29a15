// Package screen defines the contract every TUI screen implements.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
)

// Screen is one page of the app. The router owns the stack of screens and
// draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that show stored data. The router
// calls Refresh when a screen becomes active again after a pop.
type Refresher interface {
	Refresh() tea.Cmd
}
