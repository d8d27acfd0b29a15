// Package app hosts the bubbletea program: the screen router inside a
// header and footer frame.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/screens/home"
	"github.com/bigfeelings/bigfeelings/internal/screens/welcome"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc       *services.Services
	router    *router.Router
	width     int
	height    int
	childName string
	streak    int
}

// newAppModel starts on the welcome screen, which hands over to home.
func newAppModel(svc *services.Services) AppModel {
	w := welcome.New(func() screen.Screen { return home.New(svc) })
	m := AppModel{
		svc:    svc,
		router: router.New(w),
	}
	m.loadStatus()
	return m
}

// loadStatus reads the header's child name and streak.
func (m *AppModel) loadStatus() {
	ctx := context.Background()
	m.childName, m.streak = "", 0
	if c, ok := m.svc.Profiles.Selected(ctx); ok {
		m.childName = c.Name
		m.streak = m.svc.Ledger.CurrentStreak(ctx, c.ID, m.svc.Now())
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	switch msg.(type) {
	case tea.KeyMsg, router.PopScreenMsg, router.PopToRootMsg:
		m.loadStatus()
	}
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.childName, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, svc *services.Services) error {
	p := tea.NewProgram(newAppModel(svc), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
