package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

// ChoicePicker lists a story's choices as lettered rows. Once a choice is
// made the picker locks and colors every row by its response type.
type ChoicePicker struct {
	Choices  []catalog.Choice
	Selected int
	Chosen   int
	Locked   bool
}

// NewChoicePicker creates a picker over choices in display order.
func NewChoicePicker(choices []catalog.Choice) ChoicePicker {
	return ChoicePicker{Choices: choices, Chosen: -1}
}

// Update moves the highlight and locks on enter or a letter key.
func (p ChoicePicker) Update(msg tea.Msg) (ChoicePicker, tea.Cmd) {
	if p.Locked {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Choices)-1 {
			p.Selected++
		}
	case "enter", "space":
		p = p.lock(p.Selected)
	default:
		if len(key) == 1 {
			if i := int(key[0] - 'a'); i >= 0 && i < len(p.Choices) {
				p = p.lock(i)
			}
		}
	}
	return p, nil
}

func (p ChoicePicker) lock(i int) ChoicePicker {
	if i < 0 || i >= len(p.Choices) {
		return p
	}
	p.Selected = i
	p.Chosen = i
	p.Locked = true
	return p
}

// Choice returns the locked choice.
func (p ChoicePicker) Choice() (catalog.Choice, bool) {
	if !p.Locked {
		return catalog.Choice{}, false
	}
	return p.Choices[p.Chosen], true
}

// View renders the rows wrapped to width.
func (p ChoicePicker) View(width int) string {
	var b strings.Builder
	for i, c := range p.Choices {
		prefix := "  "
		if i == p.Selected && !p.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), c.Text)

		style := lipgloss.NewStyle().Width(width)
		switch {
		case p.Locked && i == p.Chosen:
			style = style.Foreground(theme.ChoiceColor(c.Type)).Bold(true)
		case p.Locked:
			style = style.Foreground(theme.TextDim)
		case i == p.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		default:
			style = style.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// Feedback renders the heading and explanation for a chosen response.
func Feedback(c catalog.Choice, width int) string {
	heading := lipgloss.NewStyle().Foreground(theme.ChoiceColor(c.Type)).Bold(true).
		Render(c.Type.Emoji() + " " + c.Type.Title())
	return heading + "\n" + theme.Body.Width(width).Render(c.Explanation)
}
