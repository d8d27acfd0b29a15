package profiles

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/router"
	"github.com/bigfeelings/bigfeelings/internal/screen"
	"github.com/bigfeelings/bigfeelings/internal/services"
	"github.com/bigfeelings/bigfeelings/internal/ui/components"
	"github.com/bigfeelings/bigfeelings/internal/ui/layout"
	"github.com/bigfeelings/bigfeelings/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldAge
)

var errBadAge = errors.New("age must be a number from 1 to 18, or left empty")

// FormScreen asks for a name, then an optional age, and creates the child.
// The first child added becomes the selected one.
type FormScreen struct {
	svc   *services.Services
	name  components.TextInput
	age   components.TextInput
	field field
	err   error
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// NewForm creates an empty add-child form.
func NewForm(svc *services.Services) *FormScreen {
	age := components.NewTextInput("optional", true, 2)
	age.Blur()
	return &FormScreen{
		svc:  svc,
		name: components.NewTextInput("Name", false, 40),
		age:  age,
	}
}

func (f *FormScreen) Init() tea.Cmd {
	return f.name.Init()
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return f, f.submit()
		case "tab", "shift+tab":
			return f, f.toggle()
		}
	}

	var cmd tea.Cmd
	if f.field == fieldName {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.age, cmd = f.age.Update(msg)
	}
	return f, cmd
}

func (f *FormScreen) toggle() tea.Cmd {
	if f.field == fieldName {
		f.field = fieldAge
		f.name.Blur()
		return f.age.Focus()
	}
	f.field = fieldName
	f.age.Blur()
	return f.name.Focus()
}

func (f *FormScreen) submit() tea.Cmd {
	f.err = nil
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		f.err = child.ErrNameRequired
		if f.field != fieldName {
			return f.toggle()
		}
		return nil
	}
	if f.field == fieldName {
		return f.toggle()
	}

	var age *int
	if strings.TrimSpace(f.age.Value()) != "" {
		n, err := f.age.NumericValue()
		if err != nil || n < 1 || n > 18 {
			f.err = errBadAge
			f.age.Submit(false)
			return nil
		}
		age = &n
	}

	ctx := context.Background()
	c, err := f.svc.Profiles.Create(ctx, name, age, nil)
	if err != nil {
		f.err = err
		return nil
	}
	if _, ok := f.svc.Profiles.Selected(ctx); !ok {
		f.svc.Profiles.Select(ctx, c.ID)
	}
	return router.Pop
}

func (f *FormScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Add a child") + "\n\n")
	b.WriteString(theme.Heading.Render("Name") + "\n" + f.name.View() + "\n\n")
	b.WriteString(theme.Heading.Render("Age") + "\n" + f.age.View() + "\n")
	b.WriteString(theme.Hint.Render("The age picks which stories fit best.") + "\n")
	if f.err != nil {
		b.WriteString("\n" + theme.ErrorText.Render(f.err.Error()))
	}
	return layout.Centered(theme.Card.Width(layout.Column(width)).Render(b.String()), width, height)
}

func (f *FormScreen) Title() string {
	return "Add Child"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}
