// Package welcome renders the name-entry screen shown before a session
// starts. It owns nothing beyond the entered name and a started flag; once
// the player starts, the host hears about it through Props.OnStartCall and
// this screen only shows a preparing indicator until it is swapped out.
package welcome

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultStartLabel is rendered on the start control when the host does not
// supply one.
const DefaultStartLabel = "Go →"

// Props is the contract between the welcome screen and its host. OnStartCall
// receives the trimmed name exactly once per mount; the tea.Cmd it returns is
// issued without waiting on its result, so any follow-up work runs after the
// screen has already flipped to its preparing state.
type Props struct {
	StartButtonLabel string
	OnStartCall      func(name string) tea.Cmd
}

type focusArea int

const (
	focusName focusArea = iota
	focusStart
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ece6a")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dddddd"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f7f7f")).
			Padding(0, 2).
			MarginTop(1)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#101012")).
				Background(lipgloss.Color("#9ece6a")).
				Bold(true).
				Padding(0, 2).
				MarginTop(1)

	preparingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)
)

// Model is the welcome screen. Zero value is not usable; construct with New.
type Model struct {
	props   Props
	input   textinput.Model
	spin    spinner.Model
	focus   focusArea
	started bool
	width   int
}

func New(props Props) Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(preparingStyle),
	)

	return Model{
		props: props,
		input: ti,
		spin:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input. Both trigger paths, enter in the name field and
// activating the start control, run the same submit.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.started {
			// The form is gone; stray activations are no-ops.
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case " ":
			if m.focus == focusStart {
				return m.submit()
			}
		case "tab", "shift+tab", "up", "down":
			return m.toggleFocus()
		}
	}

	if m.started {
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit flips the started flag first, then notifies the host with the
// trimmed name. That ordering is the contract: by the time OnStartCall runs,
// Started() already reports true and the next render shows the preparing
// view. The flag never flips back, so the callback fires at most once per
// mount.
func (m Model) submit() (Model, tea.Cmd) {
	if m.started {
		return m, nil
	}
	m.started = true
	m.input.Blur()

	name := strings.TrimSpace(m.input.Value())

	cmds := []tea.Cmd{m.spin.Tick}
	if m.props.OnStartCall != nil {
		if cmd := m.props.OnStartCall(name); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusName {
		m.focus = focusStart
		m.input.Blur()
		return m, nil
	}
	m.focus = focusName
	return m, m.input.Focus()
}

// Prefill seeds the name field. The component still owns the value from
// here on; the host never sees it again until OnStartCall.
func (m *Model) Prefill(name string) {
	m.input.SetValue(name)
	m.input.CursorEnd()
}

// Started reports whether the start action has been triggered.
func (m Model) Started() bool { return m.started }

// Name returns the current (untrimmed) field contents.
func (m Model) Name() string { return m.input.Value() }

// SetWidth lets the host size the screen; the layout handle the host reads
// back comes from Size.
func (m *Model) SetWidth(width int) { m.width = width }

// Size measures the rendered frame so the host can lay out around it.
func (m Model) Size() (width, height int) {
	view := m.View()
	return lipgloss.Width(view), lipgloss.Height(view)
}

func (m Model) startLabel() string {
	if m.props.StartButtonLabel == "" {
		return DefaultStartLabel
	}
	return m.props.StartButtonLabel
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("The Whispering Grove"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("a voice from the forest is waiting"))
	b.WriteString("\n\n")

	if m.started {
		b.WriteString(m.spin.View())
		b.WriteString(preparingStyle.Render("Preparing your adventure..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(promptStyle.Render("What shall the Grove call you?"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	button := buttonStyle
	if m.focus == focusStart {
		button = buttonFocusedStyle
	}
	b.WriteString(button.Render(m.startLabel()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter to start • tab to switch • ctrl+c to quit"))
	b.WriteString("\n")

	return b.String()
}
