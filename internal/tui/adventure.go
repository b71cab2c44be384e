package tui

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grove/internal/game"
	"grove/internal/journal"
	"grove/internal/tui/styles"
)

var narrationStyle = lipgloss.NewStyle().
	Foreground(styles.Fg).
	PaddingTop(1).
	PaddingBottom(1)

// adventureModel runs the session once the player has started: it shows the
// game master's narration and resolves typed actions against the scene
// graph.
type adventureModel struct {
	session   *game.Session
	store     *journal.Store
	input     textinput.Model
	narration string
	notice    string
	quitting  bool
}

func newAdventureModel(sess *game.Session, store *journal.Store) adventureModel {
	ti := textinput.New()
	ti.Placeholder = "what do you do?"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return adventureModel{
		session:   sess,
		store:     store,
		input:     ti,
		narration: sess.Opening(),
	}
}

func (a adventureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (a adventureModel) Update(msg tea.Msg) (adventureModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return a.handleInput()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a adventureModel) handleInput() (adventureModel, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	a.input.Reset()
	a.notice = ""
	if text == "" {
		return a, nil
	}

	switch text {
	case "/quit":
		a.quitting = true
		return a, tea.Quit
	case "/journal":
		a.narration = a.session.JournalText()
		return a, nil
	case "/restart":
		next, reply := a.session.Restart()
		a.session = next
		a.narration = reply
		if a.store != nil {
			if err := a.store.BeginSession(context.Background(), next); err != nil {
				log.Printf("journal: begin session: %v", err)
			}
		}
		return a, nil
	}

	out := a.session.Act(text)
	a.narration = out.Reply
	if a.store != nil {
		if err := a.store.RecordOutcome(context.Background(), a.session.ID, out); err != nil {
			log.Printf("journal: record outcome: %v", err)
		}
	}
	return a, nil
}

// notify shows a one-line notice above the prompt until the next action.
func (a *adventureModel) notify(text string) {
	a.notice = text
}

// setWorld swaps the scene graph under the live session.
func (a *adventureModel) setWorld(w *game.World) {
	if a.session != nil {
		a.session.SetWorld(w)
	}
}

func (a adventureModel) View(width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(styles.Banner("The Whispering Grove", width))
	b.WriteString("\n")

	scene, ok := a.session.World().Scene(a.session.Current)
	if ok {
		b.WriteString(styles.Subtitle.Render(scene.Title))
		b.WriteString("\n")
	}

	b.WriteString(narrationStyle.Width(width).Render(a.narration))
	b.WriteString("\n")

	if a.notice != "" {
		b.WriteString(styles.Muted.Render(a.notice))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("/journal • /restart • /quit"))
	b.WriteString("\n")
	return b.String()
}
