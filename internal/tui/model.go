// Package tui is the terminal front end: it hosts the welcome screen, then
// routes into the adventure view once the player starts.
package tui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/game"
	"grove/internal/journal"
	"grove/internal/welcome"
)

type view int

const (
	viewWelcome view = iota
	viewAdventure
)

// startCallMsg is the message the welcome screen's OnStartCall command
// produces; receiving it is what routes into the adventure.
type startCallMsg struct {
	name string
}

type worldReloadedMsg struct{}

// Options configures the TUI.
type Options struct {
	World      *game.World
	WorldPath  string             // used for hot-reload; empty disables watching
	Store      *journal.Store     // optional; nil disables persistence
	Watcher    *game.WorldWatcher // optional
	Prefill    string             // remembered player name, offered as a prefill
	StartLabel string
	// RememberName, when set, is told the chosen name so the host can
	// offer it as the prefill next run.
	RememberName func(name string)
}

type Model struct {
	view      view
	welcome   welcome.Model
	adventure adventureModel

	world   *game.World
	session *game.Session
	opts    Options
	width   int
	height  int
}

func New(opts Options) Model {
	label := opts.StartLabel
	if label == "" {
		label = "Go →"
	}
	w := welcome.New(welcome.Props{
		StartButtonLabel: label,
		OnStartCall: func(name string) tea.Cmd {
			return func() tea.Msg { return startCallMsg{name: name} }
		},
	})
	if opts.Prefill != "" {
		w.Prefill(opts.Prefill)
	}

	return Model{
		view:    viewWelcome,
		welcome: w,
		world:   opts.World,
		opts:    opts,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.welcome.Init()}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForReload(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// fall through to the active view below

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case startCallMsg:
		if m.opts.RememberName != nil && msg.name != "" {
			m.opts.RememberName(msg.name)
		}
		m.session = game.NewSession(m.world, msg.name)
		if m.opts.Store != nil {
			if err := m.opts.Store.BeginSession(context.Background(), m.session); err != nil {
				log.Printf("journal: begin session: %v", err)
			}
		}
		m.view = viewAdventure
		m.adventure = newAdventureModel(m.session, m.opts.Store)
		return m, m.adventure.Init()

	case worldReloadedMsg:
		cmd := m.reloadWorld()
		return m, cmd
	}

	switch m.view {
	case viewWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.adventure, cmd = m.adventure.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	switch m.view {
	case viewWelcome:
		return m.welcome.View()
	default:
		return m.adventure.View(m.width)
	}
}

// reloadWorld re-reads the world file and swaps it under the live session.
// A broken edit keeps the previous world running.
func (m *Model) reloadWorld() tea.Cmd {
	next, err := game.LoadWorld(m.opts.WorldPath)
	if err != nil {
		log.Printf("world reload skipped: %v", err)
	} else {
		m.world = next
		if m.view == viewAdventure {
			// The adventure owns the live session (it may have been
			// restarted since routing).
			m.adventure.setWorld(next)
			m.adventure.notify("The Grove shifts around you; the world was reloaded.")
		}
		log.Printf("world reloaded from %s", m.opts.WorldPath)
	}
	if m.opts.Watcher != nil {
		return waitForReload(m.opts.Watcher)
	}
	return nil
}

func waitForReload(w *game.WorldWatcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Reloads(); !ok {
			return nil
		}
		return worldReloadedMsg{}
	}
}
