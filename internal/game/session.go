package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transition records one resolved player action.
type Transition struct {
	From   string
	Action string
	To     string
	At     time.Time
}

// Session is the per-run state of a single playthrough. It is owned by one
// goroutine (the TUI event loop) and needs no locking.
type Session struct {
	ID        string
	Player    string
	StartedAt time.Time

	Current   string
	History   []Transition
	Journal   []string
	Inventory []string

	world *World
}

// Outcome is what a resolved (or unresolved) action produces: the narration
// to show and, when the action advanced the session, what changed.
type Outcome struct {
	Reply      string
	Moved      bool
	Transition *Transition
	JournalAdd string
	ItemAdd    string
}

// NewSession starts a fresh playthrough of w for the named player. An empty
// player name is accepted; the narrator falls back to "traveler".
func NewSession(w *World, player string) *Session {
	return &Session{
		ID:        uuid.NewString()[:8],
		Player:    player,
		StartedAt: time.Now().UTC(),
		Current:   w.EntryScene,
		world:     w,
	}
}

// World returns the scene graph this session plays in.
func (s *Session) World() *World { return s.world }

// SetWorld swaps the scene graph under a live session (world hot-reload).
// If the current scene no longer exists the session jumps back to the entry.
func (s *Session) SetWorld(w *World) {
	s.world = w
	if _, ok := w.Scenes[s.Current]; !ok {
		s.Current = w.EntryScene
	}
}

// PlayerName returns the display name, or "traveler" when none was given.
func (s *Session) PlayerName() string {
	if s.Player == "" {
		return "traveler"
	}
	return s.Player
}

// Opening returns the greeting plus the entry scene narration.
func (s *Session) Opening() string {
	entry := s.world.Scenes[s.world.EntryScene]
	return fmt.Sprintf("Greetings %s. Welcome to '%s'.\n\n%s",
		s.PlayerName(), entry.Title, s.world.SceneText(s.world.EntryScene))
}

// SceneText narrates the session's current scene.
func (s *Session) SceneText() string {
	return s.world.SceneText(s.Current)
}

// Act resolves a free-form player action against the current scene, applies
// its effects, records the transition, and advances. Unresolvable input
// returns a clarifying reply without changing any state.
func (s *Session) Act(input string) Outcome {
	scene, ok := s.world.Scenes[s.Current]
	if !ok {
		return Outcome{Reply: s.world.SceneText(s.Current)}
	}

	key := ResolveAction(scene, input)
	if key == "" {
		reply := "I didn't quite catch that action for this situation. " +
			"Try one of the listed choices or use a simple phrase like " +
			"'follow the trail' or 'open the tent'.\n\n" + s.world.SceneText(s.Current)
		return Outcome{Reply: reply}
	}

	choice := scene.Choices[key]
	out := Outcome{Moved: true}
	if choice.Effects != nil {
		if j := choice.Effects.AddJournal; j != "" {
			s.Journal = append(s.Journal, j)
			out.JournalAdd = j
		}
		if it := choice.Effects.AddInventory; it != "" {
			s.Inventory = append(s.Inventory, it)
			out.ItemAdd = it
		}
	}

	tr := Transition{From: s.Current, Action: key, To: choice.ResultScene, At: time.Now().UTC()}
	s.History = append(s.History, tr)
	s.Current = choice.ResultScene
	out.Transition = &tr

	out.Reply = fmt.Sprintf("You chose '%s'.\n\n%s", key, s.world.SceneText(s.Current))
	return out
}

// JournalText summarizes the session: who is playing, what they have written
// down, what they carry, and their recent moves.
func (s *Session) JournalText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s | Started at: %s\n", s.ID, s.StartedAt.Format(time.RFC3339))
	if s.Player != "" {
		fmt.Fprintf(&b, "Player: %s\n", s.Player)
	}
	if len(s.Journal) > 0 {
		b.WriteString("\nJournal entries:\n")
		for _, j := range s.Journal {
			fmt.Fprintf(&b, "- %s\n", j)
		}
	} else {
		b.WriteString("\nJournal is empty.\n")
	}
	if len(s.Inventory) > 0 {
		b.WriteString("\nInventory:\n")
		for _, it := range s.Inventory {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	} else {
		b.WriteString("\nNo items in inventory.\n")
	}
	b.WriteString("\nRecent choices:\n")
	history := s.History
	if len(history) > 6 {
		history = history[len(history)-6:]
	}
	for _, h := range history {
		fmt.Fprintf(&b, "- %s | from %s -> %s via %s\n", h.At.Format(time.RFC3339), h.From, h.To, h.Action)
	}
	b.WriteString("\n" + actionPrompt)
	return b.String()
}

// Restart returns a fresh session for the same player and world, with a new
// session ID and the reset narration the game master opens with.
func (s *Session) Restart() (*Session, string) {
	next := NewSession(s.world, s.Player)
	reply := "The world resets. A new tide laps at the shore. You stand once more at the beginning.\n\n" +
		next.SceneText()
	return next, reply
}
