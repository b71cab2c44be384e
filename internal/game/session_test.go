package game

import (
	"strings"
	"testing"
)

func newTestSession(t *testing.T, player string) *Session {
	t.Helper()
	w, err := DefaultWorld()
	if err != nil {
		t.Fatalf("load default world: %v", err)
	}
	return NewSession(w, player)
}

func TestOpeningGreetsPlayer(t *testing.T) {
	s := newTestSession(t, "Ana")
	opening := s.Opening()
	if !strings.Contains(opening, "Greetings Ana.") {
		t.Errorf("expected greeting with player name, got:\n%s", opening)
	}
	if !strings.HasSuffix(opening, actionPrompt) {
		t.Errorf("opening must end with the action prompt")
	}
}

func TestOpeningFallsBackToTraveler(t *testing.T) {
	s := newTestSession(t, "")
	if !strings.Contains(s.Opening(), "Greetings traveler.") {
		t.Errorf("expected traveler fallback, got:\n%s", s.Opening())
	}
}

func TestActAdvancesAndRecords(t *testing.T) {
	s := newTestSession(t, "Ana")

	out := s.Act("follow_trail")
	if !out.Moved {
		t.Fatal("expected action to advance the session")
	}
	if s.Current != "trail" {
		t.Errorf("expected current scene trail, got %q", s.Current)
	}
	if len(s.History) != 1 {
		t.Fatalf("expected one transition, got %d", len(s.History))
	}
	tr := s.History[0]
	if tr.From != "intro" || tr.To != "trail" || tr.Action != "follow_trail" {
		t.Errorf("unexpected transition %+v", tr)
	}
	if !strings.Contains(out.Reply, "You chose 'follow_trail'.") {
		t.Errorf("expected confirmation in reply, got:\n%s", out.Reply)
	}
	if !strings.HasSuffix(out.Reply, actionPrompt) {
		t.Error("reply must end with the action prompt")
	}
}

func TestActAppliesEffects(t *testing.T) {
	s := newTestSession(t, "Ana")
	s.Act("check_camp")

	out := s.Act("grab_lantern")
	if out.ItemAdd != "lantern" {
		t.Errorf("expected lantern item effect, got %q", out.ItemAdd)
	}
	if len(s.Inventory) != 1 || s.Inventory[0] != "lantern" {
		t.Errorf("expected lantern in inventory, got %v", s.Inventory)
	}
	if s.Current != "intro" {
		t.Errorf("expected return to intro, got %q", s.Current)
	}
}

func TestActUnresolvedDoesNotAdvance(t *testing.T) {
	s := newTestSession(t, "Ana")

	out := s.Act("xyzzy")
	if out.Moved {
		t.Error("expected unresolved action to stay put")
	}
	if s.Current != "intro" {
		t.Errorf("expected to remain at intro, got %q", s.Current)
	}
	if len(s.History) != 0 {
		t.Errorf("expected no history entry, got %d", len(s.History))
	}
	if !strings.Contains(out.Reply, "didn't quite catch") {
		t.Errorf("expected clarifying reply, got:\n%s", out.Reply)
	}
	if !strings.HasSuffix(out.Reply, actionPrompt) {
		t.Error("clarifying reply must end with the action prompt")
	}
}

func TestJournalText(t *testing.T) {
	s := newTestSession(t, "Ana")
	text := s.JournalText()
	if !strings.Contains(text, "Journal is empty.") {
		t.Errorf("expected empty journal notice, got:\n%s", text)
	}

	s.Act("inspect_monolith")
	s.Act("touch_symbol")
	s.Act("accept_quest")

	text = s.JournalText()
	if !strings.Contains(text, "You accepted the god's silent plea.") {
		t.Errorf("expected journal entry, got:\n%s", text)
	}
	if !strings.Contains(text, "Player: Ana") {
		t.Errorf("expected player line, got:\n%s", text)
	}
	if !strings.Contains(text, "via accept_quest") {
		t.Errorf("expected recent choices, got:\n%s", text)
	}
}

func TestRestartResetsState(t *testing.T) {
	s := newTestSession(t, "Ana")
	s.Act("follow_trail")
	oldID := s.ID

	next, reply := s.Restart()
	if next.ID == oldID {
		t.Error("expected a fresh session ID")
	}
	if next.Player != "Ana" {
		t.Errorf("expected player carried over, got %q", next.Player)
	}
	if next.Current != next.World().EntryScene {
		t.Errorf("expected reset to entry scene, got %q", next.Current)
	}
	if len(next.History) != 0 || len(next.Journal) != 0 || len(next.Inventory) != 0 {
		t.Error("expected empty state after restart")
	}
	if !strings.Contains(reply, "The world resets.") {
		t.Errorf("expected reset narration, got:\n%s", reply)
	}
}

func TestSetWorldRescuesOrphanedScene(t *testing.T) {
	s := newTestSession(t, "Ana")
	s.Act("follow_trail")

	smaller, err := ParseWorld([]byte(`
entry_scene: intro
scenes:
  intro:
    title: Small
    desc: Just this.
`))
	if err != nil {
		t.Fatal(err)
	}

	s.SetWorld(smaller)
	if s.Current != "intro" {
		t.Errorf("expected orphaned session moved to entry, got %q", s.Current)
	}
}
