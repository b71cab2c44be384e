package game

import "testing"

func testScene() Scene {
	return Scene{
		Title: "The Fading Path",
		Desc:  "A path with a fox.",
		Choices: map[string]Choice{
			"follow_fox":          {Desc: "Go after the strange fox.", ResultScene: "fox_chase"},
			"ignore_and_continue": {Desc: "Stay on the path and press forward.", ResultScene: "clearing"},
			"turn_back":           {Desc: "Retreat to the forest entrance.", ResultScene: "intro"},
		},
	}
}

func TestResolveExactKey(t *testing.T) {
	if got := ResolveAction(testScene(), "follow_fox"); got != "follow_fox" {
		t.Errorf("expected exact key match, got %q", got)
	}
	if got := ResolveAction(testScene(), "  FOLLOW_FOX  "); got != "follow_fox" {
		t.Errorf("expected case/space-insensitive key match, got %q", got)
	}
}

func TestResolveKeyInPhrase(t *testing.T) {
	if got := ResolveAction(testScene(), "I want to follow_fox please"); got != "follow_fox" {
		t.Errorf("expected embedded key match, got %q", got)
	}
}

func TestResolveLeadingDescriptionWords(t *testing.T) {
	if got := ResolveAction(testScene(), "go after it"); got != "follow_fox" {
		t.Errorf("expected description word match, got %q", got)
	}
	if got := ResolveAction(testScene(), "retreat!"); got != "turn_back" {
		t.Errorf("expected description word match, got %q", got)
	}
}

func TestResolveNothing(t *testing.T) {
	if got := ResolveAction(testScene(), "xyzzy"); got != "" {
		t.Errorf("expected no match, got %q", got)
	}
	if got := ResolveAction(testScene(), "   "); got != "" {
		t.Errorf("expected no match for blank input, got %q", got)
	}
}

func TestResolveDeterministicTieBreak(t *testing.T) {
	// Both follow_fox and ignore_and_continue mention "the path"; the
	// sorted-key order must pick the same choice every time.
	first := ResolveAction(testScene(), "the")
	for i := 0; i < 20; i++ {
		if got := ResolveAction(testScene(), "the"); got != first {
			t.Fatalf("resolution not deterministic: %q vs %q", got, first)
		}
	}
}
