package welcome

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSubmitTrimsName(t *testing.T) {
	var got string
	calls := 0
	m := New(Props{OnStartCall: func(name string) tea.Cmd {
		got = name
		calls++
		return nil
	}})

	m = typeText(m, "  Ana  ")
	m, _ = pressEnter(m)

	if calls != 1 {
		t.Fatalf("expected 1 callback invocation, got %d", calls)
	}
	if got != "Ana" {
		t.Errorf("expected trimmed name %q, got %q", "Ana", got)
	}
	if !m.Started() {
		t.Error("expected model to be started after submit")
	}
}

func TestSubmitPreservesInternalWhitespace(t *testing.T) {
	var got string
	m := New(Props{OnStartCall: func(name string) tea.Cmd {
		got = name
		return nil
	}})

	m = typeText(m, " Ana  Lu ")
	_, _ = pressEnter(m)

	if got != "Ana  Lu" {
		t.Errorf("expected internal whitespace preserved, got %q", got)
	}
}

func TestSubmitEmptyNameInvokesCallback(t *testing.T) {
	got := "unset"
	m := New(Props{OnStartCall: func(name string) tea.Cmd {
		got = name
		return nil
	}})

	_, _ = pressEnter(m)

	if got != "" {
		t.Errorf("expected empty name forwarded as %q, got %q", "", got)
	}
}

func TestSubmitSwitchesToPreparingView(t *testing.T) {
	m := New(Props{StartButtonLabel: "Begin"})

	before := m.View()
	if !strings.Contains(before, "Begin") {
		t.Fatalf("expected idle view to render the start control, got:\n%s", before)
	}

	m, _ = pressEnter(m)

	after := m.View()
	if strings.Contains(after, "Begin") {
		t.Errorf("expected form to be gone after start, got:\n%s", after)
	}
	if !strings.Contains(after, "Preparing your adventure") {
		t.Errorf("expected preparing indicator, got:\n%s", after)
	}
	if !strings.Contains(after, "The Whispering Grove") {
		t.Errorf("expected decorative header in both states, got:\n%s", after)
	}
}

func TestStartControlActivationMatchesEnter(t *testing.T) {
	var got string
	calls := 0
	m := New(Props{OnStartCall: func(name string) tea.Cmd {
		got = name
		calls++
		return nil
	}})

	m = typeText(m, "Rio")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	if calls != 1 {
		t.Fatalf("expected activation via start control, got %d calls", calls)
	}
	if got != "Rio" {
		t.Errorf("expected name %q, got %q", "Rio", got)
	}
	if !m.Started() {
		t.Error("expected model to be started")
	}
}

func TestOtherKeysDoNotTransition(t *testing.T) {
	calls := 0
	m := New(Props{OnStartCall: func(string) tea.Cmd {
		calls++
		return nil
	}})

	m = typeText(m, "x")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	if m.Started() {
		t.Error("expected no transition without enter")
	}
	if calls != 0 {
		t.Errorf("expected no callback invocations, got %d", calls)
	}
	if m.Name() != "x" {
		t.Errorf("expected field to hold typed text, got %q", m.Name())
	}
}

func TestSubmitOnlyOncePerMount(t *testing.T) {
	calls := 0
	m := New(Props{OnStartCall: func(string) tea.Cmd {
		calls++
		return nil
	}})

	m, _ = pressEnter(m)
	m, _ = pressEnter(m)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	if calls != 1 {
		t.Errorf("expected exactly one callback invocation, got %d", calls)
	}
}

func TestStartedFlagSetBeforeCallback(t *testing.T) {
	// The ordering contract: the flag flips before the host is notified,
	// so the callback's returned command can never race a still-idle view.
	invoked := false
	m := New(Props{OnStartCall: func(string) tea.Cmd {
		invoked = true
		return nil
	}})

	m, _ = pressEnter(m)

	if !invoked {
		t.Fatal("expected callback to run synchronously during submit")
	}
	if !m.Started() {
		t.Fatal("expected started flag set by the time submit returns")
	}
}

func TestCallbackCommandIsIssued(t *testing.T) {
	type startedMsg struct{ name string }
	m := New(Props{OnStartCall: func(name string) tea.Cmd {
		return func() tea.Msg { return startedMsg{name: name} }
	}})

	m = typeText(m, "Mar")
	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected a command batch from submit")
	}

	// Walk the batch looking for the host's message.
	found := false
	var walk func(tea.Cmd)
	walk = func(c tea.Cmd) {
		if c == nil || found {
			return
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, sub := range msg {
				walk(sub)
			}
		case startedMsg:
			if msg.name == "Mar" {
				found = true
			}
		}
	}
	walk(cmd)

	if !found {
		t.Error("expected the OnStartCall command to be part of the submit batch")
	}
}

func TestDefaultStartLabel(t *testing.T) {
	m := New(Props{})
	if !strings.Contains(m.View(), DefaultStartLabel) {
		t.Errorf("expected default label %q in view", DefaultStartLabel)
	}
}

func TestSizeReportsRenderedFrame(t *testing.T) {
	m := New(Props{})
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		t.Errorf("expected positive frame size, got %dx%d", w, h)
	}
}
