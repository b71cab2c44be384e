// Package game holds the adventure engine: the scene graph, per-run session
// state, and the narrator that turns both into prose.
package game

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed worlds/grove.yaml
var defaultWorldYAML []byte

// actionPrompt closes every narration so the player always knows it is
// their turn.
const actionPrompt = "What do you do?"

type Effects struct {
	AddJournal   string `yaml:"add_journal,omitempty"`
	AddInventory string `yaml:"add_inventory,omitempty"`
}

type Choice struct {
	Desc        string   `yaml:"desc"`
	ResultScene string   `yaml:"result_scene"`
	Effects     *Effects `yaml:"effects,omitempty"`
}

type Scene struct {
	Title   string            `yaml:"title"`
	Desc    string            `yaml:"desc"`
	Choices map[string]Choice `yaml:"choices"`
}

// ChoiceIDs returns the scene's choice keys in sorted order so narration and
// action resolution are deterministic regardless of YAML map ordering.
func (s Scene) ChoiceIDs() []string {
	ids := make([]string, 0, len(s.Choices))
	for id := range s.Choices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type World struct {
	Name       string           `yaml:"name"`
	EntryScene string           `yaml:"entry_scene"`
	Scenes     map[string]Scene `yaml:"scenes"`
}

// DefaultWorld parses the embedded world shipped with the binary.
func DefaultWorld() (*World, error) {
	return ParseWorld(defaultWorldYAML)
}

// LoadWorld reads and validates a world file from disk.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := ParseWorld(data)
	if err != nil {
		return nil, fmt.Errorf("parse world %s: %w", path, err)
	}
	return w, nil
}

// ParseWorld unmarshals and validates a YAML world definition.
func ParseWorld(data []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.EntryScene == "" {
		w.EntryScene = "intro"
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks that the world has an entry scene and that every choice
// leads to a scene that exists.
func (w *World) Validate() error {
	if len(w.Scenes) == 0 {
		return fmt.Errorf("world has no scenes")
	}
	if _, ok := w.Scenes[w.EntryScene]; !ok {
		return fmt.Errorf("entry scene %q is not defined", w.EntryScene)
	}
	for id, scene := range w.Scenes {
		for cid, choice := range scene.Choices {
			if choice.ResultScene == "" {
				return fmt.Errorf("scene %q choice %q has no result scene", id, cid)
			}
			if _, ok := w.Scenes[choice.ResultScene]; !ok {
				return fmt.Errorf("scene %q choice %q leads to undefined scene %q", id, cid, choice.ResultScene)
			}
		}
	}
	return nil
}

// Scene looks up a scene by ID.
func (w *World) Scene(id string) (Scene, bool) {
	s, ok := w.Scenes[id]
	return s, ok
}

// SceneText builds the narration for a scene: its description, the available
// choices as short hints, and the closing action prompt.
func (w *World) SceneText(id string) string {
	scene, ok := w.Scenes[id]
	if !ok {
		// Unknown scenes narrate a void rather than erroring; a live
		// world reload can briefly leave a session pointing nowhere.
		return "You are in a featureless void. " + actionPrompt
	}
	var b strings.Builder
	b.WriteString(scene.Desc)
	b.WriteString("\n\nChoices:\n")
	for _, cid := range scene.ChoiceIDs() {
		fmt.Fprintf(&b, "- %s (say: %s)\n", scene.Choices[cid].Desc, cid)
	}
	b.WriteString("\n" + actionPrompt)
	return b.String()
}

// EnsureWorldFile writes the embedded default world to path if no file is
// there yet, so players have something to edit.
func EnsureWorldFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, defaultWorldYAML, 0644)
}
