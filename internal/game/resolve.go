package game

import "strings"

// ResolveAction maps free-form player input to one of the scene's choice
// keys, or "" when nothing matches. Matching is tried in order of
// strictness; within each pass choices are visited in sorted key order so
// ties resolve the same way every time.
func ResolveAction(scene Scene, input string) string {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return ""
	}

	// Exact choice key, e.g. "follow_trail".
	if _, ok := scene.Choices[text]; ok {
		return text
	}

	ids := scene.ChoiceIDs()

	// The key appears inside the input, or the input mentions one of the
	// leading words of the choice description.
	for _, cid := range ids {
		if strings.Contains(text, cid) {
			return cid
		}
		for _, w := range leadingWords(scene.Choices[cid].Desc, 4) {
			if strings.Contains(text, w) {
				return cid
			}
		}
	}

	// Last resort: any description word at all.
	for _, cid := range ids {
		for _, w := range strings.Fields(strings.ToLower(scene.Choices[cid].Desc)) {
			if w != "" && strings.Contains(text, w) {
				return cid
			}
		}
	}

	return ""
}

func leadingWords(desc string, n int) []string {
	words := strings.Fields(strings.ToLower(desc))
	if len(words) > n {
		words = words[:n]
	}
	return words
}
