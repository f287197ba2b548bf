package highlight

import "github.com/colonyops/hark/internal/core/transcript"

// Chip summarizes one entity across all of its mentions.
type Chip struct {
	ID    string                `json:"id"`
	Label string                `json:"label"`
	Kind  transcript.EntityType `json:"kind"`
	Color transcript.Polarity   `json:"color"`
}

// Chips returns one chip per distinct (entity type, name) pair in first-seen
// order. Label and kind come from the first mention of a key; the color
// follows the most recently seen mention. Unnamed mentions are skipped.
func Chips(mentions []transcript.Mention) []Chip {
	type chipKey struct {
		kind transcript.EntityType
		name string
	}

	var (
		chips []Chip
		pos   = make(map[chipKey]int)
	)
	for _, m := range mentions {
		name := m.Key()
		if name == "" {
			continue
		}

		k := chipKey{kind: m.EntityType, name: name}
		if i, ok := pos[k]; ok {
			chips[i].Color = m.Details.Sentiment.Sign()
			continue
		}

		pos[k] = len(chips)
		chips = append(chips, Chip{
			ID:    name,
			Label: m.Label(),
			Kind:  m.EntityType,
			Color: m.Details.Sentiment.Sign(),
		})
	}
	return chips
}

// FirstMention returns the first mention (array order) for the entity key.
// The details panel reads from it.
func FirstMention(mentions []transcript.Mention, key string) (transcript.Mention, bool) {
	if key == "" {
		return transcript.Mention{}, false
	}
	for _, m := range mentions {
		if m.Key() == key {
			return m, true
		}
	}
	return transcript.Mention{}, false
}
