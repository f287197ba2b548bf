// Package highlight turns a transcript and its entity mentions into render
// groups: runs of plain snippets and runs highlighted for the selected entity.
// Everything here is a pure function of its inputs.
package highlight

import "github.com/colonyops/hark/internal/core/transcript"

// Overlaps reports whether the snippet and mention intervals intersect. The
// test is half-open: touching at a boundary is not an overlap, and a
// zero-length mention overlaps nothing.
func Overlaps(s transcript.Snippet, m transcript.Mention) bool {
	return s.Start < m.End && s.End > m.Start
}

// Index answers which mention, if any, highlights a snippet for a selected
// entity key.
type Index struct {
	snippets []transcript.Snippet
	mentions []transcript.Mention
}

// NewIndex builds an index over the given snippets and mentions. The slices
// are not copied and must not be mutated while the index is in use.
func NewIndex(snippets []transcript.Snippet, mentions []transcript.Mention) *Index {
	return &Index{snippets: snippets, mentions: mentions}
}

// Len returns the number of indexed snippets.
func (ix *Index) Len() int {
	return len(ix.snippets)
}

// MatchFor returns the first mention in array order whose trimmed name equals
// key and which overlaps snippet i. An empty key means nothing is selected
// and returns no match without scanning.
func (ix *Index) MatchFor(i int, key string) (transcript.Mention, bool) {
	if key == "" || i < 0 || i >= len(ix.snippets) {
		return transcript.Mention{}, false
	}

	s := ix.snippets[i]
	for _, m := range ix.mentions {
		if m.Key() == key && Overlaps(s, m) {
			return m, true
		}
	}
	return transcript.Mention{}, false
}
