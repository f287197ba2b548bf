package highlight

import (
	"strings"

	"github.com/colonyops/hark/internal/core/transcript"
)

// Kind distinguishes plain runs from highlighted runs.
type Kind string

const (
	KindPlain       Kind = "plain"
	KindHighlighted Kind = "highlighted"
)

// Group is a contiguous run of filtered snippets [Start, End). Highlighted
// groups carry the label and sentiment color of the first matching mention.
type Group struct {
	Kind  Kind                `json:"kind"`
	Start int                 `json:"start"`
	End   int                 `json:"end"`
	Label string              `json:"label,omitempty"`
	Color transcript.Polarity `json:"color"`
}

// Len returns the number of snippets in the group.
func (g Group) Len() int {
	return g.End - g.Start
}

// Highlighted reports whether the group is an entity highlight.
func (g Group) Highlighted() bool {
	return g.Kind == KindHighlighted
}

// Filter keeps the snippets whose text contains query, case-insensitively.
// An empty query keeps everything. Snippets are never split.
func Filter(snippets []transcript.Snippet, query string) []transcript.Snippet {
	if query == "" {
		return snippets
	}

	q := strings.ToLower(query)
	out := make([]transcript.Snippet, 0, len(snippets))
	for _, s := range snippets {
		if strings.Contains(strings.ToLower(s.Text), q) {
			out = append(out, s)
		}
	}
	return out
}

// Result is the output of Render: the filtered snippets and the groups that
// partition them.
type Result struct {
	Snippets []transcript.Snippet `json:"snippets"`
	Groups   []Group              `json:"groups"`
}

// Render filters snippets by query and groups the survivors by the selected
// entity key. An empty selected key yields one plain group per snippet.
//
// The pass is a single left-to-right walk that re-queries the index for each
// snippet, so the cost is O(n·m) for n filtered snippets and m mentions.
func Render(snippets []transcript.Snippet, mentions []transcript.Mention, selected, query string) Result {
	filtered := Filter(snippets, query)
	ix := NewIndex(filtered, mentions)

	groups := make([]Group, 0, len(filtered))
	for i := 0; i < len(filtered); {
		first, ok := ix.MatchFor(i, selected)
		if !ok {
			groups = append(groups, Group{Kind: KindPlain, Start: i, End: i + 1})
			i++
			continue
		}

		j := i + 1
		for j < len(filtered) {
			if _, ok := ix.MatchFor(j, selected); !ok {
				break
			}
			j++
		}

		groups = append(groups, Group{
			Kind:  KindHighlighted,
			Start: i,
			End:   j,
			Label: first.Label(),
			Color: first.Details.Sentiment.Sign(),
		})
		i = j
	}

	return Result{Snippets: filtered, Groups: groups}
}
