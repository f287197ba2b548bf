package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/tui/components"
)

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenBadge
)

// token is one laid-out piece of the transcript flow. Words are hit zones;
// badges only label the highlighted group they precede.
type token struct {
	kind    tokenKind
	text    string
	snippet int // index into the filtered snippets
	group   int // index into the render groups
	word    int // index into transcriptLayout.words, words only
	line    int
	x       int
	width   int
}

// transcriptLayout is the wrapped transcript for one (render result, width)
// pair. Words flow inline across snippets the way a paragraph does.
type transcriptLayout struct {
	result highlight.Result
	tokens []token
	lines  [][]int // token indices per line
	words  []int   // token indices of words, in reading order
}

func layoutTranscript(result highlight.Result, width int) transcriptLayout {
	width = max(width, 1)
	l := transcriptLayout{result: result}

	for gi, g := range result.Groups {
		if g.Highlighted() && g.Label != "" {
			l.tokens = append(l.tokens, token{
				kind:    tokenBadge,
				text:    g.Label,
				snippet: g.Start,
				group:   gi,
				width:   ansi.StringWidth(g.Label) + 2,
			})
		}
		for si := g.Start; si < g.End; si++ {
			for _, w := range result.Snippets[si].Words() {
				l.tokens = append(l.tokens, token{
					kind:    tokenWord,
					text:    w,
					snippet: si,
					group:   gi,
					width:   ansi.StringWidth(w),
				})
			}
		}
	}

	x, line := 0, 0
	var current []int
	for i := range l.tokens {
		t := &l.tokens[i]
		if x > 0 && x+1+t.width > width {
			l.lines = append(l.lines, current)
			current = nil
			x = 0
			line++
		}
		if x > 0 {
			x++
		}
		t.line = line
		t.x = x
		x += t.width
		current = append(current, i)
		if t.kind == tokenWord {
			t.word = len(l.words)
			l.words = append(l.words, i)
		}
	}
	if len(current) > 0 {
		l.lines = append(l.lines, current)
	}
	return l
}

// LineCount returns the number of wrapped lines.
func (l transcriptLayout) LineCount() int {
	return len(l.lines)
}

// WordAt returns the word index (into l.words) under the cell. The gap after a
// word belongs to that word, so sweeping across a line never flickers between
// hover and leave.
func (l transcriptLayout) WordAt(line, col int) (int, bool) {
	if line < 0 || line >= len(l.lines) || col < 0 {
		return 0, false
	}
	for _, ti := range l.lines[line] {
		t := l.tokens[ti]
		if t.kind != tokenWord {
			continue
		}
		if col >= t.x && col <= t.x+t.width {
			return t.word, true
		}
	}
	return 0, false
}

// Word returns the token for a word index.
func (l transcriptLayout) Word(wi int) (token, bool) {
	if wi < 0 || wi >= len(l.words) {
		return token{}, false
	}
	return l.tokens[l.words[wi]], true
}

// SnippetStart returns the start time of the snippet a word belongs to.
func (l transcriptLayout) SnippetStart(wi int) (float64, bool) {
	t, ok := l.Word(wi)
	if !ok {
		return 0, false
	}
	return l.result.Snippets[t.snippet].Start.Float(), true
}

// WordVertical returns the word on the adjacent line (delta -1 or +1) closest to
// the given word's column.
func (l transcriptLayout) WordVertical(wi, delta int) (int, bool) {
	t, ok := l.Word(wi)
	if !ok {
		return 0, false
	}
	target := t.line + delta
	if target < 0 || target >= len(l.lines) {
		return wi, false
	}

	best, bestDist := -1, 0
	for _, ti := range l.lines[target] {
		c := l.tokens[ti]
		if c.kind != tokenWord {
			continue
		}
		d := abs(c.x - t.x)
		if best < 0 || d < bestDist {
			best, bestDist = ti, d
		}
	}
	if best < 0 {
		return wi, false
	}
	return l.tokens[best].word, true
}

// FirstWordOnLine returns the first word at or after line, used when the
// keyboard cursor enters the transcript.
func (l transcriptLayout) FirstWordOnLine(line int) (int, bool) {
	for wi, ti := range l.words {
		if l.tokens[ti].line >= line {
			return wi, true
		}
	}
	return 0, false
}

// Render draws lines [offset, offset+height). cursor is the word index drawn
// underlined, or -1.
func (l transcriptLayout) Render(offset, height, width, cursor int) []string {
	cursorToken := -1
	if cursor >= 0 && cursor < len(l.words) {
		cursorToken = l.words[cursor]
	}

	out := make([]string, 0, height)
	for li := offset; li < offset+height && li < len(l.lines); li++ {
		var b strings.Builder
		x := 0
		for _, ti := range l.lines[li] {
			t := l.tokens[ti]
			if t.x > x {
				b.WriteString(components.Pad(t.x - x))
			}
			b.WriteString(l.renderToken(t, ti == cursorToken))
			x = t.x + t.width
		}
		out = append(out, ansi.Truncate(b.String(), width, "…"))
	}
	return out
}

func (l transcriptLayout) renderToken(t token, cursor bool) string {
	g := l.result.Groups[t.group]
	switch {
	case t.kind == tokenBadge:
		return styles.ChipColorStyle(g.Color).Padding(0, 1).Render(t.text)
	case cursor && g.Highlighted():
		return styles.HighlightStyle(g.Color).Underline(true).Render(t.text)
	case cursor:
		return styles.WordCursorStyle.Render(t.text)
	case g.Highlighted():
		return styles.HighlightStyle(g.Color).Render(t.text)
	default:
		return styles.TextStyle.Render(t.text)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SnippetOf returns the snippet a word belongs to.
func (l transcriptLayout) SnippetOf(wi int) (transcript.Snippet, bool) {
	t, ok := l.Word(wi)
	if !ok {
		return transcript.Snippet{}, false
	}
	return l.result.Snippets[t.snippet], true
}

// FirstHighlightLine returns the line of the first highlighted group.
func (l transcriptLayout) FirstHighlightLine() (int, bool) {
	for _, t := range l.tokens {
		if l.result.Groups[t.group].Highlighted() {
			return t.line, true
		}
	}
	return 0, false
}
