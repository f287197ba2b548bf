package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/tui/components"
)

const (
	finderWidth      = 50
	finderMaxResults = 10
)

type finderOutcome int

const (
	finderPending finderOutcome = iota
	finderCancelled
	finderChosen
)

// finderMatch is one candidate chip and the label runes that matched.
type finderMatch struct {
	chip    int
	matched []int
}

// Finder is a fuzzy picker over the entity chips.
type Finder struct {
	input   textinput.Model
	chips   []highlight.Chip
	labels  []string
	matches []finderMatch
	cursor  int
}

func NewFinder(chips []highlight.Chip) *Finder {
	input := textinput.New()
	input.Placeholder = "Entity name or ticker..."
	input.Prompt = "› "
	input.SetStyles(textinput.DefaultStyles(true))
	input.SetWidth(finderWidth - 8)

	labels := make([]string, len(chips))
	for i, c := range chips {
		labels[i] = c.Label
	}

	f := &Finder{input: input, chips: chips, labels: labels}
	f.filter()
	return f
}

// Focus focuses the query input.
func (f *Finder) Focus() tea.Cmd {
	return f.input.Focus()
}

func (f *Finder) filter() {
	f.cursor = 0
	f.matches = f.matches[:0]

	query := strings.TrimSpace(f.input.Value())
	if query == "" {
		for i := range f.chips {
			f.matches = append(f.matches, finderMatch{chip: i})
		}
		return
	}

	for _, m := range fuzzy.Find(query, f.labels) {
		f.matches = append(f.matches, finderMatch{chip: m.Index, matched: m.MatchedIndexes})
	}
}

// Selected returns the chip under the cursor.
func (f *Finder) Selected() (highlight.Chip, bool) {
	if f.cursor < 0 || f.cursor >= len(f.matches) {
		return highlight.Chip{}, false
	}
	return f.chips[f.matches[f.cursor].chip], true
}

// Update handles a key press and reports whether the finder is done.
func (f *Finder) Update(msg tea.KeyPressMsg) (finderOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return finderCancelled, nil
	case "enter":
		if _, ok := f.Selected(); ok {
			return finderChosen, nil
		}
		return finderPending, nil
	case "up", "ctrl+p", "ctrl+k":
		if f.cursor > 0 {
			f.cursor--
		}
		return finderPending, nil
	case "down", "ctrl+n", "ctrl+j":
		if f.cursor < len(f.matches)-1 {
			f.cursor++
		}
		return finderPending, nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.filter()
	}
	return finderPending, cmd
}

// View renders the finder box.
func (f *Finder) View() string {
	lines := []string{
		styles.ModalTitleStyle.Render("Find entity"),
		"",
		f.input.View(),
		"",
	}

	if len(f.matches) == 0 {
		lines = append(lines, styles.TextMutedStyle.Render("No matching entities."))
	}

	// keep the cursor inside the visible window
	start := max(f.cursor-finderMaxResults+1, 0)
	end := min(start+finderMaxResults, len(f.matches))
	for i := start; i < end; i++ {
		lines = append(lines, f.renderMatch(f.matches[i], i == f.cursor))
	}

	lines = append(lines, styles.ModalHelpStyle.Render("↑/↓ move • enter select • esc close"))
	return styles.ModalStyle.Width(finderWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (f *Finder) renderMatch(m finderMatch, current bool) string {
	c := f.chips[m.chip]

	matched := make(map[int]bool, len(m.matched))
	for _, i := range m.matched {
		matched[i] = true
	}

	var b strings.Builder
	// MatchedIndexes are byte offsets into the label
	for i, r := range c.Label {
		if matched[i] {
			b.WriteString(styles.TextPrimaryBoldStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TextStyle.Render(string(r)))
		}
	}

	prefix := "  "
	if current {
		prefix = styles.TextPrimaryStyle.Render("› ")
	}
	label := b.String()
	if icon := chipIcon(c.Kind); icon != "" {
		label = icon + " " + label
	}
	dot := lipgloss.NewStyle().Foreground(styles.SentimentColor(c.Color)).Render("●")
	return prefix + dot + " " + label
}

// Overlay renders the finder centered over background.
func (f *Finder) Overlay(background string, width, height int) string {
	return components.Center(background, f.View(), width, height)
}
