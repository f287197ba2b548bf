package tui

import (
	"fmt"
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/core/transcript"
)

// formatClock renders seconds as HH:MM:SS when at least an hour long,
// otherwise MM:SS. Negative and non-finite values render as 00:00.
func formatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// headerView is the rendered post header. Rows descFrom..descTo (exclusive)
// hold the description and toggle it when clicked.
type headerView struct {
	lines    []string
	descFrom int
	descTo   int
}

func renderHeader(post transcript.Post, width int, expanded bool, descLines int) headerView {
	width = max(width, 1)
	h := headerView{}

	h.lines = append(h.lines, ansi.Truncate(styles.TitleStyle.Render(post.DisplayTitle()), width, "…"))

	channel := post.ChannelTitle
	if channel == "" {
		channel = "Channel"
	}
	meta := []string{"👤 " + channel}
	if !post.PublishedAt.IsZero() {
		meta = append(meta, "📅 "+post.PublishedAt.Format("Jan 2, 2006"))
	}
	if post.DurationSeconds != nil && !math.IsNaN(*post.DurationSeconds) {
		meta = append(meta, "⏱ "+formatClock(*post.DurationSeconds))
	}
	h.lines = append(h.lines, ansi.Truncate(styles.MetaStyle.Render(strings.Join(meta, "   ")), width, "…"))

	desc := strings.TrimSpace(post.Description)
	if desc == "" {
		return h
	}

	wrapped := strings.Split(wordwrap.String(desc, width), "\n")
	h.descFrom = len(h.lines) + 1
	h.lines = append(h.lines, "")

	shown := wrapped
	truncated := !expanded && descLines > 0 && len(wrapped) > descLines
	if truncated {
		shown = wrapped[:descLines]
	}
	for _, line := range shown {
		h.lines = append(h.lines, styles.TextStyle.Render(line))
	}

	switch {
	case truncated:
		h.lines = append(h.lines, styles.TextPrimaryStyle.Render("Show more"))
	case expanded && descLines > 0 && len(wrapped) > descLines:
		h.lines = append(h.lines, styles.TextPrimaryStyle.Render("Show less"))
	}
	h.descTo = len(h.lines)
	return h
}

// chipZone is the clickable extent of one chip on the chip row.
type chipZone struct {
	chip int
	line int
	x0   int
	x1   int // exclusive
}

// chipRow is the wrapped chip bar.
type chipRow struct {
	lines []string
	zones []chipZone
}

func chipIcon(kind transcript.EntityType) string {
	switch kind {
	case transcript.EntityCompany:
		return styles.IconCompany
	case transcript.EntityCryptocurrency:
		return styles.IconCrypto
	default:
		return ""
	}
}

func renderChip(c highlight.Chip, selected, focused bool) string {
	style := styles.ChipColorStyle(c.Color)
	if selected {
		style = styles.ChipSelectedStyle
	}
	if focused {
		style = style.Underline(true)
	}

	text := c.Label
	if icon := chipIcon(c.Kind); icon != "" {
		text = icon + " " + text
	}
	return style.Render(text)
}

// layoutChips wraps chips onto as many lines as needed. Chips wider than the
// screen get a line of their own.
func layoutChips(chips []highlight.Chip, selected string, focused, width int) chipRow {
	var (
		row     chipRow
		current []string
		x       int
	)
	width = max(width, 1)

	for i, c := range chips {
		rendered := renderChip(c, c.ID == selected, i == focused)
		w := lipgloss.Width(rendered)
		if x > 0 && x+1+w > width {
			row.lines = append(row.lines, strings.Join(current, " "))
			current, x = nil, 0
		}
		if x > 0 {
			x++
		}
		row.zones = append(row.zones, chipZone{chip: i, line: len(row.lines), x0: x, x1: x + w})
		current = append(current, rendered)
		x += w
	}
	if len(current) > 0 {
		row.lines = append(row.lines, strings.Join(current, " "))
	}
	return row
}

// ChipAt returns the chip index under a cell of the chip row.
func (r chipRow) ChipAt(line, col int) (int, bool) {
	for _, z := range r.zones {
		if z.line == line && col >= z.x0 && col < z.x1 {
			return z.chip, true
		}
	}
	return 0, false
}
