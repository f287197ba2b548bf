package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/playback"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/tui/components"
)

const (
	gutter        = 1
	progressWidth = 20
	footerPadX    = 2
)

// frame is the row layout of the screen for the current state. Rendering and
// mouse hit-testing both read it.
type frame struct {
	header     headerView
	chips      chipRow
	chipsTop   int
	searchRow  int
	dividerRow int
	bodyTop    int
	bodyHeight int

	footerTop    int // -1 without a details footer
	footerHeight int
	closeX0      int
	closeX1      int

	statusRow  int
	progressX0 int
	progressX1 int // exclusive, equal to progressX0 without a known duration
}

func (m Model) contentWidth() int {
	return max(m.width-2*gutter, 10)
}

func (m Model) transcriptWidth() int {
	w := m.contentWidth()
	if m.wrapWidth > 0 {
		w = min(w, m.wrapWidth)
	}
	return w
}

func (m Model) selectedMention() (transcript.Mention, bool) {
	return highlight.FirstMention(m.post.Mentions, m.selection.Key())
}

func (m Model) frame() frame {
	f := frame{footerTop: -1}

	f.header = renderHeader(m.post, m.contentWidth(), m.descExpanded, m.descLines)
	row := len(f.header.lines)

	f.chipsTop = row
	f.chips = layoutChips(m.chips, m.selection.Key(), m.chipFocus, m.contentWidth())
	row += len(f.chips.lines)

	f.searchRow = row
	f.dividerRow = row + 1
	f.bodyTop = row + 2

	f.statusRow = m.height - 1
	bottom := f.statusRow
	if _, ok := m.selectedMention(); ok {
		f.footerHeight = m.details.Height() + 2
		f.footerTop = bottom - f.footerHeight
		bottom = f.footerTop

		closeW := lipgloss.Width(closeLabel)
		f.closeX1 = m.width - footerPadX
		f.closeX0 = f.closeX1 - closeW
	}
	f.bodyHeight = max(bottom-f.bodyTop, 1)

	_, f.progressX0, f.progressX1 = m.renderStatus()
	return f
}

const closeLabel = "× close"

// relayout rebuilds the transcript layout after the post, the selection, the
// query or the width changed.
func (m *Model) relayout(resetCursor bool) {
	result := highlight.Render(m.post.Paragraphs, m.post.Mentions, m.selection.Key(), m.query)
	m.layout = layoutTranscript(result, m.transcriptWidth())
	if resetCursor || m.cursor >= len(m.layout.words) {
		m.cursor = -1
		m.hoverSnippet = -1
	}
	m.syncDetails()
	m.clampOffset()
}

// syncDetails renders the details footer content for the selected entity and
// sizes its viewport.
func (m *Model) syncDetails() {
	mention, ok := m.selectedMention()
	if !ok {
		m.details.SetContent("")
		return
	}

	innerW := max(m.width-2*footerPadX, 10)
	content := renderDetails(mention, innerW, m.now(), m.rawDetails)

	m.details.SetWidth(innerW)
	m.details.SetHeight(min(lipgloss.Height(content), max(m.height/3, 3)))
	m.details.SetContent(content)
}

func (m *Model) clampOffset() {
	f := m.frame()
	maxOffset := max(m.layout.LineCount()-f.bodyHeight, 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// scrollTo makes transcript line visible.
func (m *Model) scrollTo(line int) {
	f := m.frame()
	switch {
	case line < m.offset:
		m.offset = line
	case line >= m.offset+f.bodyHeight:
		m.offset = line - f.bodyHeight + 1
	}
	m.clampOffset()
}

// View renders the screen.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// render draws the screen with its overlays.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderMain()

	switch {
	case m.state == stateFinder && m.finder != nil:
		content = m.finder.Overlay(content, w, h)
	case m.state == stateShowingHelp && m.helpDialog != nil:
		content = m.helpDialog.Overlay(content, w, h)
	case m.state == stateShowingNotifications && m.notificationModal != nil:
		content = m.notificationModal.Overlay(content, w, h)
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h, 1)
	}
	return content
}

func (m Model) renderMain() string {
	f := m.frame()
	indent := components.Pad(gutter)

	lines := make([]string, 0, m.height)
	for _, l := range f.header.lines {
		lines = append(lines, indent+l)
	}
	for _, l := range f.chips.lines {
		lines = append(lines, indent+l)
	}
	lines = append(lines,
		indent+m.renderSearch(),
		indent+styles.DividerStyle.Render(strings.Repeat("─", m.contentWidth())),
	)

	body := m.renderBody(f.bodyHeight)
	for _, l := range body {
		lines = append(lines, indent+l)
	}
	for len(lines) < f.bodyTop+f.bodyHeight {
		lines = append(lines, "")
	}

	if f.footerTop >= 0 {
		lines = append(lines, strings.Split(m.renderFooter(), "\n")...)
	}

	status, _, _ := m.renderStatus()
	if len(lines) > m.height-1 {
		lines = lines[:max(m.height-1, 0)]
	}
	lines = append(lines, status)
	return strings.Join(lines, "\n")
}

func (m Model) renderSearch() string {
	line := m.search.View()
	if m.query != "" {
		count := fmt.Sprintf("  %d of %d paragraphs", len(m.layout.result.Snippets), len(m.post.Paragraphs))
		line += styles.TextMutedStyle.Render(count)
	}
	return ansi.Truncate(line, m.contentWidth(), "…")
}

func (m Model) renderBody(height int) []string {
	switch {
	case len(m.post.Paragraphs) == 0:
		return []string{styles.TextMutedStyle.Render("No transcript available for this episode.")}
	case len(m.layout.result.Snippets) == 0:
		return []string{styles.TextMutedStyle.Render("No matching results.")}
	}
	return m.layout.Render(m.offset, height, m.transcriptWidth(), m.cursor)
}

func (m Model) renderFooter() string {
	innerW := max(m.width-2*footerPadX, 10)

	title := styles.FooterTitleStyle.Render("Entity details")
	if m.rawDetails {
		title += styles.TextMutedStyle.Render(" (raw)")
	}
	closer := styles.TextMutedStyle.Render(closeLabel)
	gap := max(innerW-lipgloss.Width(title)-lipgloss.Width(closer), 1)

	body := lipgloss.JoinVertical(lipgloss.Left,
		title+components.Pad(gap)+closer,
		m.details.View(),
	)
	return styles.FooterStyle.Render(body)
}

// renderStatus renders the status line and reports the cell range of its
// progress bar.
func (m Model) renderStatus() (string, int, int) {
	icon, label := styles.IconPaused, "paused"
	switch m.controller.State() {
	case playback.Persistent:
		icon, label = styles.IconPlaying, "playing"
	case playback.Previewing:
		icon, label = styles.IconPreview, "preview"
	}
	if !m.hasMedia {
		icon, label = styles.IconPaused, "no media"
	}

	duration := m.controller.Duration()
	clock := formatClock(m.position) + " / "
	if duration > 0 {
		clock += formatClock(duration)
	} else {
		clock += "--:--"
	}

	left := icon + " " + label + "  " + clock + "  "
	const statusPad = 1
	x0 := statusPad + lipgloss.Width(left)
	x1 := x0

	if duration > 0 {
		filled := int(float64(progressWidth) * min(max(m.position/duration, 0), 1))
		left += strings.Repeat("━", filled) + strings.Repeat("─", progressWidth-filled) + "  "
		x1 = x0 + progressWidth
	}

	readiness := "no media"
	if m.hasMedia {
		readiness = m.playerName + " ○ loading"
		if m.playerReady {
			readiness = m.playerName + " ● ready"
		}
	}
	right := readiness + "   ? help"
	if m.hasMedia {
		right = fmt.Sprintf("vol %d%%  ", int(m.volume)) + right
	}

	inner := max(m.width-2*statusPad, 1)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := ansi.Truncate(left+components.Pad(gap)+right, inner, "…")
	line += components.Pad(inner - lipgloss.Width(line))
	return styles.StatusStyle.Render(line), x0, x1
}
