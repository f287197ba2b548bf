package tui

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/internal/core/playback"
)

// --- Window ---

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.search.SetWidth(max(m.contentWidth()-24, 10))
	m.relayout(false)
	if m.notificationModal != nil {
		m.notificationModal = NewNotificationModal(m.notifyBus.Store(), m.width, m.height)
	}

	// Publish startup warnings on the first WindowSizeMsg
	if len(m.startupWarnings) > 0 {
		for _, w := range m.startupWarnings {
			m.notifyBus.Warnf("%s", w)
		}
		m.startupWarnings = nil
		return m, m.ensureToastTick()
	}
	return m, nil
}

// --- Keys ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSearching:
		return m.handleSearchKey(msg)
	case stateFinder:
		return m.handleFinderKey(msg)
	case stateShowingHelp:
		switch msg.String() {
		case "esc", "?", "q":
			m.state = stateNormal
		}
		return m, nil
	case stateShowingNotifications:
		return m.handleNotificationsKey(msg)
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()
	case key.Matches(msg, keys.Help):
		m.state = stateShowingHelp
		return m, nil
	case key.Matches(msg, keys.Search):
		m.state = stateSearching
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, keys.ClearSearch):
		m.setQuery("")
		return m, nil
	case key.Matches(msg, keys.Finder):
		if len(m.chips) == 0 {
			return m, m.notifyInfo("No entities mentioned in this post")
		}
		m.finder = NewFinder(m.chips)
		m.state = stateFinder
		return m, m.finder.Focus()
	case key.Matches(msg, keys.Notifications):
		m.notificationModal = NewNotificationModal(m.notifyBus.Store(), m.width, m.height)
		m.state = stateShowingNotifications
		return m, nil

	case key.Matches(msg, keys.NextChip):
		m.moveChipFocus(1)
		return m, nil
	case key.Matches(msg, keys.PrevChip):
		m.moveChipFocus(-1)
		return m, nil
	case key.Matches(msg, keys.Activate):
		return m.activate()
	case key.Matches(msg, keys.Back):
		return m.back()

	case key.Matches(msg, keys.Up):
		m.moveCursorVertical(-1)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.moveCursorVertical(1)
		return m, nil
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, keys.PauseResume):
		m.pauseResume()
		return m, nil
	case key.Matches(msg, keys.SeekBack):
		m.seekBy(-seekStep)
		return m, nil
	case key.Matches(msg, keys.SeekForward):
		m.seekBy(seekStep)
		return m, nil
	case key.Matches(msg, keys.VolumeUp):
		m.adjustVolume(volumeStep)
		return m, nil
	case key.Matches(msg, keys.VolumeDown):
		m.adjustVolume(-volumeStep)
		return m, nil
	case key.Matches(msg, keys.OpenPlayer):
		return m, m.openPlayerPage()

	case key.Matches(msg, keys.CloseDetails):
		m.closeDetails()
		return m, nil
	case key.Matches(msg, keys.RawDetails):
		if _, ok := m.selectedMention(); ok {
			m.rawDetails = !m.rawDetails
			m.details.SetYOffset(0)
			m.syncDetails()
			m.clampOffset()
		}
		return m, nil
	case key.Matches(msg, keys.DetailsUp):
		m.details.ScrollUp(1)
		return m, nil
	case key.Matches(msg, keys.DetailsDown):
		m.details.ScrollDown(1)
		return m, nil
	case key.Matches(msg, keys.Description):
		m.descExpanded = !m.descExpanded
		m.clampOffset()
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.offset -= m.frame().bodyHeight
		m.clampOffset()
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.offset += m.frame().bodyHeight
		m.clampOffset()
		return m, nil
	case key.Matches(msg, keys.Top):
		m.offset = 0
		return m, nil
	case key.Matches(msg, keys.Bottom):
		m.offset = m.layout.LineCount()
		m.clampOffset()
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.state = stateNormal
		return m, nil
	case "ctrl+u":
		m.setQuery("")
		return m, nil
	case "ctrl+c":
		return m.quit()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m.query = v
		m.offset = 0
		m.relayout(true)
	}
	return m, cmd
}

func (m Model) handleFinderKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.finder.Update(msg)
	switch outcome {
	case finderCancelled:
		m.finder = nil
		m.state = stateNormal
	case finderChosen:
		chip, _ := m.finder.Selected()
		m.finder = nil
		m.state = stateNormal
		if !m.selection.IsSelected(chip.ID) {
			m.toggleEntity(chip.ID)
		}
	}
	return m, cmd
}

func (m Model) handleNotificationsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "q":
		m.notificationModal = nil
		m.state = stateNormal
	case "up", "k":
		m.notificationModal.ScrollUp()
	case "down", "j":
		m.notificationModal.ScrollDown()
	case "D":
		if err := m.notificationModal.Clear(); err != nil {
			return m, m.notifyError("clear notifications: %v", err)
		}
	}
	return m, nil
}

// --- Entity selection ---

// toggleEntity applies the selection toggle and brings the first highlighted
// passage into view. Playback is left alone.
func (m *Model) toggleEntity(id string) {
	m.selection.Select(id)
	m.rawDetails = false
	m.details.SetYOffset(0)
	m.relayout(true)

	if line, ok := m.layout.FirstHighlightLine(); ok {
		m.scrollTo(line)
	}
}

func (m *Model) closeDetails() {
	if _, ok := m.selection.Selected(); !ok {
		return
	}
	m.selection.Clear()
	m.rawDetails = false
	m.relayout(true)
}

func (m *Model) moveChipFocus(delta int) {
	n := len(m.chips)
	if n == 0 {
		return
	}
	switch {
	case m.chipFocus < 0 && delta > 0:
		m.chipFocus = 0
	case m.chipFocus < 0:
		m.chipFocus = n - 1
	default:
		m.chipFocus = (m.chipFocus + delta + n) % n
	}
}

func (m *Model) setQuery(q string) {
	m.search.SetValue(q)
	if q == m.query {
		return
	}
	m.query = q
	m.offset = 0
	m.relayout(true)
}

// --- Transcript cursor and playback ---

func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.chipFocus >= 0 && m.chipFocus < len(m.chips) {
		m.toggleEntity(m.chips[m.chipFocus].ID)
		return m, nil
	}
	if m.cursor >= 0 {
		m.clickWord(m.cursor)
	}
	return m, nil
}

// back unwinds one level: chip focus, then the word cursor and its preview.
func (m Model) back() (tea.Model, tea.Cmd) {
	if m.chipFocus >= 0 {
		m.chipFocus = -1
		return m, nil
	}
	m.leaveWords()
	return m, nil
}

// hoverWord moves the pointer onto a word. Moving between words of the same
// snippet keeps a running preview or persistent playback; entering another
// snippet, or any word once playback is back to Idle, seeks again.
func (m *Model) hoverWord(wi int) {
	t, ok := m.layout.Word(wi)
	if !ok {
		return
	}
	m.cursor = wi
	if t.snippet == m.hoverSnippet && m.controller.State() != playback.Idle {
		return
	}
	m.hoverSnippet = t.snippet
	if m.hoverPreview {
		start, _ := m.layout.SnippetStart(wi)
		m.controller.Hover(start)
	}
}

// leaveWords handles the pointer leaving every word.
func (m *Model) leaveWords() {
	m.cursor = -1
	if m.hoverSnippet < 0 {
		return
	}
	m.hoverSnippet = -1
	m.controller.HoverLeave()
}

func (m *Model) clickWord(wi int) {
	t, ok := m.layout.Word(wi)
	if !ok {
		return
	}
	m.cursor = wi
	m.hoverSnippet = t.snippet
	start, _ := m.layout.SnippetStart(wi)
	m.controller.Click(start)
}

func (m *Model) moveCursor(delta int) {
	m.chipFocus = -1
	if len(m.layout.words) == 0 {
		return
	}

	wi := m.cursor
	if wi < 0 {
		wi, _ = m.layout.FirstWordOnLine(m.offset)
	} else {
		wi = min(max(wi+delta, 0), len(m.layout.words)-1)
	}
	m.hoverWord(wi)
	if t, ok := m.layout.Word(wi); ok {
		m.scrollTo(t.line)
	}
}

func (m *Model) moveCursorVertical(delta int) {
	m.chipFocus = -1
	if len(m.layout.words) == 0 {
		return
	}

	wi := m.cursor
	if wi < 0 {
		wi, _ = m.layout.FirstWordOnLine(m.offset)
	} else if next, ok := m.layout.WordVertical(wi, delta); ok {
		wi = next
	}
	m.hoverWord(wi)
	if t, ok := m.layout.Word(wi); ok {
		m.scrollTo(t.line)
	}
}

// pauseResume stops persistent playback, or resumes it at the last reported
// position.
func (m *Model) pauseResume() {
	if !m.hasMedia {
		return
	}
	if m.controller.State() == playback.Persistent {
		m.controller.Stop()
		return
	}
	m.controller.Click(m.position)
}

func (m *Model) seekBy(delta float64) {
	if !m.hasMedia {
		return
	}
	m.controller.Click(max(m.position+delta, 0))
}

func (m *Model) adjustVolume(delta float64) {
	if !m.hasMedia {
		return
	}
	next := min(max(m.volume+delta, 0), media.MaxVolume)
	if next == m.volume {
		return
	}
	m.volume = next
	m.queue.SetVolume(next)
}

func (m Model) openPlayerPage() tea.Cmd {
	if m.openPlayer == nil {
		return m.notifyInfo("%s has no page to open", m.playerName)
	}
	open := m.openPlayer
	return func() tea.Msg {
		return playerOpenedMsg{err: open(context.Background())}
	}
}

// --- Mouse ---

func (m Model) handleMouseMotion(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if m.state != stateNormal && m.state != stateSearching {
		return m, nil
	}

	f := m.frame()
	if wi, ok := m.wordAt(f, mouse.X, mouse.Y); ok {
		m.hoverWord(wi)
		return m, nil
	}
	if m.cursor >= 0 || m.hoverSnippet >= 0 {
		m.leaveWords()
	}
	return m, nil
}

func (m Model) handleMouseClick(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	if m.state != stateNormal && m.state != stateSearching {
		return m, nil
	}

	f := m.frame()
	x, y := mouse.X, mouse.Y

	switch {
	case y == f.searchRow:
		m.state = stateSearching
		cmd := m.search.Focus()
		return m, cmd

	case y >= f.chipsTop && y < f.chipsTop+len(f.chips.lines):
		if i, ok := f.chips.ChipAt(y-f.chipsTop, x-gutter); ok {
			m.chipFocus = i
			m.toggleEntity(m.chips[i].ID)
		}

	case f.header.descTo > 0 && y >= f.header.descFrom && y < f.header.descTo:
		m.descExpanded = !m.descExpanded
		m.clampOffset()

	case y >= f.bodyTop && y < f.bodyTop+f.bodyHeight:
		if wi, ok := m.wordAt(f, x, y); ok {
			m.clickWord(wi)
		}

	case f.footerTop >= 0 && y == f.footerTop+1 && x >= f.closeX0 && x < f.closeX1:
		m.closeDetails()

	case y == f.statusRow && x >= f.progressX0 && x < f.progressX1:
		if d := m.controller.Duration(); d > 0 && m.hasMedia {
			frac := float64(x-f.progressX0) / float64(f.progressX1-f.progressX0)
			m.controller.Click(frac * d)
		}
	}

	if m.state == stateSearching {
		m.search.Blur()
		m.state = stateNormal
	}
	return m, nil
}

func (m Model) handleMouseWheel(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if m.state != stateNormal && m.state != stateSearching {
		if m.state == stateShowingNotifications && m.notificationModal != nil {
			if mouse.Button == tea.MouseWheelUp {
				m.notificationModal.ScrollUp()
			} else {
				m.notificationModal.ScrollDown()
			}
		}
		return m, nil
	}

	f := m.frame()
	up := mouse.Button == tea.MouseWheelUp

	if f.footerTop >= 0 && mouse.Y > f.footerTop && mouse.Y < f.statusRow {
		if up {
			m.details.ScrollUp(wheelStep)
		} else {
			m.details.ScrollDown(wheelStep)
		}
		return m, nil
	}

	if up {
		m.offset -= wheelStep
	} else {
		m.offset += wheelStep
	}
	m.clampOffset()
	return m, nil
}

// wordAt maps a screen cell to a word of the transcript body.
func (m Model) wordAt(f frame, x, y int) (int, bool) {
	if y < f.bodyTop || y >= f.bodyTop+f.bodyHeight {
		return 0, false
	}
	return m.layout.WordAt(m.offset+y-f.bodyTop, x-gutter)
}
