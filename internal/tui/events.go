package tui

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/internal/source/jsonfile"
)

// waitForMediaEvent returns a command that waits for the next player event.
// A closed channel stops the listener.
func waitForMediaEvent(ch <-chan media.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return mediaEventMsg{event: ev}
	}
}

// waitForChange returns a command that waits for the next document change.
func waitForChange(ch <-chan jsonfile.ChangeEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{event: ev}
	}
}

func (m Model) handleMediaEvent(msg mediaEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.event
	cmds := []tea.Cmd{waitForMediaEvent(m.events)}

	m.logger.Debug().Str("event", ev.Kind.String()).Float64("seconds", ev.Seconds).Msg("media event")

	switch ev.Kind {
	case media.EventReady:
		m.playerReady = true
		m.queue.OnReady()
		cmds = append(cmds, m.notifyInfo("%s ready", m.playerName))
	case media.EventNotReady:
		m.playerReady = false
		m.queue.Reset()
	case media.EventEnded:
		m.controller.MediaEnded()
	case media.EventTimeUpdate:
		m.position = ev.Seconds
	case media.EventDuration:
		m.controller.SetDuration(ev.Seconds)
	case media.EventError:
		if ev.Err != nil {
			cmds = append(cmds, m.notifyError("%s: %v", m.playerName, ev.Err))
		}
	}

	return m, tea.Batch(cmds...)
}

// reloadPost reloads the post off the UI goroutine.
func (m Model) reloadPost() tea.Cmd {
	loader := m.reload
	if loader == nil {
		return waitForChange(m.changes)
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		post, err := loader.Load(ctx)
		return postReloadedMsg{post: post, err: err}
	}
}

// handlePostReloaded swaps in the reloaded post. The query, the selection
// (while its entity still exists) and playback are kept.
func (m Model) handlePostReloaded(msg postReloadedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForChange(m.changes)}

	if msg.err != nil {
		cmds = append(cmds, m.notifyError("reload failed: %v", msg.err))
		return m, tea.Batch(cmds...)
	}

	m.post = msg.post
	m.chips = highlight.Chips(msg.post.Mentions)
	if key, ok := m.selection.Selected(); ok {
		if !slices.ContainsFunc(m.chips, func(c highlight.Chip) bool { return c.ID == key }) {
			m.selection.Clear()
		}
	}
	if m.chipFocus >= len(m.chips) {
		m.chipFocus = -1
	}

	m.relayout(true)
	cmds = append(cmds, m.notifyInfo("Transcript reloaded"))
	return m, tea.Batch(cmds...)
}

func (m Model) handlePlayerOpened(msg playerOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.notifyError("open player: %v", msg.err)
	}
	return m, nil
}

func (m Model) handleDrainNotifications() (tea.Model, tea.Cmd) {
	for _, n := range m.notices.Drain() {
		m.notifyBus.Publish(n)
	}
	return m, tea.Batch(m.notices.WaitForSignal(), m.ensureToastTick())
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}
