package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/hark/internal/tui/components"
)

// KeyMap holds every binding of the transcript view.
type KeyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Search        key.Binding
	ClearSearch   key.Binding
	Finder        key.Binding
	NextChip      key.Binding
	PrevChip      key.Binding
	Activate      key.Binding
	Back          key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	PauseResume   key.Binding
	SeekBack      key.Binding
	SeekForward   key.Binding
	VolumeUp      key.Binding
	VolumeDown    key.Binding
	CloseDetails  key.Binding
	RawDetails    key.Binding
	Description   key.Binding
	Notifications key.Binding
	ClearHistory  key.Binding
	OpenPlayer    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Top           key.Binding
	Bottom        key.Binding
	DetailsUp     key.Binding
	DetailsDown   key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search transcript")),
		ClearSearch:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear search")),
		Finder:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find entity")),
		NextChip:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next entity")),
		PrevChip:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous entity")),
		Activate:      key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "toggle entity / play word")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop preview / back")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "word above")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "word below")),
		Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous word")),
		Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next word")),
		PauseResume:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause / resume")),
		SeekBack:      key.NewBinding(key.WithKeys(","), key.WithHelp(",", "back 10s")),
		SeekForward:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "forward 10s")),
		VolumeUp:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolumeDown:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		CloseDetails:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close details")),
		RawDetails:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raw details")),
		Description:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "show more / less")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		ClearHistory:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "clear notifications")),
		OpenPlayer:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open player page")),
		PageUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:           key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		DetailsUp:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "scroll details up")),
		DetailsDown:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "scroll details down")),
	}
}

func entry(b key.Binding) components.HelpEntry {
	h := b.Help()
	return components.HelpEntry{Key: h.Key, Desc: h.Desc}
}

// HelpSections groups the bindings for the help dialog.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title: "Transcript",
			Entries: []components.HelpEntry{
				entry(k.Up), entry(k.Down), entry(k.Left), entry(k.Right),
				entry(k.Activate), entry(k.Back),
				entry(k.PageUp), entry(k.PageDown), entry(k.Top), entry(k.Bottom),
			},
		},
		{
			Title: "Playback",
			Entries: []components.HelpEntry{
				entry(k.PauseResume), entry(k.SeekBack), entry(k.SeekForward),
				entry(k.VolumeUp), entry(k.VolumeDown), entry(k.OpenPlayer),
			},
		},
		{
			Title: "Entities",
			Entries: []components.HelpEntry{
				entry(k.NextChip), entry(k.PrevChip), entry(k.Finder),
				entry(k.CloseDetails), entry(k.RawDetails), entry(k.DetailsUp), entry(k.DetailsDown),
			},
		},
		{
			Title: "General",
			Entries: []components.HelpEntry{
				entry(k.Search), entry(k.ClearSearch), entry(k.Description),
				entry(k.Notifications), entry(k.Help), entry(k.Quit),
			},
		},
	}
}
