// Package tui implements the interactive transcript view: the post header,
// entity chips, the highlighted transcript that drives the media player, and
// the entity details footer.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/internal/core/notify"
	"github.com/colonyops/hark/internal/core/playback"
	"github.com/colonyops/hark/internal/core/selection"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/source"
	"github.com/colonyops/hark/internal/source/jsonfile"
	"github.com/colonyops/hark/internal/tui/components"
	tuinotify "github.com/colonyops/hark/internal/tui/notify"
)

// UIState is the input mode of the view.
type UIState int

const (
	stateNormal UIState = iota
	stateSearching
	stateFinder
	stateShowingHelp
	stateShowingNotifications
)

const (
	seekStep      = 10.0
	volumeStep    = 10.0
	wheelStep     = 3
	reloadTimeout = 10 * time.Second
)

// Options configures the transcript view.
type Options struct {
	Post   transcript.Post
	Target media.Target // nil or media.Nop when the post has no playable media

	PlayerName       string
	HoverPreview     bool
	WrapWidth        int // 0 uses the terminal width
	DescriptionLines int

	Reload  source.Loader               // reloads the post on Changes
	Changes <-chan jsonfile.ChangeEvent // optional
	Notices *NotificationBuffer         // notifications raised off the UI goroutine

	Store    notify.Store
	Warnings []string // shown as toasts once the window is sized

	OnFirstPlay func()                          // runs on the first click of the session
	OpenPlayer  func(ctx context.Context) error // opens the player page, if any

	Logger zerolog.Logger
	Now    func() time.Time
}

// Model is the Bubble Tea model for the transcript view.
type Model struct {
	post      transcript.Post
	chips     []highlight.Chip
	selection *selection.Store
	query     string

	queue        *media.Queue
	controller   *playback.Controller
	events       <-chan media.Event
	playerName   string
	hasMedia     bool
	playerReady  bool
	position     float64
	volume       float64 // percent, last level sent to the player
	hoverPreview bool

	layout       transcriptLayout
	offset       int // first visible transcript line
	cursor       int // word index under the pointer or keyboard cursor, -1 for none
	hoverSnippet int // filtered snippet being previewed, -1 for none
	chipFocus    int // -1 for none

	wrapWidth    int
	descLines    int
	descExpanded bool

	details    viewport.Model
	rawDetails bool

	search textinput.Model
	finder *Finder
	keys   KeyMap

	reload     source.Loader
	changes    <-chan jsonfile.ChangeEvent
	notices    *NotificationBuffer
	openPlayer func(ctx context.Context) error

	notifyBus         *tuinotify.Bus
	toastController   *ToastController
	toastView         *ToastView
	notificationModal *NotificationModal
	helpDialog        *components.HelpDialog
	startupWarnings   []string

	logger zerolog.Logger
	now    func() time.Time

	width    int
	height   int
	state    UIState
	quitting bool
}

// mediaEventMsg carries a player event into the Update loop.
type mediaEventMsg struct {
	event media.Event
}

// fileChangedMsg is sent when the watched post document changes.
type fileChangedMsg struct {
	event jsonfile.ChangeEvent
}

// postReloadedMsg is sent when a reload finishes.
type postReloadedMsg struct {
	post transcript.Post
	err  error
}

// playerOpenedMsg is sent when opening the player page finishes.
type playerOpenedMsg struct {
	err error
}

// New creates the transcript view model.
func New(opts Options) Model {
	target := opts.Target
	if target == nil {
		target = media.Nop{}
	}

	logger := opts.Logger
	queue := media.NewQueue(target, logger.With().Str("cmp", "queue").Logger())

	ctrlOpts := []playback.Option{playback.WithLogger(logger.With().Str("cmp", "playback").Logger())}
	if opts.OnFirstPlay != nil {
		ctrlOpts = append(ctrlOpts, playback.WithFirstPlay(opts.OnFirstPlay))
	}
	controller := playback.New(queue, ctrlOpts...)

	store := opts.Store
	if store == nil {
		store = notify.NewMemory(notify.DefaultHistory)
	}
	bus := tuinotify.NewBus(store, logger.With().Str("cmp", "notify").Logger())
	toastCtrl := NewToastController()
	bus.Subscribe(toastCtrl.Push)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search transcript..."
	search.SetStyles(textinput.DefaultStyles(true))

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	descLines := opts.DescriptionLines
	if descLines <= 0 {
		descLines = 2
	}

	_, isNop := target.(media.Nop)
	playerName := opts.PlayerName
	if playerName == "" || isNop {
		playerName = "no player"
	}

	keys := DefaultKeyMap()
	m := Model{
		post:              opts.Post,
		chips:             highlight.Chips(opts.Post.Mentions),
		selection:         &selection.Store{},
		queue:             queue,
		controller:        controller,
		events:            media.Subscribe(target),
		playerName:        playerName,
		hasMedia:          !isNop,
		playerReady:       target.Ready(),
		volume:            media.MaxVolume,
		hoverPreview:      opts.HoverPreview,
		cursor:            -1,
		hoverSnippet:      -1,
		chipFocus:         -1,
		wrapWidth:         opts.WrapWidth,
		descLines:         descLines,
		details:           viewport.New(viewport.WithWidth(80), viewport.WithHeight(1)),
		search:            search,
		keys:              keys,
		reload:            opts.Reload,
		changes:           opts.Changes,
		notices:           opts.Notices,
		openPlayer:        opts.OpenPlayer,
		notifyBus:         bus,
		toastController:   toastCtrl,
		toastView:         NewToastView(toastCtrl),
		helpDialog:        components.NewHelpDialog("Keyboard shortcuts", keys.HelpSections()),
		startupWarnings:   opts.Warnings,
		logger:            logger,
		now:               now,
		width:             80,
		height:            24,
	}
	m.relayout(true)
	return m
}

// Init starts the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForMediaEvent(m.events)}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if m.notices != nil {
		cmds = append(cmds, m.notices.WaitForSignal())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Player and source events
	case mediaEventMsg:
		return m.handleMediaEvent(msg)
	case fileChangedMsg:
		return m, m.reloadPost()
	case postReloadedMsg:
		return m.handlePostReloaded(msg)
	case playerOpenedMsg:
		return m.handlePlayerOpened(msg)

	// Notifications
	case drainNotificationsMsg:
		return m.handleDrainNotifications()
	case toastTickMsg:
		return m.handleToastTick()

	// Input
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg.Mouse())
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg.Mouse())
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg.Mouse())
	}

	if m.state == stateSearching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Selected returns the selected entity key.
func (m Model) Selected() (string, bool) {
	return m.selection.Selected()
}

// Query returns the active search query.
func (m Model) Query() string {
	return m.query
}

// PlaybackState returns the playback intent state.
func (m Model) PlaybackState() playback.State {
	return m.controller.State()
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.controller.Stop()
	return m, tea.Quit
}

// ensureToastTick schedules the toast timer if toasts are showing and no
// tick is pending.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toastController.HasToasts() || m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

// notifyError publishes an error notification and starts the toast timer.
func (m *Model) notifyError(format string, args ...any) tea.Cmd {
	m.notifyBus.Errorf(format, args...)
	return m.ensureToastTick()
}

func (m *Model) notifyInfo(format string, args ...any) tea.Cmd {
	m.notifyBus.Infof(format, args...)
	return m.ensureToastTick()
}
