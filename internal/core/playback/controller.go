// Package playback decides what should be playing and why: a hover preview
// that stops when the pointer leaves, or a persistent play started by a click.
package playback

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/media"
)

// State is the playback intent state.
type State int

const (
	Idle State = iota
	Previewing
	Persistent
)

func (s State) String() string {
	switch s {
	case Previewing:
		return "previewing"
	case Persistent:
		return "playing"
	default:
		return "idle"
	}
}

// Player is the command surface the controller drives. *media.Queue
// satisfies it.
type Player interface {
	SeekAndPlay(seconds float64)
	Pause()
}

// Intent is a snapshot of the current playback intent.
type Intent struct {
	Active      bool
	Persistent  bool
	SourceStart float64
}

// Controller is the hover/click playback state machine.
//
//	Idle/Previewing --hover--> Previewing
//	Previewing --leave--> Idle (pause)
//	any --click--> Persistent
//	any --ended--> Idle
//
// Hover never interrupts Persistent and leave never pauses it.
type Controller struct {
	player      Player
	playAt      func(seconds float64)
	onFirstPlay func()
	logger      zerolog.Logger

	state       State
	source      float64
	duration    float64
	firstPlayed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPlayAt routes seeks to fn instead of the player, letting a parent own
// the media handle while the controller only decides when to seek.
func WithPlayAt(fn func(seconds float64)) Option {
	return func(c *Controller) { c.playAt = fn }
}

// WithFirstPlay registers fn to run on the first click of the session.
func WithFirstPlay(fn func()) Option {
	return func(c *Controller) { c.onFirstPlay = fn }
}

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller in the Idle state. A nil player turns every
// playback command into a no-op while state transitions still happen.
func New(player Player, opts ...Option) *Controller {
	c := &Controller{player: player, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Intent returns the current intent.
func (c *Controller) Intent() Intent {
	return Intent{
		Active:      c.state != Idle,
		Persistent:  c.state == Persistent,
		SourceStart: c.source,
	}
}

// SetDuration records the media length used to clamp seeks. Zero or less
// means unknown.
func (c *Controller) SetDuration(seconds float64) {
	c.duration = seconds
}

// Duration returns the known media length, zero when unknown.
func (c *Controller) Duration() float64 {
	return c.duration
}

// Hover starts a preview at start unless persistent playback is running.
func (c *Controller) Hover(start float64) {
	if c.state == Persistent {
		return
	}
	c.state = Previewing
	c.source = start
	c.seekAndPlay(start)
}

// HoverLeave stops a preview. Persistent playback keeps going.
func (c *Controller) HoverLeave() {
	if c.state != Previewing {
		return
	}
	c.state = Idle
	if c.player != nil {
		c.player.Pause()
	}
}

// Click starts persistent playback at start from any state.
func (c *Controller) Click(start float64) {
	c.state = Persistent
	c.source = start
	c.seekAndPlay(start)

	if !c.firstPlayed {
		c.firstPlayed = true
		if c.onFirstPlay != nil {
			c.onFirstPlay()
		}
	}
}

// Stop pauses persistent playback and returns to Idle.
func (c *Controller) Stop() {
	if c.state == Idle {
		return
	}
	c.state = Idle
	if c.player != nil {
		c.player.Pause()
	}
}

// MediaEnded returns to Idle when the media reports end of playback.
func (c *Controller) MediaEnded() {
	c.state = Idle
}

func (c *Controller) seekAndPlay(start float64) {
	seconds := media.ClampSeconds(start, c.duration)
	c.logger.Debug().
		Float64("seconds", seconds).
		Str("state", c.state.String()).
		Msg("seek and play")

	if c.playAt != nil {
		c.playAt(seconds)
		return
	}
	if c.player != nil {
		c.player.SeekAndPlay(seconds)
	}
}
