// Package media defines the contract for remote media players and the
// command queue that gates commands on player readiness.
package media

// Op is a player command.
type Op string

const (
	OpSeekTo Op = "seekTo"
	OpPlay   Op = "play"
	OpPause  Op = "pause"
	// OpVolume sets the volume; its argument is a float64 percentage.
	OpVolume Op = "volume"
)

// Target is a command-driven media player. Implementations may become ready
// asynchronously; they announce it through the single OnReadyChanged slot.
type Target interface {
	// Ready reports whether the player accepts commands.
	Ready() bool
	// OnReadyChanged replaces the readiness callback. The callback may be
	// invoked from any goroutine.
	OnReadyChanged(fn func(ready bool))
	// Send applies a command to the player.
	Send(op Op, args ...any) error
}

// EventKind identifies a player-originated event.
type EventKind int

const (
	EventReady EventKind = iota
	EventEnded
	EventTimeUpdate
	EventDuration
	EventError
	EventNotReady
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventEnded:
		return "ended"
	case EventTimeUpdate:
		return "time-update"
	case EventDuration:
		return "duration"
	case EventError:
		return "error"
	case EventNotReady:
		return "not-ready"
	default:
		return "unknown"
	}
}

// Event is a notification from a player. Seconds carries the position for
// EventTimeUpdate and the length for EventDuration.
type Event struct {
	Kind    EventKind
	Seconds float64
	Err     error
}

// Observer is implemented by targets that report playback progress.
type Observer interface {
	// OnEvent replaces the event callback. The callback may be invoked from
	// any goroutine.
	OnEvent(fn func(Event))
}

// Nop is a Target for posts without playable media. It is never ready and
// discards every command.
type Nop struct{}

func (Nop) Ready() bool               { return false }
func (Nop) OnReadyChanged(func(bool)) {}
func (Nop) Send(Op, ...any) error     { return nil }
