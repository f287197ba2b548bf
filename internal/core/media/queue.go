package media

import (
	"math"

	"github.com/rs/zerolog"
)

// Command is a buffered player command.
type Command struct {
	Op   Op
	Args []any
}

// Queue buffers commands issued before its target is ready and applies them
// in submission order once it is. After readiness, commands go straight
// through.
//
// A Queue is not safe for concurrent use. All calls, including OnReady, must
// come from the goroutine that owns the view (the UI event loop). Adapters
// deliver readiness to that goroutine as events.
type Queue struct {
	target   Target
	ready    bool
	draining bool
	pending  []Command
	logger   zerolog.Logger
}

// NewQueue creates a queue for target. A nil or Nop target makes every
// operation a no-op. If the target already reports ready, commands are
// applied at once.
func NewQueue(target Target, logger zerolog.Logger) *Queue {
	switch target.(type) {
	case Nop, *Nop:
		target = nil
	}

	q := &Queue{target: target, logger: logger}
	if target != nil {
		q.ready = target.Ready()
	}
	return q
}

// Ready reports whether commands are applied immediately.
func (q *Queue) Ready() bool {
	return q.ready
}

// Pending returns a copy of the buffered commands.
func (q *Queue) Pending() []Command {
	out := make([]Command, len(q.pending))
	copy(out, q.pending)
	return out
}

// Enqueue applies the command now if the target is ready and buffers it
// otherwise.
func (q *Queue) Enqueue(op Op, args ...any) {
	if q.target == nil {
		return
	}

	if !q.ready || q.draining {
		q.pending = append(q.pending, Command{Op: op, Args: args})
		return
	}
	q.apply(Command{Op: op, Args: args})
}

// OnReady marks the target ready and drains the buffer in FIFO order.
// Commands enqueued while draining are appended to the tail and applied in
// the same pass.
func (q *Queue) OnReady() {
	if q.target == nil || q.draining {
		return
	}

	q.draining = true
	for i := 0; i < len(q.pending); i++ {
		q.apply(q.pending[i])
	}
	q.pending = nil
	q.draining = false
	q.ready = true
}

// Reset marks the target not ready, for example after the player restarted.
// Already buffered commands are kept.
func (q *Queue) Reset() {
	q.ready = false
}

// SeekAndPlay seeks to seconds, clamped to be non-negative, and starts
// playback.
func (q *Queue) SeekAndPlay(seconds float64) {
	q.Enqueue(OpSeekTo, ClampSeconds(seconds, 0))
	q.Enqueue(OpPlay)
}

// Pause pauses playback.
func (q *Queue) Pause() {
	q.Enqueue(OpPause)
}

// MaxVolume is the loudest volume SetVolume accepts.
const MaxVolume = 100.0

// SetVolume sets the player volume, clamped to [0, MaxVolume] percent.
func (q *Queue) SetVolume(percent float64) {
	if math.IsNaN(percent) {
		percent = 0
	}
	q.Enqueue(OpVolume, min(max(percent, 0), MaxVolume))
}

func (q *Queue) apply(cmd Command) {
	if err := q.target.Send(cmd.Op, cmd.Args...); err != nil {
		q.logger.Warn().Err(err).Str("op", string(cmd.Op)).Msg("player command failed")
	}
}

// ClampSeconds clamps seconds to [0, upper]. An upper bound <= 0 means the
// duration is unknown and only the lower bound applies. NaN clamps to zero.
func ClampSeconds(seconds, upper float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	if upper > 0 && seconds > upper {
		return upper
	}
	return seconds
}
