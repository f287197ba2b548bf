package mpv

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/colonyops/hark/internal/core/media"
)

// Property observer ids sent with observe_property.
const (
	observeTimePos  = 1
	observeDuration = 2
	observeEOF      = 3
)

// request is one outbound IPC command line.
type request struct {
	Command []any `json:"command"`
}

// message is an inbound IPC line: either an event or a command reply.
type message struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Reason    string          `json:"reason"`
	Error     string          `json:"error"`
	FileError string          `json:"file_error"`
}

// encodeCommand translates a media op into an mpv IPC line, newline included.
func encodeCommand(op media.Op, args ...any) ([]byte, error) {
	var cmd []any

	switch op {
	case media.OpSeekTo:
		if len(args) == 0 {
			return nil, fmt.Errorf("seekTo requires a position")
		}
		seconds, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("seekTo position must be float64, got %T", args[0])
		}
		cmd = []any{"seek", math.Max(seconds, 0), "absolute"}
	case media.OpPlay:
		cmd = []any{"set_property", "pause", false}
	case media.OpPause:
		cmd = []any{"set_property", "pause", true}
	case media.OpVolume:
		if len(args) == 0 {
			return nil, fmt.Errorf("volume requires a level")
		}
		level, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("volume level must be float64, got %T", args[0])
		}
		cmd = []any{"set_property", "volume", math.Max(level, 0)}
	default:
		return nil, fmt.Errorf("unsupported op %q", op)
	}

	return encodeRequest(cmd...)
}

func encodeRequest(cmd ...any) ([]byte, error) {
	data, err := json.Marshal(request{Command: cmd})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeEvent maps an inbound line to a media event. ok is false for lines
// that carry nothing the player reports (command replies, unrelated events).
// readyChange is non-nil when the line changes readiness.
func decodeEvent(line []byte) (ev media.Event, readyChange *bool, ok bool, err error) {
	var msg message
	if err := json.Unmarshal(line, &msg); err != nil {
		return ev, nil, false, fmt.Errorf("decode ipc line: %w", err)
	}

	switch msg.Event {
	case "file-loaded":
		ready := true
		return media.Event{Kind: media.EventReady}, &ready, true, nil
	case "start-file":
		ready := false
		return media.Event{Kind: media.EventNotReady}, &ready, true, nil
	case "end-file":
		switch msg.Reason {
		case "eof":
			return media.Event{Kind: media.EventEnded}, nil, true, nil
		case "error":
			return media.Event{Kind: media.EventError, Err: fmt.Errorf("mpv could not play file: %s", msg.FileError)}, nil, true, nil
		}
		return ev, nil, false, nil
	case "property-change":
		if msg.Name == "eof-reached" {
			// --keep-open holds the last frame instead of emitting end-file
			var reached bool
			if err := json.Unmarshal(msg.Data, &reached); err != nil || !reached {
				return ev, nil, false, nil
			}
			return media.Event{Kind: media.EventEnded}, nil, true, nil
		}
		var value *float64
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &value); err != nil {
				return ev, nil, false, fmt.Errorf("decode %s: %w", msg.Name, err)
			}
		}
		if value == nil {
			return ev, nil, false, nil
		}
		switch msg.Name {
		case "time-pos":
			return media.Event{Kind: media.EventTimeUpdate, Seconds: *value}, nil, true, nil
		case "duration":
			return media.Event{Kind: media.EventDuration, Seconds: *value}, nil, true, nil
		}
	}

	return ev, nil, false, nil
}
