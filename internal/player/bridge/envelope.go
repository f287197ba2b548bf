package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/colonyops/hark/internal/core/media"
)

// command is the envelope the page posts to the player frame.
type command struct {
	Event string `json:"event"`
	Func  string `json:"func"`
	Args  []any  `json:"args"`
}

// encodeCommand maps a media op to the frame's command envelope.
func encodeCommand(op media.Op, args ...any) ([]byte, error) {
	cmd := command{Event: "command", Args: []any{}}

	switch op {
	case media.OpSeekTo:
		if len(args) == 0 {
			return nil, fmt.Errorf("seekTo requires a position")
		}
		seconds, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("seekTo position must be float64, got %T", args[0])
		}
		cmd.Func = "seekTo"
		cmd.Args = []any{int(math.Floor(math.Max(seconds, 0))), true}
	case media.OpPlay:
		cmd.Func = "playVideo"
	case media.OpPause:
		cmd.Func = "pauseVideo"
	case media.OpVolume:
		if len(args) == 0 {
			return nil, fmt.Errorf("setVolume requires a level")
		}
		level, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("setVolume level must be float64, got %T", args[0])
		}
		// the frame takes an integer in [0, 100]
		cmd.Func = "setVolume"
		cmd.Args = []any{int(math.Round(math.Min(math.Max(level, 0), 100)))}
	default:
		return nil, fmt.Errorf("unsupported op %q", op)
	}

	return json.Marshal(cmd)
}

// Player states reported in infoDelivery.
const playerStateEnded = 0

// frameMessage is an inbound message from the player frame.
type frameMessage struct {
	Event string     `json:"event"`
	Info  *frameInfo `json:"info"`
}

type frameInfo struct {
	CurrentTime *float64 `json:"currentTime"`
	Duration    *float64 `json:"duration"`
	PlayerState *int     `json:"playerState"`
}

// decodeFrameMessage parses a relayed frame message. The frame posts JSON
// text, which some relays forward as a JSON string, so a string body is
// unwrapped once.
func decodeFrameMessage(body []byte) (frameMessage, error) {
	var msg frameMessage

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return msg, fmt.Errorf("decode frame message: %w", err)
		}
		body = []byte(inner)
	}

	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, fmt.Errorf("decode frame message: %w", err)
	}
	return msg, nil
}

// readiness is the change a frame message makes to the player's ready state.
type readiness int

const (
	readinessUnchanged readiness = iota
	readinessReady
	// readinessReset is sent by the page when its player frame (re)loads.
	// A reconnecting event stream alone keeps the current state.
	readinessReset
)

// frameLoadEvent is posted by the page itself, not by the player frame.
const frameLoadEvent = "frameLoad"

// events maps a frame message to media events and the readiness change it
// carries.
func (m frameMessage) events() (events []media.Event, change readiness) {
	switch m.Event {
	case frameLoadEvent:
		return nil, readinessReset
	case "onReady":
		return []media.Event{{Kind: media.EventReady}}, readinessReady
	case "onError":
		return []media.Event{{Kind: media.EventError, Err: fmt.Errorf("youtube player error")}}, readinessUnchanged
	case "infoDelivery":
		if m.Info == nil {
			return nil, readinessUnchanged
		}
		if m.Info.Duration != nil && *m.Info.Duration > 0 {
			events = append(events, media.Event{Kind: media.EventDuration, Seconds: *m.Info.Duration})
		}
		if m.Info.CurrentTime != nil {
			events = append(events, media.Event{Kind: media.EventTimeUpdate, Seconds: *m.Info.CurrentTime})
		}
		if m.Info.PlayerState != nil && *m.Info.PlayerState == playerStateEnded {
			events = append(events, media.Event{Kind: media.EventEnded})
		}
	}
	return events, readinessUnchanged
}
