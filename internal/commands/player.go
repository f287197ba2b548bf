package commands

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/config"
	"github.com/colonyops/hark/internal/core/logging"
	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/internal/core/notify"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/player/bridge"
	"github.com/colonyops/hark/internal/player/mpv"
	"github.com/colonyops/hark/internal/tui"
	"github.com/colonyops/hark/pkg/executil"
)

const shutdownTimeout = 5 * time.Second

// playerSession is a media target together with its lifecycle hooks. The
// view subscribes to the target before start runs so no readiness change
// is missed.
type playerSession struct {
	target media.Target
	name   string
	start  func(ctx context.Context)
	open   func(ctx context.Context) error // nil when the player has no page
	close  func()
}

func noPlayer() playerSession {
	return playerSession{
		target: media.Nop{},
		name:   config.PlayerNone,
		start:  func(context.Context) {},
		close:  func() {},
	}
}

// resolvePlayerKind picks the player for auto: the bridge for YouTube
// videos, mpv for any other media URL, none without media.
func resolvePlayerKind(kind string, post transcript.Post) string {
	if kind != config.PlayerAuto {
		return kind
	}
	if _, ok := bridge.VideoID(post.VideoURL); ok {
		return config.PlayerBridge
	}
	if post.MediaURL() != "" {
		return config.PlayerMPV
	}
	return config.PlayerNone
}

// adapterLogger returns a component logger whose warnings and errors are
// also shown in the view.
func adapterLogger(name string, notices *tui.NotificationBuffer) zerolog.Logger {
	return logging.Component(name).Hook(logging.NotifyHook{
		MinLevel: zerolog.WarnLevel,
		Notify: func(level zerolog.Level, msg string) {
			n := notify.Notification{Level: notify.LevelWarning, Message: name + ": " + msg}
			if level >= zerolog.ErrorLevel {
				n.Level = notify.LevelError
			}
			notices.Push(n)
		},
	})
}

// newPlayer builds the media target for post. A non-empty warning means the
// requested player could not serve the post and no player is used.
func newPlayer(ctx context.Context, cfg config.PlayerConfig, kind string, post transcript.Post, notices *tui.NotificationBuffer, debug bool) (playerSession, string, error) {
	switch resolvePlayerKind(kind, post) {
	case config.PlayerMPV:
		url := post.MediaURL()
		if url == "" {
			return noPlayer(), "this post has no media URL to play", nil
		}
		return newMPVSession(cfg.MPV, url, post.AudioURL == "", notices), "", nil

	case config.PlayerBridge:
		id, ok := bridge.VideoID(post.VideoURL)
		if !ok {
			return noPlayer(), "this post has no YouTube video", nil
		}
		s, err := newBridgeSession(ctx, cfg.Bridge, id, post.DisplayTitle(), notices, debug)
		return s, "", err
	}
	return noPlayer(), "", nil
}

func newMPVSession(cfg config.MPVConfig, url string, video bool, notices *tui.NotificationBuffer) playerSession {
	p := mpv.New(mpv.Options{
		Path:         cfg.Path,
		Args:         cfg.Args,
		Video:        cfg.Video && video,
		SocketDir:    cfg.SocketDir,
		ReadyTimeout: time.Duration(cfg.ReadyTimeoutSeconds) * time.Second,
	}, &executil.RealExecutor{}, adapterLogger(config.PlayerMPV, notices))

	var wg sync.WaitGroup
	return playerSession{
		target: p,
		name:   config.PlayerMPV,
		start: func(ctx context.Context) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := p.Start(ctx, url); err != nil {
					notices.Errorf("mpv: %v", err)
				}
			}()
		},
		close: func() {
			wg.Wait()
			if err := p.Close(); err != nil {
				l := logging.Component(config.PlayerMPV)
				l.Warn().Err(err).Msg("close mpv")
			}
		},
	}
}

func newBridgeSession(ctx context.Context, cfg config.BridgeConfig, videoID, title string, notices *tui.NotificationBuffer, debug bool) (playerSession, error) {
	s := bridge.New(bridge.Options{
		Addr:    cfg.Addr,
		VideoID: videoID,
		Title:   title,
		Debug:   debug,
	}, adapterLogger(config.PlayerBridge, notices))

	if err := s.Start(ctx); err != nil {
		return playerSession{}, err
	}

	exec := &executil.RealExecutor{}
	open := func(ctx context.Context) error {
		return bridge.OpenBrowser(ctx, exec, cfg.BrowserCommand, s.URL())
	}

	return playerSession{
		target: s,
		name:   config.PlayerBridge,
		start: func(ctx context.Context) {
			if !cfg.OpenBrowser {
				notices.Push(notify.Notification{Level: notify.LevelInfo, Message: "open " + s.URL() + " to play"})
				return
			}
			go func() {
				if err := open(ctx); err != nil {
					notices.Errorf("open browser: %v", err)
				}
			}()
		},
		open: open,
		close: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				l := logging.Component(config.PlayerBridge)
				l.Warn().Err(err).Msg("shutdown bridge")
			}
		},
	}, nil
}
