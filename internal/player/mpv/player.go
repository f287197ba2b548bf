// Package mpv drives a local mpv process over its JSON IPC socket.
package mpv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/pkg/executil"
)

const (
	dialInterval = 50 * time.Millisecond
	maxLineSize  = 1 << 20
)

// ErrNotConnected is returned by Send before the IPC socket is connected.
var ErrNotConnected = errors.New("mpv: not connected")

// Options configures how mpv is launched.
type Options struct {
	Path         string
	Args         []string
	Video        bool
	SocketDir    string
	ReadyTimeout time.Duration
}

// Player is a media.Target and media.Observer backed by mpv.
type Player struct {
	opts   Options
	exec   executil.Executor
	logger zerolog.Logger

	writeMu sync.Mutex
	conn    net.Conn
	proc    executil.Process
	socket  string

	ready   atomic.Bool
	closing atomic.Bool

	cbMu    sync.RWMutex
	readyFn func(bool)
	eventFn func(media.Event)

	wg sync.WaitGroup
}

// New creates a player. Nothing is launched until Start.
func New(opts Options, exec executil.Executor, logger zerolog.Logger) *Player {
	if opts.Path == "" {
		opts.Path = "mpv"
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 15 * time.Second
	}
	if opts.SocketDir == "" {
		opts.SocketDir = os.TempDir()
	}
	return &Player{opts: opts, exec: exec, logger: logger}
}

// Start launches mpv idle and paused, connects to its IPC socket and loads
// url. Readiness is signalled once mpv reports the file as loaded.
func (p *Player) Start(ctx context.Context, url string) error {
	if err := os.MkdirAll(p.opts.SocketDir, 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}

	p.socket = filepath.Join(p.opts.SocketDir, "mpv-"+uuid.NewString()[:8]+".sock")

	proc, err := p.exec.Start(ctx, p.opts.Path, p.args()...)
	if err != nil {
		return err
	}
	p.proc = proc

	p.wg.Add(1)
	go p.waitProcess()

	dialCtx, cancel := context.WithTimeout(ctx, p.opts.ReadyTimeout)
	defer cancel()

	if err := p.Connect(dialCtx, p.socket); err != nil {
		_ = proc.Kill()
		return err
	}

	return p.write(encodeRequest("loadfile", url, "replace"))
}

func (p *Player) args() []string {
	args := []string{
		"--idle=yes",
		"--keep-open=yes",
		"--pause",
		"--no-terminal",
		"--input-ipc-server=" + p.socket,
	}
	if !p.opts.Video {
		args = append(args, "--no-video", "--force-window=no")
	}
	return append(args, p.opts.Args...)
}

// Connect dials the IPC socket at path, retrying until ctx is done, then
// subscribes to position and duration updates.
func (p *Player) Connect(ctx context.Context, path string) error {
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", path)
		if err == nil {
			p.writeMu.Lock()
			p.conn = conn
			p.writeMu.Unlock()
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to mpv ipc %s: %w", path, err)
		case <-time.After(dialInterval):
		}
	}

	p.wg.Add(1)
	go p.readLoop(p.conn)

	if err := p.write(encodeRequest("observe_property", observeTimePos, "time-pos")); err != nil {
		return err
	}
	if err := p.write(encodeRequest("observe_property", observeDuration, "duration")); err != nil {
		return err
	}
	return p.write(encodeRequest("observe_property", observeEOF, "eof-reached"))
}

// Ready reports whether mpv has a file loaded.
func (p *Player) Ready() bool {
	return p.ready.Load()
}

// OnReadyChanged implements media.Target.
func (p *Player) OnReadyChanged(fn func(bool)) {
	p.cbMu.Lock()
	p.readyFn = fn
	p.cbMu.Unlock()
}

// OnEvent implements media.Observer.
func (p *Player) OnEvent(fn func(media.Event)) {
	p.cbMu.Lock()
	p.eventFn = fn
	p.cbMu.Unlock()
}

// Send implements media.Target.
func (p *Player) Send(op media.Op, args ...any) error {
	return p.write(encodeCommand(op, args...))
}

func (p *Player) write(line []byte, err error) error {
	if err != nil {
		return err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if p.conn == nil {
		return ErrNotConnected
	}
	if _, err := p.conn.Write(line); err != nil {
		return fmt.Errorf("mpv ipc write: %w", err)
	}
	return nil
}

// Close asks mpv to quit, kills it if it is still running and removes the
// socket.
func (p *Player) Close() error {
	p.closing.Store(true)
	_ = p.write(encodeRequest("quit"))

	p.writeMu.Lock()
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.writeMu.Unlock()

	if p.proc != nil {
		_ = p.proc.Kill()
	}

	p.wg.Wait()

	if p.socket != "" {
		if err := os.Remove(p.socket); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (p *Player) readLoop(conn net.Conn) {
	defer p.wg.Done()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.handleLine(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		p.logger.Warn().Err(err).Msg("mpv ipc read failed")
	}
	p.setReady(false)
}

func (p *Player) handleLine(line []byte) {
	ev, readyChange, ok, err := decodeEvent(line)
	if err != nil {
		p.logger.Debug().Err(err).Bytes("line", line).Msg("ignoring malformed mpv line")
		return
	}

	if readyChange != nil {
		p.setReady(*readyChange)
	}
	if ok {
		p.emit(ev)
	}
}

func (p *Player) setReady(ready bool) {
	if p.ready.Swap(ready) == ready {
		return
	}

	p.logger.Debug().Bool("ready", ready).Msg("mpv readiness changed")

	p.cbMu.RLock()
	fn := p.readyFn
	p.cbMu.RUnlock()

	if fn != nil {
		fn(ready)
	}
}

func (p *Player) emit(ev media.Event) {
	p.cbMu.RLock()
	fn := p.eventFn
	p.cbMu.RUnlock()

	if fn != nil {
		fn(ev)
	}
}

func (p *Player) waitProcess() {
	defer p.wg.Done()

	err := p.proc.Wait()
	p.setReady(false)
	if err != nil && !p.closing.Load() {
		p.logger.Warn().Err(err).Msg("mpv exited")
		p.emit(media.Event{Kind: media.EventError, Err: fmt.Errorf("mpv exited: %w", err)})
	}
}
