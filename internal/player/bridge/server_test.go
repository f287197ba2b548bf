package bridge

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/media"
	"github.com/colonyops/hark/pkg/executil"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(Options{VideoID: "dQw4w9WgXcQ", Title: "Markets <Weekly>"}, zerolog.Nop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) int {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestServer_Page(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	page := sb.String()

	assert.Contains(t, page, "youtube.com/embed/dQw4w9WgXcQ?enablejsapi=1")
	assert.Contains(t, page, s.Token())
	assert.Contains(t, page, "Markets &lt;Weekly&gt;")
	assert.Contains(t, page, `relay({ event: "frameLoad" })`, "the page reports frame reloads")
}

func TestServer_FrameTokenFilter(t *testing.T) {
	s, ts := newTestServer(t)

	var readys []bool
	s.OnReadyChanged(func(r bool) { readys = append(readys, r) })

	assert.Equal(t, http.StatusNotFound, post(t, ts.URL+"/frame/wrong", `{"event":"onReady"}`))
	assert.False(t, s.Ready())

	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"onReady"}`))
	assert.True(t, s.Ready())
	assert.Equal(t, []bool{true}, readys)
}

func TestServer_FrameMalformedIgnored(t *testing.T) {
	s, ts := newTestServer(t)

	var events []media.Event
	s.OnEvent(func(ev media.Event) { events = append(events, ev) })

	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{{{`))
	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), ``))
	assert.Empty(t, events)
	assert.False(t, s.Ready())

	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"infoDelivery","info":{"currentTime":9}}`))
	assert.Equal(t, []media.Event{{Kind: media.EventTimeUpdate, Seconds: 9}}, events)
}

func TestServer_SendWithoutClient(t *testing.T) {
	s, _ := newTestServer(t)
	assert.ErrorIs(t, s.Send(media.OpPlay), ErrNoClient)
}

func TestServer_EventStream(t *testing.T) {
	s, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events/"+s.Token(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool {
		return s.Send(media.OpSeekTo, 42.7) == nil
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Send(media.OpPlay))

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, "data: ")))
		}
	}

	assert.JSONEq(t, `{"event":"command","func":"seekTo","args":[42,true]}`, lines[0])
	assert.JSONEq(t, `{"event":"command","func":"playVideo","args":[]}`, lines[1])
}

// openStream connects to the event stream and waits until the server has
// registered the client.
func openStream(t *testing.T, s *Server, ts *httptest.Server) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events/"+s.Token(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.clients) > 0
	}, 5*time.Second, 10*time.Millisecond)
	return cancel
}

func TestServer_ReconnectKeepsReadiness(t *testing.T) {
	s, ts := newTestServer(t)

	var mu sync.Mutex
	var readys []bool
	s.OnReadyChanged(func(r bool) {
		mu.Lock()
		readys = append(readys, r)
		mu.Unlock()
	})

	disconnect := openStream(t, s, ts)
	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"frameLoad"}`))
	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"onReady"}`))
	require.True(t, s.Ready())

	// EventSource reconnects on its own after a dropped stream; the player
	// frame stays loaded and will not announce onReady again.
	disconnect()
	require.Eventually(t, func() bool {
		return errors.Is(s.Send(media.OpPlay), ErrNoClient)
	}, 5*time.Second, 10*time.Millisecond)

	openStream(t, s, ts)
	assert.True(t, s.Ready(), "a reconnected stream keeps the player ready")
	require.NoError(t, s.Send(media.OpPause))

	// a reloaded page reports its new frame, which must announce onReady again
	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"frameLoad"}`))
	assert.False(t, s.Ready())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, readys)
}

func TestServer_EventStreamWrongToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/events/nope")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_WithQueue(t *testing.T) {
	s, ts := newTestServer(t)

	var mu sync.Mutex
	var sent []string
	q := media.NewQueue(recordingTarget{s: s, sent: &sent, mu: &mu}, zerolog.Nop())
	q.SeekAndPlay(5)

	mu.Lock()
	assert.Empty(t, sent, "nothing is sent before the frame is ready")
	mu.Unlock()

	assert.Equal(t, http.StatusNoContent, post(t, ts.URL+"/frame/"+s.Token(), `{"event":"onReady"}`))
	require.True(t, s.Ready())
	q.OnReady()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"seekTo", "play"}, sent)
}

// recordingTarget forwards readiness from the bridge but records ops instead
// of streaming them.
type recordingTarget struct {
	s    *Server
	mu   *sync.Mutex
	sent *[]string
}

func (r recordingTarget) Ready() bool                  { return r.s.Ready() }
func (r recordingTarget) OnReadyChanged(fn func(bool)) { r.s.OnReadyChanged(fn) }

func (r recordingTarget) Send(op media.Op, _ ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.sent = append(*r.sent, string(op))
	return nil
}

func TestServer_StartShutdown(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0", VideoID: "abc", Debug: true}, zerolog.Nop())
	require.NoError(t, s.Start(context.Background()))
	assert.NotEmpty(t, s.Addr())
	assert.True(t, strings.HasPrefix(s.URL(), "http://127.0.0.1:"))

	resp, err := http.Get(s.URL() + "debug/pprof/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Shutdown(context.Background()))
}

func TestOpenBrowser(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	require.NoError(t, OpenBrowser(context.Background(), exec, []string{"firefox", "--new-tab"}, "http://127.0.0.1:1/"))
	require.NoError(t, OpenBrowser(context.Background(), exec, nil, "http://127.0.0.1:2/"))

	cmds := exec.Recorded()
	require.Len(t, cmds, 2)
	assert.Equal(t, executil.RecordedCommand{Cmd: "firefox", Args: []string{"--new-tab", "http://127.0.0.1:1/"}}, cmds[0])
	assert.Equal(t, "http://127.0.0.1:2/", cmds[1].Args[len(cmds[1].Args)-1])
}

func TestDefaultOpener(t *testing.T) {
	assert.Equal(t, []string{"open"}, defaultOpener("darwin"))
	assert.Equal(t, []string{"xdg-open"}, defaultOpener("linux"))
}
