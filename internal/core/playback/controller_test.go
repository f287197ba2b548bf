package playback

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/media"
)

type fakePlayer struct {
	calls []string
	seeks []float64
}

func (f *fakePlayer) SeekAndPlay(seconds float64) {
	f.calls = append(f.calls, "seekAndPlay")
	f.seeks = append(f.seeks, seconds)
}

func (f *fakePlayer) Pause() {
	f.calls = append(f.calls, "pause")
}

func TestController_HoverThenLeave(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Hover(3)
	assert.Equal(t, Previewing, c.State())
	assert.Equal(t, Intent{Active: true, SourceStart: 3}, c.Intent())

	c.HoverLeave()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, []string{"seekAndPlay", "pause"}, p.calls)
	assert.Equal(t, []float64{3}, p.seeks)
}

func TestController_ClickSurvivesLeave(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Click(7)
	require.Equal(t, Persistent, c.State())

	c.HoverLeave()
	assert.Equal(t, Persistent, c.State())
	assert.Equal(t, []string{"seekAndPlay"}, p.calls, "leave must not pause persistent playback")
	assert.Equal(t, Intent{Active: true, Persistent: true, SourceStart: 7}, c.Intent())
}

func TestController_HoverIgnoredWhilePersistent(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Click(7)
	c.Hover(20)

	assert.Equal(t, Persistent, c.State())
	assert.Equal(t, []float64{7}, p.seeks)
}

func TestController_ClickWinsOverPreview(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Hover(1)
	c.Click(2)
	c.HoverLeave()

	assert.Equal(t, Persistent, c.State())
	assert.Equal(t, []float64{1, 2}, p.seeks)
	assert.NotContains(t, p.calls, "pause")
}

func TestController_MediaEnded(t *testing.T) {
	for _, setup := range []func(*Controller){
		func(c *Controller) {},
		func(c *Controller) { c.Hover(1) },
		func(c *Controller) { c.Click(1) },
	} {
		c := New(&fakePlayer{})
		setup(c)
		c.MediaEnded()
		assert.Equal(t, Idle, c.State())
	}
}

func TestController_AfterEndHoverPreviewsAgain(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Click(1)
	c.MediaEnded()
	c.Hover(5)

	assert.Equal(t, Previewing, c.State())
	assert.Equal(t, []float64{1, 5}, p.seeks)
}

func TestController_FirstPlayFiresOnce(t *testing.T) {
	fired := 0
	c := New(&fakePlayer{}, WithFirstPlay(func() { fired++ }))

	c.Hover(1)
	assert.Equal(t, 0, fired, "hover is not a first play")

	c.Click(1)
	c.Click(2)
	c.MediaEnded()
	c.Click(3)
	assert.Equal(t, 1, fired)
}

func TestController_PlayAtOverride(t *testing.T) {
	p := &fakePlayer{}
	var got []float64
	c := New(p, WithPlayAt(func(s float64) { got = append(got, s) }))

	c.Click(-4)
	c.Hover(2)

	assert.Equal(t, []float64{0}, got)
	assert.Empty(t, p.seeks)
}

func TestController_ClampsToDuration(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)
	c.SetDuration(60)

	c.Click(90)
	c.MediaEnded()
	c.Hover(-1)

	assert.Equal(t, []float64{60, 0}, p.seeks)
}

func TestController_Stop(t *testing.T) {
	p := &fakePlayer{}
	c := New(p)

	c.Stop()
	assert.Empty(t, p.calls)

	c.Click(1)
	c.Stop()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, []string{"seekAndPlay", "pause"}, p.calls)
}

func TestController_WithQueueBeforeReady(t *testing.T) {
	target := &queueTarget{}
	q := media.NewQueue(target, zerolog.Nop())
	c := New(q)

	c.Hover(3)
	c.HoverLeave()
	c.Click(7)
	assert.Empty(t, target.ops)

	q.OnReady()
	assert.Equal(t, []media.Op{
		media.OpSeekTo, media.OpPlay,
		media.OpPause,
		media.OpSeekTo, media.OpPlay,
	}, target.ops)
}

type queueTarget struct {
	ops []media.Op
}

func (q *queueTarget) Ready() bool               { return false }
func (q *queueTarget) OnReadyChanged(func(bool)) {}

func (q *queueTarget) Send(op media.Op, _ ...any) error {
	q.ops = append(q.ops, op)
	return nil
}
