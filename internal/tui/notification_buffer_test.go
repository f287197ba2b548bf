package tui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/notify"
)

func TestNotificationBuffer_Drain_empty_returnsNil(t *testing.T) {
	assert.Nil(t, NewNotificationBuffer().Drain())
}

func TestNotificationBuffer_PushDrain_orderAndClear(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	b.Warnf("second %d", 2)
	b.Errorf("third")

	items := b.Drain()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second 2", items[1].Message)
	assert.Equal(t, notify.LevelWarning, items[1].Level)
	assert.Equal(t, notify.LevelError, items[2].Level)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_WaitForSignal_singleSignalDrainsAll(t *testing.T) {
	b := NewNotificationBuffer()
	b.Warnf("one")
	b.Warnf("two")

	msg := b.WaitForSignal()()
	_, ok := msg.(drainNotificationsMsg)
	require.True(t, ok)
	assert.Len(t, b.Drain(), 2)
}

func TestNotificationBuffer_ConcurrentPush_noLoss(t *testing.T) {
	b := NewNotificationBuffer()
	const count = 200

	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Warnf("%s", fmt.Sprint(i))
		}()
	}
	wg.Wait()

	assert.Len(t, b.Drain(), count)
}
