package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/countkeeper/tally/internal/input"
	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

func testUI(t testing.TB) *UI {
	log := log2.NewTest(t, log2.LDebug)
	h := input.New(log, nil)
	return New(log, nil, h, "test", 10*time.Millisecond)
}

func keyEvent(key types.Key, r rune) *types.InputEvent {
	return &types.InputEvent{
		Kind:   types.KindKey,
		Key:    key,
		Rune:   r,
		Time:   time.Now(),
		Source: input.TerminalTag,
	}
}

func TestHandleEventCounting(t *testing.T) {
	t.Parallel()

	u := testUI(t)
	assert.True(t, u.HandleEvent(keyEvent(types.KeyRune, '+')))
	assert.True(t, u.HandleEvent(keyEvent(types.KeyRune, '=')))
	assert.True(t, u.HandleEvent(keyEvent(types.KeyEnter, 0)))
	assert.Equal(t, 3, u.Counter.Count)

	assert.True(t, u.HandleEvent(keyEvent(types.KeyRune, '-')))
	assert.Equal(t, 2, u.Counter.Count)
}

func TestHandleEventQuit(t *testing.T) {
	t.Parallel()

	u := testUI(t)
	assert.False(t, u.HandleEvent(keyEvent(types.KeyRune, 'q')))
	assert.False(t, u.HandleEvent(keyEvent(types.KeyEscape, 0)))
}

func TestHandleEventIgnoresUnknown(t *testing.T) {
	t.Parallel()

	u := testUI(t)
	assert.True(t, u.HandleEvent(nil))
	assert.True(t, u.HandleEvent(keyEvent(types.KeyNull, 0)))
	assert.True(t, u.HandleEvent(keyEvent(types.KeyRune, 'z')))
	assert.True(t, u.HandleEvent(&types.InputEvent{Kind: types.KindMouse, X: 3, Y: 4}))
	assert.Equal(t, 0, u.Counter.Count)
}

func TestCounterDecrClamp(t *testing.T) {
	t.Parallel()

	c := NewCounter()
	c.Decr()
	assert.Equal(t, 0, c.Count)
	c.Incr()
	c.Decr()
	assert.Equal(t, 0, c.Count)
}

func TestCounterChance(t *testing.T) {
	t.Parallel()

	c := NewCounter()
	assert.Equal(t, 0.0, c.Chance())
	c.Count = 8192
	// 1-(1-1/8192)^8192 ~ 1-1/e
	assert.InDelta(t, 0.6321, c.Chance(), 0.001)
	assert.True(t, c.Elapsed() >= 0)
}
