package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

func TestScancodeDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code uint16
		key  types.Key
		r    rune
	}{
		{1, types.KeyEscape, 0},
		{13, types.KeyRune, '='},
		{16, types.KeyRune, 'q'},
		{28, types.KeyEnter, 0},
		{74, types.KeyRune, '-'},
		{78, types.KeyRune, '+'},
		{96, types.KeyEnter, 0},
	}
	for _, c := range cases {
		key, r := KeyFromScancode(c.code)
		assert.Equal(t, c.key, key, "code=%d", c.code)
		assert.Equal(t, c.r, r, "code=%d", c.code)
	}

	// everything unmapped is silently inert
	for _, code := range []uint16{0, 2, 15, 30, 57, 103, 200, 0x1ff} {
		key, r := KeyFromScancode(code)
		assert.Equal(t, types.KeyNull, key, "code=%d", code)
		assert.Equal(t, rune(0), r, "code=%d", code)
	}
}

func TestDevInputDisabled(t *testing.T) {
	t.Parallel()

	src := NewDevInputEventSource(log2.NewTest(t, log2.LDebug))
	assert.Equal(t, int32(0), src.Fd())

	// unset fd yields no event instead of failing
	ev, err := src.Read()
	assert.NoError(t, err)
	assert.True(t, ev.IsZero())
}

func TestGetKbdInputs(t *testing.T) {
	t.Parallel()

	// absent device directory must mean empty list, not an error
	for _, name := range GetKbdInputs() {
		assert.Contains(t, name, kbdNameMark)
		assert.NotContains(t, name, "-if")
	}
}

func TestOpenMissingDevice(t *testing.T) {
	t.Parallel()

	src := NewDevInputEventSource(log2.NewTest(t, log2.LDebug))
	err := src.Open("no-such-device-event-kbd")
	assert.Error(t, err)
	assert.Equal(t, int32(0), src.Fd(), "failed open must leave source disabled")
}
