package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/countkeeper/tally/internal/types"
)

func TestDecodeTerminalKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *tcell.EventKey
		key  types.Key
		r    rune
		mod  types.Modifier
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), types.KeyRune, 'x', types.ModNone},
		{"rune-shifted", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), types.KeyRune, 'X', types.ModShift},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), types.KeyEnter, 0, types.ModNone},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), types.KeyEscape, 0, types.ModNone},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), types.KeyBackspace, 0, types.ModNone},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), types.KeyUp, 0, types.ModNone},
		{"pgdn", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), types.KeyPageDown, 0, types.ModNone},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), types.KeyF5, 0, types.ModNone},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), types.KeyF12, 0, types.ModNone},
		{"ctrl-fold", tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), types.KeyRune, 'p', types.ModCtrl},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ev := decodeTerminalKey(c.in)
			assert.Equal(t, types.KindKey, ev.Kind)
			assert.Equal(t, c.key, ev.Key)
			assert.Equal(t, c.r, ev.Rune)
			assert.Equal(t, c.mod, ev.Mod)
			assert.Equal(t, TerminalTag, ev.Source)
			assert.False(t, ev.Time.IsZero())
		})
	}
}

func TestDecodeTerminalMod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, types.ModNone, decodeTerminalMod(tcell.ModNone))
	assert.Equal(t, types.ModShift, decodeTerminalMod(tcell.ModShift))
	assert.Equal(t, types.ModCtrl|types.ModAlt, decodeTerminalMod(tcell.ModCtrl|tcell.ModAlt))
	assert.Equal(t, types.ModMeta, decodeTerminalMod(tcell.ModMeta))
}
