package input

import (
	"io"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

// TerminalSource wraps the terminal's native blocking event read.
// It also recognizes the global interrupt chord independently of
// application mode: while raw device capture is active a mode-confused
// consumer must not be able to swallow the user's only way out.
type TerminalSource struct {
	Log       *log2.Log
	screen    tcell.Screen
	interrupt func()
}

// compile-time interface compliance test
var _ Source = new(TerminalSource)

// NewTerminalSource takes an initialized screen. interrupt is invoked from
// the producer goroutine on Ctrl+C, after terminal state is restored.
func NewTerminalSource(log *log2.Log, screen tcell.Screen, interrupt func()) *TerminalSource {
	return &TerminalSource{Log: log, screen: screen, interrupt: interrupt}
}

func (self *TerminalSource) String() string { return TerminalTag }

// Read blocks on the terminal event read. One call yields at most one
// event; focus/resize/paste decode to nothing and are dropped, mouse
// position events map to a mouse event. io.EOF reports screen teardown.
func (self *TerminalSource) Read() (types.InputEvent, error) {
	tev := self.screen.PollEvent()
	switch ev := tev.(type) {
	case nil:
		return types.InputEvent{}, io.EOF

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			self.Log.Infof("%s interrupt", TerminalTag)
			self.screen.Fini()
			if self.interrupt != nil {
				self.interrupt()
			}
			return types.InputEvent{}, io.EOF
		}
		return decodeTerminalKey(ev), nil

	case *tcell.EventMouse:
		x, y := ev.Position()
		return types.InputEvent{
			Kind:   types.KindMouse,
			X:      uint16(x),
			Y:      uint16(y),
			Mod:    decodeTerminalMod(ev.Modifiers()),
			Time:   time.Now(),
			Source: TerminalTag,
		}, nil
	}

	return types.InputEvent{}, nil
}

// decodeTerminalKey maps the terminal library's key-code space onto the
// logical key set, 1:1 for everything the application can act on.
func decodeTerminalKey(ev *tcell.EventKey) types.InputEvent {
	mod := decodeTerminalMod(ev.Modifiers())
	key := types.KeyNull
	r := rune(0)

	switch ev.Key() {
	case tcell.KeyRune:
		key, r = types.KeyRune, ev.Rune()
	case tcell.KeyEscape:
		key = types.KeyEscape
	case tcell.KeyEnter:
		key = types.KeyEnter
	case tcell.KeyTab:
		key = types.KeyTab
	case tcell.KeyBacktab:
		key = types.KeyBacktab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		key = types.KeyBackspace
	case tcell.KeyDelete:
		key = types.KeyDelete
	case tcell.KeyInsert:
		key = types.KeyInsert
	case tcell.KeyHome:
		key = types.KeyHome
	case tcell.KeyEnd:
		key = types.KeyEnd
	case tcell.KeyPgUp:
		key = types.KeyPageUp
	case tcell.KeyPgDn:
		key = types.KeyPageDown
	case tcell.KeyUp:
		key = types.KeyUp
	case tcell.KeyDown:
		key = types.KeyDown
	case tcell.KeyLeft:
		key = types.KeyLeft
	case tcell.KeyRight:
		key = types.KeyRight
	default:
		k := ev.Key()
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			key = types.KeyF1 + types.Key(k-tcell.KeyF1)
		} else if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			// control chords arrive as dedicated key codes, fold back
			key, r = types.KeyRune, rune('a'+k-tcell.KeyCtrlA)
			mod |= types.ModCtrl
		}
		// anything else stays KeyNull
	}

	return types.InputEvent{
		Kind:   types.KindKey,
		Key:    key,
		Rune:   r,
		Mod:    mod,
		Time:   time.Now(),
		Source: TerminalTag,
	}
}

func decodeTerminalMod(m tcell.ModMask) types.Modifier {
	var mod types.Modifier
	if m&tcell.ModShift != 0 {
		mod |= types.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= types.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= types.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= types.ModMeta
	}
	return mod
}
