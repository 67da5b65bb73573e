package types

import (
	"fmt"
	"time"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindKey
	KindMouse
)

type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m Modifier) HasCtrl() bool  { return m&ModCtrl != 0 }
func (m Modifier) HasShift() bool { return m&ModShift != 0 }
func (m Modifier) HasAlt() bool   { return m&ModAlt != 0 }

// Key is the logical key set shared by all input sources. Character keys
// use KeyRune with the character in InputEvent.Rune.
type Key uint16

const (
	KeyNull Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyBackspace
	KeyTab
	KeyBacktab
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyRune
)

var keyNames = map[Key]string{
	KeyNull:      "Null",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyRune:      "Rune",
}

func (k Key) String() string {
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// InputEvent is immutable once constructed. Source records which input
// source produced the event and is the basis for stale-event filtering.
type InputEvent struct {
	Kind   Kind
	Key    Key
	Rune   rune
	Mod    Modifier
	X, Y   uint16
	Time   time.Time
	Source string
}

func (e *InputEvent) IsZero() bool { return e.Kind == KindInvalid }

func (e *InputEvent) IsRune() bool { return e.Kind == KindKey && e.Key == KeyRune && e.Rune != 0 }

func (e *InputEvent) String() string {
	switch e.Kind {
	case KindKey:
		if e.Key == KeyRune {
			return fmt.Sprintf("InputEvent(source=%s key=%q mod=%d)", e.Source, e.Rune, e.Mod)
		}
		return fmt.Sprintf("InputEvent(source=%s key=%s mod=%d)", e.Source, e.Key.String(), e.Mod)
	case KindMouse:
		return fmt.Sprintf("InputEvent(source=%s mouse=%d,%d)", e.Source, e.X, e.Y)
	}
	return "InputEvent(invalid)"
}
