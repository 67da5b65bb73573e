// Package input multiplexes heterogeneous blocking input sources into a
// single ordered, mode-filtered event stream polled by the application.
package input

import (
	"sync/atomic"

	"github.com/countkeeper/tally/internal/types"
)

const (
	TerminalTag      = "terminal"
	DevInputEventTag = "dev-input-event"
)

// Source produces decoded input events from one underlying origin.
// Read blocks until an event is available or the source is torn down.
type Source interface {
	Read() (types.InputEvent, error)
	String() string
}

// Mode selects which Source is currently authoritative for delivery.
type Mode int32

const (
	ModeTerminal Mode = iota
	ModeDevInput
)

func (m Mode) Tag() string {
	if m == ModeDevInput {
		return DevInputEventTag
	}
	return TerminalTag
}

func (m Mode) String() string { return m.Tag() }

// atomicMode is the selected-source flag. The producer loop samples it once
// per event, the application writes it on toggle.
type atomicMode struct{ v int32 }

func (a *atomicMode) Load() Mode   { return Mode(atomic.LoadInt32(&a.v)) }
func (a *atomicMode) Store(m Mode) { atomic.StoreInt32(&a.v, int32(m)) }
