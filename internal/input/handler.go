package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/countkeeper/tally/helpers"
	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

// EventHandler owns the selected-source flag, the device descriptor, the
// event queue and the producer goroutine lifecycle. The application's
// foreground loop is the single consumer; it polls non-destructively once
// per frame and never blocks on input I/O.
//
// Each shared field is protected independently (queue mutex, atomic mode,
// atomic fd, alive running state). No lock is held across a blocking read.
type EventHandler struct {
	Log *log2.Log

	mode atomicMode
	dev  *DevInputEventSource
	term Source

	qmu   sync.Mutex
	queue []types.InputEvent

	amu   sync.Mutex
	alive *alive.Alive

	interrupt     chan struct{}
	interruptOnce sync.Once
}

// New constructs a handler with source=terminal, device disabled and an
// empty queue. screen may be nil (tests, headless); the terminal source is
// then absent and only simulated or device events flow.
func New(log *log2.Log, screen tcell.Screen) *EventHandler {
	self := &EventHandler{
		Log:       log,
		dev:       NewDevInputEventSource(log),
		interrupt: make(chan struct{}),
	}
	if screen != nil {
		self.term = NewTerminalSource(log, screen, self.interruptNow)
	}
	return self
}

// Interrupt is closed when the producer observes the global interrupt
// chord, after terminal state has been restored. The surrounding
// application owns process exit; the core never calls os.Exit.
func (self *EventHandler) Interrupt() <-chan struct{} { return self.interrupt }

func (self *EventHandler) interruptNow() {
	self.interruptOnce.Do(func() { close(self.interrupt) })
}

func (self *EventHandler) Mode() Mode { return self.mode.Load() }

// Start spawns the producer goroutine. Restart while already running is
// safe: the previous worker is asked to stop and the queue and flags stay
// valid; the old worker may linger until its in-flight blocking read
// returns.
func (self *EventHandler) Start() error {
	self.amu.Lock()
	defer self.amu.Unlock()
	if self.alive != nil {
		self.alive.Stop()
	}
	a := alive.NewAlive()
	if !a.Add(1) {
		return errors.Errorf("input: producer start race")
	}
	self.alive = a
	go self.loop(a)
	return nil
}

// Stop is cooperative: the producer observes it between blocking reads.
// There is no hard-cancel of an in-progress read.
func (self *EventHandler) Stop() {
	self.amu.Lock()
	a := self.alive
	self.amu.Unlock()
	if a != nil {
		a.Stop()
	}
}

// SetFd swaps the raw device descriptor. fd=0 disables the device source.
func (self *EventHandler) SetFd(fd int32) { self.dev.SetFd(fd) }

// SetKbd opens a named keyboard device node under DevInputDir and swaps it
// in. Open failure leaves the device source disabled; the caller surfaces
// the returned warning.
func (self *EventHandler) SetKbd(device string) error {
	if err := self.dev.Open(device); err != nil {
		return errors.Annotate(err, "input: set kbd")
	}
	return nil
}

// ToggleMode flips the selected source between terminal and raw device.
// No-op while no device descriptor is configured: there is nothing to
// switch to. Flushes the queue so events buffered from the now-inactive
// source are not delivered.
func (self *EventHandler) ToggleMode() {
	if self.dev.Fd() == 0 {
		return
	}
	old := self.mode.Load()
	new := ModeTerminal
	if old == ModeTerminal {
		new = ModeDevInput
	}
	self.mode.Store(new)
	self.clearQueue()
	self.Log.Debugf("input mode %s -> %s", old, new)
}

// HasEvent never blocks.
func (self *EventHandler) HasEvent() bool {
	self.qmu.Lock()
	defer self.qmu.Unlock()
	return len(self.queue) > 0
}

// Poll returns the oldest queued event if it was produced by the currently
// selected source. A stale event (tagged with the inactive source) is
// discarded without being returned and Poll yields nil for that call; the
// caller polls again for the next candidate. FIFO order within one source
// is preserved, stale events are dropped, never reordered.
func (self *EventHandler) Poll() *types.InputEvent {
	self.qmu.Lock()
	defer self.qmu.Unlock()
	if len(self.queue) == 0 {
		return nil
	}
	ev := self.queue[0]
	self.queue = self.queue[1:]
	if ev.Source != self.mode.Load().Tag() {
		self.Log.Debugf("input discard stale %s", ev.String())
		return nil
	}
	return &ev
}

// Buffer returns a read-only snapshot of pending events, for diagnostics.
func (self *EventHandler) Buffer() []types.InputEvent {
	self.qmu.Lock()
	defer self.qmu.Unlock()
	snapshot := make([]types.InputEvent, len(self.queue))
	copy(snapshot, self.queue)
	return snapshot
}

// SimulateKey injects a synthetic terminal-tagged key event directly into
// the queue, for deterministic testing without driving real input.
func (self *EventHandler) SimulateKey(key types.Key, r rune) {
	self.push(types.InputEvent{
		Kind:   types.KindKey,
		Key:    key,
		Rune:   r,
		Time:   time.Now(),
		Source: TerminalTag,
	})
}

func (self *EventHandler) push(ev types.InputEvent) {
	helpers.WithLock(&self.qmu, func() {
		self.queue = append(self.queue, ev)
	})
}

func (self *EventHandler) clearQueue() {
	helpers.WithLock(&self.qmu, func() {
		self.queue = self.queue[:0]
	})
}

// loop reads the selected-source flag once per iteration, then performs
// exactly one blocking read on that source. Toggling while a read is in
// flight takes effect only after the blocking call returns; the device
// side bounds its wait with a poll timeout so the flag is observed within
// one interval.
func (self *EventHandler) loop(a *alive.Alive) {
	defer a.Done()
	for a.IsRunning() {
		var src Source
		switch self.mode.Load() {
		case ModeDevInput:
			src = self.dev
		default:
			src = self.term
		}
		if src == nil {
			time.Sleep(DefaultPollInterval)
			continue
		}

		ev, err := src.Read()
		if err != nil {
			// terminal teardown; transient device errors never surface here
			self.Log.Debugf("input source=%s stopped err=%v", src.String(), err)
			return
		}
		if ev.IsZero() {
			continue
		}
		self.push(ev)
	}
}
