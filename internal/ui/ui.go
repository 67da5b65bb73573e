// Package ui is the consumer of the input event stream: a minimal counter
// screen with a per-keystroke state machine over polled events.
package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/temoto/alive/v2"
	"github.com/temoto/atomic_clock"

	"github.com/countkeeper/tally/internal/input"
	"github.com/countkeeper/tally/internal/types"
	"github.com/countkeeper/tally/log2"
)

// base odds of one success per attempt, counters track long odds hunts
const baseOdds = 8192

type Counter struct {
	Count   int
	started *atomic_clock.Clock
}

func NewCounter() Counter { return Counter{started: atomic_clock.Now()} }

func (c *Counter) Incr() { c.Count++ }

func (c *Counter) Decr() {
	if c.Count > 0 {
		c.Count--
	}
}

func (c *Counter) Elapsed() time.Duration { return atomic_clock.Since(c.started) }

// Chance is the cumulative probability of at least one success so far.
func (c *Counter) Chance() float64 {
	return 1 - math.Pow(1-1.0/baseOdds, float64(c.Count))
}

type UI struct {
	Log     *log2.Log
	screen  tcell.Screen
	handler *input.EventHandler
	title   string
	tick    time.Duration

	Counter Counter
}

func New(log *log2.Log, screen tcell.Screen, handler *input.EventHandler, title string, tick time.Duration) *UI {
	return &UI{
		Log:     log,
		screen:  screen,
		handler: handler,
		title:   title,
		tick:    tick,
		Counter: NewCounter(),
	}
}

// HandleEvent maps one decoded event to an action. Returns false when the
// user asked to quit. Source-agnostic: device and terminal events arrive
// already decoded to the same key set.
func (self *UI) HandleEvent(ev *types.InputEvent) bool {
	if ev == nil || ev.Kind != types.KindKey {
		return true
	}
	switch {
	case ev.Key == types.KeyEnter:
		self.Counter.Incr()
	case ev.Key == types.KeyEscape:
		return false
	case ev.Key == types.KeyRune:
		switch ev.Rune {
		case '+', '=':
			self.Counter.Incr()
		case '-':
			self.Counter.Decr()
		case 'k':
			self.handler.ToggleMode()
		case 'q':
			return false
		}
	}
	return true
}

// Run drives the foreground loop: drain pending events, redraw, wait one
// tick. Returns on quit key, stop or interrupt. Never blocks on input.
func (self *UI) Run(a *alive.Alive) {
	ticker := time.NewTicker(self.tick)
	defer ticker.Stop()

	for a.IsRunning() {
		for self.handler.HasEvent() {
			if !self.HandleEvent(self.handler.Poll()) {
				self.Log.Debugf("ui quit")
				return
			}
		}
		self.Draw()

		select {
		case <-a.StopChan():
			return
		case <-self.handler.Interrupt():
			self.Log.Debugf("ui interrupt")
			return
		case <-ticker.C:
		}
	}
}

func (self *UI) Draw() {
	if self.screen == nil {
		return
	}
	self.screen.Clear()
	style := tcell.StyleDefault

	self.drawLine(0, 0, style.Bold(true), self.title)
	self.drawLine(0, 2, style, fmt.Sprintf("count:   %d", self.Counter.Count))
	self.drawLine(0, 3, style, fmt.Sprintf("elapsed: %s", self.Counter.Elapsed().Round(time.Second)))
	self.drawLine(0, 4, style, fmt.Sprintf("chance:  %.2f%%", self.Counter.Chance()*100))
	self.drawLine(0, 6, style, fmt.Sprintf("mode:    %s", self.handler.Mode()))
	self.drawLine(0, 8, style.Dim(true), "+/=/Enter count up  - down  k capture  q quit")
	self.screen.Show()
}

func (self *UI) drawLine(x, y int, style tcell.Style, s string) {
	for i, r := range s {
		self.screen.SetContent(x+i, y, r, nil, style)
	}
}
